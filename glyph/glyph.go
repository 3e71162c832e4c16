// Package glyph decides which fullwidth code point, if any, replaces a key
// press. It has no I/O and no state beyond an immutable symbol table.
package glyph

import (
	"fmt"

	"github.com/goFullwidth/keymaps"
)

// CodePoint is a 16-bit Unicode scalar value.
type CodePoint uint16

// NoChar marks the absence of a character (UNICODE_NOCHAR).
const NoChar CodePoint = 0xFFFF

// Base code points of the fullwidth rows.
const (
	FullwidthZero     CodePoint = 0xFF10
	FullwidthCapitalA CodePoint = 0xFF21
	FullwidthSmallA   CodePoint = 0xFF41
)

func (c CodePoint) String() string {
	return fmt.Sprintf("U+%04X %q", uint16(c), rune(c))
}

// EffectiveCase combines Caps Lock and Shift. When true letters use the
// capital fullwidth row.
func EffectiveCase(capsLock, shift bool) bool {
	return capsLock != shift
}

// Resolver maps keys to fullwidth code points.
type Resolver struct {
	symbols *SymbolTable
}

// NewResolver returns a resolver backed by symbols. A nil table selects the
// default US table.
func NewResolver(symbols *SymbolTable) *Resolver {
	if symbols == nil {
		symbols = DefaultSymbolTable()
	}
	return &Resolver{symbols: symbols}
}

// Symbols returns the table the resolver consults.
func (r *Resolver) Symbols() *SymbolTable {
	return r.symbols
}

// Resolve returns the code point to emit instead of key, or false when the
// key is left alone. Letters win over the symbol table, which wins over
// digits: shifted digit-row keys produce punctuation.
func (r *Resolver) Resolve(key keymaps.KeyCode, effectiveCase, shift bool) (CodePoint, bool) {
	if key.IsLetter() {
		base := FullwidthSmallA
		if effectiveCase {
			base = FullwidthCapitalA
		}
		return base + CodePoint(key-keymaps.KeyA), true
	}

	if c, ok := r.symbols.Lookup(key, shift); ok {
		return c, true
	}

	if n, ok := digitOrdinal(key); ok {
		return FullwidthZero + CodePoint(n), true
	}

	return NoChar, false
}

// digitOrdinal folds the main row and the keypad onto 0-9.
func digitOrdinal(key keymaps.KeyCode) (int, bool) {
	switch {
	case key >= keymaps.Key0 && key <= keymaps.Key9:
		return int(key - keymaps.Key0), true
	case key.IsNumpadDigit():
		return int(key - keymaps.KeyNumpad0), true
	}
	return 0, false
}
