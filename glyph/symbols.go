package glyph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goFullwidth/keymaps"
)

// ErrDuplicateSymbol is returned when two entries claim the same key and
// shift state with different code points.
var ErrDuplicateSymbol = errors.New("duplicate symbol entry")

// SymbolKey is a physical key together with the Shift state.
type SymbolKey struct {
	Code  keymaps.KeyCode
	Shift bool
}

// SymbolEntry maps one SymbolKey to the code point it produces.
type SymbolEntry struct {
	SymbolKey
	Char CodePoint
}

// SymbolTable holds the punctuation mappings. It is immutable once built
// and safe to read from any goroutine.
type SymbolTable struct {
	entries map[SymbolKey]CodePoint
}

// NewSymbolTable builds a table from entries. Repeating an entry is
// allowed, giving one key two different code points is not.
func NewSymbolTable(entries ...SymbolEntry) (*SymbolTable, error) {
	t := &SymbolTable{entries: make(map[SymbolKey]CodePoint, len(entries))}
	for _, e := range entries {
		if e.Char == 0 || e.Char == NoChar {
			return nil, fmt.Errorf("symbol for %v shift=%t: invalid code point %04X", e.Code, e.Shift, uint16(e.Char))
		}
		if prev, ok := t.entries[e.SymbolKey]; ok && prev != e.Char {
			return nil, fmt.Errorf("%w: %v shift=%t maps to both %v and %v", ErrDuplicateSymbol, e.Code, e.Shift, prev, e.Char)
		}
		t.entries[e.SymbolKey] = e.Char
	}
	return t, nil
}

// MustSymbolTable is like NewSymbolTable but panics on error.
func MustSymbolTable(entries ...SymbolEntry) *SymbolTable {
	t, err := NewSymbolTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the code point registered for key and shift.
func (t *SymbolTable) Lookup(key keymaps.KeyCode, shift bool) (CodePoint, bool) {
	c, ok := t.entries[SymbolKey{Code: key, Shift: shift}]
	return c, ok
}

// Len returns the number of entries.
func (t *SymbolTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table ordered by code point.
func (t *SymbolTable) Entries() []SymbolEntry {
	out := make([]SymbolEntry, 0, len(t.entries))
	for k, c := range t.entries {
		out = append(out, SymbolEntry{SymbolKey: k, Char: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

func sym(code keymaps.KeyCode, shift bool, c CodePoint) SymbolEntry {
	return SymbolEntry{SymbolKey: SymbolKey{Code: code, Shift: shift}, Char: c}
}

// DefaultSymbols returns the punctuation and space entries of a US layout.
func DefaultSymbols() []SymbolEntry {
	return []SymbolEntry{
		sym(keymaps.Digit(1), true, 0xFF01),      // !
		sym(keymaps.KeyOem7, true, 0xFF02),       // "
		sym(keymaps.Digit(3), true, 0xFF03),      // #
		sym(keymaps.Digit(4), true, 0xFF04),      // $
		sym(keymaps.Digit(5), true, 0xFF05),      // %
		sym(keymaps.Digit(7), true, 0xFF06),      // &
		sym(keymaps.KeyOem7, false, 0xFF07),      // '
		sym(keymaps.Digit(9), true, 0xFF08),      // (
		sym(keymaps.Digit(0), true, 0xFF09),      // )
		sym(keymaps.Digit(8), true, 0xFF0A),      // *
		sym(keymaps.KeyOemPlus, true, 0xFF0B),    // +
		sym(keymaps.KeyOemComma, false, 0xFF0C),  // ,
		sym(keymaps.KeyOemMinus, false, 0xFF0D),  // -
		sym(keymaps.KeyOemPeriod, false, 0xFF0E), // .
		sym(keymaps.KeyOem2, false, 0xFF0F),      // /
		sym(keymaps.KeyOem1, true, 0xFF1A),       // :
		sym(keymaps.KeyOem1, false, 0xFF1B),      // ;
		sym(keymaps.KeyOemComma, true, 0xFF1C),   // <
		sym(keymaps.KeyOemPlus, false, 0xFF1D),   // =
		sym(keymaps.KeyOemPeriod, true, 0xFF1E),  // >
		sym(keymaps.KeyOem2, true, 0xFF1F),       // ?
		sym(keymaps.Digit(2), true, 0xFF20),      // @
		sym(keymaps.KeyOem4, false, 0xFF3B),      // [
		sym(keymaps.KeyOem5, false, 0xFF3C),      // \
		sym(keymaps.KeyOem6, false, 0xFF3D),      // ]
		sym(keymaps.Digit(6), true, 0xFF3E),      // ^
		sym(keymaps.KeyOemMinus, true, 0xFF3F),   // _
		sym(keymaps.KeyOem3, false, 0xFF40),      // `
		sym(keymaps.KeyOem4, true, 0xFF5B),       // {
		sym(keymaps.KeyOem5, true, 0xFF5C),       // |
		sym(keymaps.KeyOem6, true, 0xFF5D),       // }
		sym(keymaps.KeyOem3, true, 0xFF5E),       // ~
		sym(keymaps.KeySpace, false, 0xFFA0),     // halfwidth filler stands in for space
	}
}

// DefaultSymbolTable returns a table built from DefaultSymbols.
func DefaultSymbolTable() *SymbolTable {
	return MustSymbolTable(DefaultSymbols()...)
}
