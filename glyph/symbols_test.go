package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goFullwidth/keymaps"
)

func TestNewSymbolTableRejectsConflicts(t *testing.T) {
	_, err := NewSymbolTable(
		sym(keymaps.KeyOem3, true, 0xFF5E),
		sym(keymaps.KeyOem3, true, 0xFF40),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestNewSymbolTableAllowsRepeats(t *testing.T) {
	table, err := NewSymbolTable(
		sym(keymaps.KeyOem3, true, 0xFF5E),
		sym(keymaps.KeyOem3, true, 0xFF5E),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestNewSymbolTableRejectsInvalidCodePoints(t *testing.T) {
	_, err := NewSymbolTable(sym(keymaps.KeySpace, false, 0))
	assert.Error(t, err)

	_, err = NewSymbolTable(sym(keymaps.KeySpace, false, NoChar))
	assert.Error(t, err)
}

func TestMustSymbolTablePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustSymbolTable(sym(keymaps.KeySpace, false, 1), sym(keymaps.KeySpace, false, 2))
	})
}

func TestSymbolTableLookupDistinguishesShift(t *testing.T) {
	table := DefaultSymbolTable()

	c, ok := table.Lookup(keymaps.KeyOem1, false)
	require.True(t, ok)
	assert.Equal(t, CodePoint(0xFF1B), c)

	c, ok = table.Lookup(keymaps.KeyOem1, true)
	require.True(t, ok)
	assert.Equal(t, CodePoint(0xFF1A), c)

	_, ok = table.Lookup(keymaps.Digit(1), false)
	assert.False(t, ok)
}

func TestSymbolTableEntriesIsACopy(t *testing.T) {
	table := DefaultSymbolTable()
	entries := table.Entries()
	require.Len(t, entries, table.Len())

	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Char, entries[i].Char)
	}

	entries[0].Char = 0x1234
	c, _ := table.Lookup(entries[0].Code, entries[0].Shift)
	assert.NotEqual(t, CodePoint(0x1234), c)
}

func TestCodePointString(t *testing.T) {
	assert.Equal(t, `U+FF21 'Ａ'`, FullwidthCapitalA.String())
}
