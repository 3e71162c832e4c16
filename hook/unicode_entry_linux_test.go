package hook

import (
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/goFullwidth/glyph"
)

func TestUnicodeEntrySequence(t *testing.T) {
	seq := unicodeEntrySequence(0xFF21, nil)

	want := []keyStroke{
		{evdev.KEY_LEFTCTRL, true},
		{evdev.KEY_LEFTSHIFT, true},
		{evdev.KEY_U, true}, {evdev.KEY_U, false},
		{evdev.KEY_LEFTSHIFT, false},
		{evdev.KEY_LEFTCTRL, false},
		{evdev.KEY_F, true}, {evdev.KEY_F, false},
		{evdev.KEY_F, true}, {evdev.KEY_F, false},
		{evdev.KEY_2, true}, {evdev.KEY_2, false},
		{evdev.KEY_1, true}, {evdev.KEY_1, false},
		{evdev.KEY_SPACE, true}, {evdev.KEY_SPACE, false},
	}
	assert.Equal(t, want, seq)
}

func TestUnicodeEntrySequenceRestoresHeld(t *testing.T) {
	held := heldKeys{evdev.KEY_RIGHTSHIFT, evdev.KEY_LEFTALT}
	seq := unicodeEntrySequence(0xFF01, held)

	assert.Equal(t, []keyStroke{
		{evdev.KEY_RIGHTSHIFT, false},
		{evdev.KEY_LEFTALT, false},
	}, seq[:2])
	assert.Equal(t, []keyStroke{
		{evdev.KEY_RIGHTSHIFT, true},
		{evdev.KEY_LEFTALT, true},
	}, seq[len(seq)-2:])
	assert.Equal(t, unicodeEntrySequence(0xFF01, nil), seq[2:len(seq)-2])
}

func TestUnicodeEntrySequenceBalanced(t *testing.T) {
	for _, c := range []uint16{0xFF10, 0xFF5E, 0xFFA0} {
		down := map[int]int{}
		for _, s := range unicodeEntrySequence(glyph.CodePoint(c), nil) {
			if s.down {
				down[s.key]++
			} else {
				down[s.key]--
			}
		}
		for k, n := range down {
			assert.Zero(t, n, "key %d left pressed for %04X", k, c)
		}
	}
}

func TestHeldKeys(t *testing.T) {
	var h heldKeys
	h = h.with(evdev.KEY_LEFTSHIFT).with(evdev.KEY_RIGHTALT).with(evdev.KEY_LEFTSHIFT)
	assert.Equal(t, heldKeys{evdev.KEY_LEFTSHIFT, evdev.KEY_RIGHTALT}, h)

	h = h.without(evdev.KEY_LEFTSHIFT)
	assert.Equal(t, heldKeys{evdev.KEY_RIGHTALT}, h)
	h = h.without(evdev.KEY_LEFTMETA)
	assert.Equal(t, heldKeys{evdev.KEY_RIGHTALT}, h)
}

func TestEviocgled(t *testing.T) {
	assert.Equal(t, uintptr(0x80084519), eviocgled(8))
}
