package hook

import (
	"strconv"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/goFullwidth/glyph"
)

type keyStroke struct {
	key  int
	down bool
}

var hexKeys = map[rune]int{
	'0': evdev.KEY_0, '1': evdev.KEY_1, '2': evdev.KEY_2, '3': evdev.KEY_3, '4': evdev.KEY_4,
	'5': evdev.KEY_5, '6': evdev.KEY_6, '7': evdev.KEY_7, '8': evdev.KEY_8, '9': evdev.KEY_9,
	'a': evdev.KEY_A, 'b': evdev.KEY_B, 'c': evdev.KEY_C, 'd': evdev.KEY_D, 'e': evdev.KEY_E, 'f': evdev.KEY_F,
}

func tap(key int) []keyStroke {
	return []keyStroke{{key, true}, {key, false}}
}

// entryModifiers are the keys that change what the hex entry types when
// they are down on the virtual keyboard.
var entryModifiers = map[uint16]bool{
	evdev.KEY_LEFTSHIFT: true, evdev.KEY_RIGHTSHIFT: true,
	evdev.KEY_LEFTCTRL: true, evdev.KEY_RIGHTCTRL: true,
	evdev.KEY_LEFTALT: true, evdev.KEY_RIGHTALT: true,
	evdev.KEY_LEFTMETA: true, evdev.KEY_RIGHTMETA: true,
}

// heldKeys records the modifiers currently down on the virtual keyboard, in
// the order they were pressed.
type heldKeys []int

func (h heldKeys) with(key int) heldKeys {
	for _, k := range h {
		if k == key {
			return h
		}
	}
	return append(h, key)
}

func (h heldKeys) without(key int) heldKeys {
	for i, k := range h {
		if k == key {
			return append(h[:i:i], h[i+1:]...)
		}
	}
	return h
}

// unicodeEntrySequence returns the keystrokes that type c through the
// Ctrl+Shift+U hex entry understood by IBus and GTK. The held modifiers are
// released for the duration of the entry and pressed again afterwards.
func unicodeEntrySequence(c glyph.CodePoint, held heldKeys) []keyStroke {
	var seq []keyStroke
	for _, k := range held {
		seq = append(seq, keyStroke{k, false})
	}

	seq = append(seq,
		keyStroke{evdev.KEY_LEFTCTRL, true},
		keyStroke{evdev.KEY_LEFTSHIFT, true},
	)
	seq = append(seq, tap(evdev.KEY_U)...)
	seq = append(seq,
		keyStroke{evdev.KEY_LEFTSHIFT, false},
		keyStroke{evdev.KEY_LEFTCTRL, false},
	)

	for _, r := range strconv.FormatUint(uint64(c), 16) {
		seq = append(seq, tap(hexKeys[r])...)
	}
	seq = append(seq, tap(evdev.KEY_SPACE)...)

	for _, k := range held {
		seq = append(seq, keyStroke{k, true})
	}
	return seq
}
