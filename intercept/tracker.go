package intercept

import "github.com/goFullwidth/keymaps"

// ModifierTracker derives modifier state from the event stream, for input
// facilities that cannot be queried for it. It must be fed every key event
// before the event is handled, from the goroutine that handles events.
type ModifierTracker struct {
	lctrl, rctrl   bool
	lshift, rshift bool

	capsLock, capsHeld bool
	numLock, numHeld   bool
}

// NewModifierTracker returns a tracker seeded with the current lock states.
func NewModifierTracker(capsLock, numLock bool) *ModifierTracker {
	return &ModifierTracker{capsLock: capsLock, numLock: numLock}
}

// Observe updates the state from one event.
func (t *ModifierTracker) Observe(ev Event) {
	var down bool
	switch {
	case ev.Transition.IsDown():
		down = true
	case ev.Transition.IsUp():
		down = false
	default:
		return
	}

	switch code := ev.Code; {
	case code == keymaps.KeyRControl:
		t.rctrl = down
	case code.IsControl():
		t.lctrl = down
	case code == keymaps.KeyRShift:
		t.rshift = down
	case code.IsShift():
		t.lshift = down
	case code == keymaps.KeyCapital:
		// Toggle on press, ignore auto-repeat
		if down && !t.capsHeld {
			t.capsLock = !t.capsLock
		}
		t.capsHeld = down
	case code == keymaps.KeyNumLock:
		if down && !t.numHeld {
			t.numLock = !t.numLock
		}
		t.numHeld = down
	}
}

// Modifiers implements ModifierStateProvider.
func (t *ModifierTracker) Modifiers() Modifiers {
	return Modifiers{
		Ctrl:     t.lctrl || t.rctrl,
		CapsLock: t.capsLock,
		Shift:    t.lshift || t.rshift,
	}
}

// NumLock reports whether Num Lock is on.
func (t *ModifierTracker) NumLock() bool {
	return t.numLock
}
