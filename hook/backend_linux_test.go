package hook

import (
	"errors"
	"syscall"
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goFullwidth/glyph"
	"github.com/goFullwidth/intercept"
	"github.com/goFullwidth/keymaps"
)

type fakeKeyboard struct {
	strokes []keyStroke
	err     error
	closed  bool
}

func (k *fakeKeyboard) KeyDown(key int) error {
	if k.err != nil {
		return k.err
	}
	k.strokes = append(k.strokes, keyStroke{key, true})
	return nil
}

func (k *fakeKeyboard) KeyUp(key int) error {
	if k.err != nil {
		return k.err
	}
	k.strokes = append(k.strokes, keyStroke{key, false})
	return nil
}

func (k *fakeKeyboard) Close() error {
	k.closed = true
	return nil
}

func newTestBackend(kbd *fakeKeyboard) (*evdevBackend, *InputDevice) {
	b := &evdevBackend{
		log:      zerolog.Nop(),
		tracker:  intercept.NewModifierTracker(false, true),
		keyboard: kbd,
	}
	c := intercept.New(glyph.NewResolver(nil), b, b)
	b.handler = c.HandleEvent
	return b, &InputDevice{name: "test", profile: keymaps.GetLaptopProfile()}
}

func key(code uint16, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

// replay runs strokes against a virtual key state, calling each for every
// stroke, and returns the keys still down at the end.
func replay(strokes []keyStroke, each func(down map[int]bool)) map[int]bool {
	down := map[int]bool{}
	for _, s := range strokes {
		if s.down {
			down[s.key] = true
		} else {
			delete(down, s.key)
		}
		if each != nil {
			each(down)
		}
	}
	return down
}

func TestDispatchTranslatesLetter(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_A, keyPressed))
	assert.Equal(t, unicodeEntrySequence(0xFF41, nil), kbd.strokes)

	kbd.strokes = nil
	b.dispatch(dev, key(evdev.KEY_A, keyReleased))
	assert.Empty(t, kbd.strokes, "release is muted and needs no keystrokes")
}

func TestDispatchForwardsUnmappedKeys(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_ENTER, keyPressed))
	b.dispatch(dev, key(evdev.KEY_ENTER, keyRepeat))
	b.dispatch(dev, key(evdev.KEY_ENTER, keyReleased))

	assert.Equal(t, []keyStroke{
		{evdev.KEY_ENTER, true},
		{evdev.KEY_ENTER, true},
		{evdev.KEY_ENTER, false},
	}, kbd.strokes)
}

func TestDispatchIgnoresNonKeyEvents(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, &evdev.InputEvent{Type: evdev.EV_SYN})
	b.dispatch(dev, &evdev.InputEvent{Type: evdev.EV_MSC, Code: 4, Value: 30})
	assert.Empty(t, kbd.strokes)
}

func TestDispatchCtrlChordPassesThrough(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_LEFTCTRL, keyPressed))
	b.dispatch(dev, key(evdev.KEY_C, keyPressed))
	b.dispatch(dev, key(evdev.KEY_C, keyReleased))
	b.dispatch(dev, key(evdev.KEY_LEFTCTRL, keyReleased))

	assert.Equal(t, []keyStroke{
		{evdev.KEY_LEFTCTRL, true},
		{evdev.KEY_C, true},
		{evdev.KEY_C, false},
		{evdev.KEY_LEFTCTRL, false},
	}, kbd.strokes)
}

func TestDispatchShiftedDigit(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_LEFTSHIFT, keyPressed))
	kbd.strokes = nil
	b.dispatch(dev, key(evdev.KEY_1, keyPressed))

	assert.Equal(t, unicodeEntrySequence(0xFF01, heldKeys{evdev.KEY_LEFTSHIFT}), kbd.strokes)
}

func TestDispatchRightShiftDigit(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_RIGHTSHIFT, keyPressed))
	b.dispatch(dev, key(evdev.KEY_1, keyPressed))
	b.dispatch(dev, key(evdev.KEY_1, keyReleased))
	b.dispatch(dev, key(evdev.KEY_RIGHTSHIFT, keyReleased))

	entry := unicodeEntrySequence(0xFF01, heldKeys{evdev.KEY_RIGHTSHIFT})
	want := append([]keyStroke{{evdev.KEY_RIGHTSHIFT, true}}, entry...)
	want = append(want, keyStroke{evdev.KEY_RIGHTSHIFT, false})
	assert.Equal(t, want, kbd.strokes)

	left := replay(kbd.strokes, func(down map[int]bool) {
		if down[evdev.KEY_F] || down[evdev.KEY_0] || down[evdev.KEY_1] {
			assert.False(t, down[evdev.KEY_RIGHTSHIFT], "right shift down during hex digits")
			assert.False(t, down[evdev.KEY_LEFTSHIFT], "left shift down during hex digits")
		}
	})
	assert.Empty(t, left, "keys stuck after every physical key is released")
	assert.Empty(t, b.held)
}

func TestDispatchAltLetter(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_LEFTALT, keyPressed))
	kbd.strokes = nil
	b.dispatch(dev, key(evdev.KEY_A, keyPressed))

	assert.Equal(t, unicodeEntrySequence(0xFF41, heldKeys{evdev.KEY_LEFTALT}), kbd.strokes)
	replay(kbd.strokes, func(down map[int]bool) {
		if down[evdev.KEY_U] {
			assert.Equal(t, map[int]bool{
				evdev.KEY_LEFTCTRL:  true,
				evdev.KEY_LEFTSHIFT: true,
				evdev.KEY_U:         true,
			}, down, "entry chord is exactly Ctrl+Shift+U")
		}
	})

	b.dispatch(dev, key(evdev.KEY_A, keyReleased))
	b.dispatch(dev, key(evdev.KEY_LEFTALT, keyReleased))
	assert.Empty(t, replay(append([]keyStroke{{evdev.KEY_LEFTALT, true}}, kbd.strokes...), nil))
}

func TestDispatchKeypadNeedsNumLock(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, dev := newTestBackend(kbd)

	b.dispatch(dev, key(evdev.KEY_KP5, keyPressed))
	assert.Equal(t, unicodeEntrySequence(0xFF15, nil), kbd.strokes)

	// Num Lock off: keypad 5 is forwarded untouched
	b.dispatch(dev, key(evdev.KEY_NUMLOCK, keyPressed))
	b.dispatch(dev, key(evdev.KEY_NUMLOCK, keyReleased))
	kbd.strokes = nil
	b.dispatch(dev, key(evdev.KEY_KP5, keyPressed))
	assert.Equal(t, []keyStroke{{evdev.KEY_KP5, true}}, kbd.strokes)
}

func TestInjectUnicodeReportsErrno(t *testing.T) {
	kbd := &fakeKeyboard{err: syscall.EBADF}
	b, _ := newTestBackend(kbd)

	n, err := b.InjectUnicode(intercept.UnicodeInput{Char: 0xFF41})
	assert.Zero(t, n)
	var ie *intercept.InjectionError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, uint32(syscall.EBADF), ie.Code)
}

func TestInjectUnicodeBeforeInstall(t *testing.T) {
	b := &evdevBackend{tracker: intercept.NewModifierTracker(false, false)}
	n, err := b.InjectUnicode(intercept.UnicodeInput{Char: 0xFF41})
	assert.Zero(t, n)
	assert.ErrorIs(t, err, errNotInstalled)
}

func TestTransition(t *testing.T) {
	assert.Equal(t, intercept.KeyDown, transition(keyPressed))
	assert.Equal(t, intercept.KeyDown, transition(keyRepeat))
	assert.Equal(t, intercept.KeyUp, transition(keyReleased))
	assert.Equal(t, intercept.TransitionOther, transition(7))
}

func TestUninstallClosesKeyboard(t *testing.T) {
	kbd := &fakeKeyboard{}
	b, _ := newTestBackend(kbd)
	b.done = make(chan struct{})

	require.NoError(t, b.Uninstall())
	assert.True(t, kbd.closed)
	// second call is a no-op
	require.NoError(t, b.Uninstall())
}
