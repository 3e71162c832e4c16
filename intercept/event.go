package intercept

import (
	"fmt"

	"github.com/goFullwidth/glyph"
	"github.com/goFullwidth/keymaps"
)

// Transition is the kind of keyboard transition the OS reported.
type Transition int

const (
	TransitionOther Transition = iota
	KeyDown
	KeyUp
	// SysKeyDown and SysKeyUp are reported while Alt is held.
	SysKeyDown
	SysKeyUp
)

func (t Transition) String() string {
	switch t {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case SysKeyDown:
		return "sysdown"
	case SysKeyUp:
		return "sysup"
	}
	return "other"
}

// IsDown reports whether t is a down-phase transition.
func (t Transition) IsDown() bool {
	return t == KeyDown || t == SysKeyDown
}

// IsUp reports whether t is an up-phase transition.
func (t Transition) IsUp() bool {
	return t == KeyUp || t == SysKeyUp
}

// Event is one raw keyboard transition.
type Event struct {
	Code       keymaps.KeyCode
	Transition Transition
}

func (e Event) String() string {
	return fmt.Sprintf("%v %v", e.Code, e.Transition)
}

// Modifiers is the modifier state at the moment of an event.
type Modifiers struct {
	Ctrl     bool
	CapsLock bool
	Shift    bool
}

// Phase of a synthetic key event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseUp
)

func (p Phase) String() string {
	if p == PhaseUp {
		return "up"
	}
	return "down"
}

// UnicodeInput is a synthetic key event carrying a single code point.
type UnicodeInput struct {
	Char  glyph.CodePoint
	Phase Phase
}

// ModifierStateProvider reports live modifier state. It is queried once per
// event and must not block.
type ModifierStateProvider interface {
	Modifiers() Modifiers
}

// InputInjector submits synthetic input to the OS. It returns the number of
// events the OS accepted.
type InputInjector interface {
	InjectUnicode(in UnicodeInput) (int, error)
}

// Result tells the caller what to do with the original event.
type Result int

// Constants for event return values
const (
	MuteEvent Result = iota
	PassThruEvent
)

func (r Result) String() string {
	if r == MuteEvent {
		return "mute"
	}
	return "pass"
}
