// Package intercept decides, for every raw keyboard transition, whether the
// event passes through or is swallowed and replaced by a fullwidth character.
package intercept

import (
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/goFullwidth/glyph"
)

// Stats counts what the controller did with the events it saw.
type Stats struct {
	Translated uint64
	Passed     uint64
	Failed     uint64
}

// Controller is the keyboard event handler. It keeps no state between
// events apart from counters, and never blocks beyond the injector call.
type Controller struct {
	resolver *glyph.Resolver
	mods     ModifierStateProvider
	injector InputInjector
	log      zerolog.Logger

	translated atomic.Uint64
	passed     atomic.Uint64
	failed     atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New creates a controller. The resolver's symbol table must be fully built
// before the controller is handed to a hook.
func New(resolver *glyph.Resolver, mods ModifierStateProvider, injector InputInjector, opts ...Option) *Controller {
	c := &Controller{
		resolver: resolver,
		mods:     mods,
		injector: injector,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleEvent processes one transition and reports whether the original
// event must be muted. When it returns MuteEvent exactly one synthetic
// event with the matching phase has been submitted.
func (c *Controller) HandleEvent(ev Event) Result {
	var phase Phase
	switch {
	case ev.Transition.IsDown():
		phase = PhaseDown
	case ev.Transition.IsUp():
		phase = PhaseUp
	default:
		return c.pass()
	}

	m := c.mods.Modifiers()
	// Never interfere with Ctrl chords
	if m.Ctrl {
		return c.pass()
	}

	ch, ok := c.resolver.Resolve(ev.Code, glyph.EffectiveCase(m.CapsLock, m.Shift), m.Shift)
	if !ok {
		return c.pass()
	}

	in := UnicodeInput{Char: ch, Phase: phase}
	if err := c.inject(in); err != nil {
		// The original stays muted even though nothing was typed
		c.failed.Add(1)
		c.log.Warn().Err(err).Stringer("key", ev.Code).Msg("failed to send unicode input")
		return MuteEvent
	}

	c.translated.Add(1)
	c.log.Debug().
		Stringer("key", ev.Code).
		Stringer("transition", ev.Transition).
		Stringer("char", ch).
		Bool("shift", m.Shift).
		Bool("caps", m.CapsLock).
		Msg("translated")
	return MuteEvent
}

func (c *Controller) inject(in UnicodeInput) error {
	n, err := c.injector.InjectUnicode(in)
	if n > 0 {
		return nil
	}
	if err == nil {
		err = ErrNothingInjected
	}
	var ie *InjectionError
	if errors.As(err, &ie) {
		return err
	}
	return &InjectionError{Input: in, Err: err}
}

func (c *Controller) pass() Result {
	c.passed.Add(1)
	return PassThruEvent
}

// Stats returns a snapshot of the counters.
func (c *Controller) Stats() Stats {
	return Stats{
		Translated: c.translated.Load(),
		Passed:     c.passed.Load(),
		Failed:     c.failed.Load(),
	}
}
