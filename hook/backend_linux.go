package hook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"

	"github.com/goFullwidth/intercept"
	"github.com/goFullwidth/keymaps"
)

// evdev key values
const (
	keyReleased = 0
	keyPressed  = 1
	keyRepeat   = 2
)

// grabDelay lets the key that started the daemon be released before the
// keyboards are grabbed, otherwise its release never reaches the desktop.
const grabDelay = 300 * time.Millisecond

var errNotInstalled = errors.New("virtual keyboard not created")

// virtualKeyboard is the part of uinput.Keyboard we use.
type virtualKeyboard interface {
	KeyDown(key int) error
	KeyUp(key int) error
	Close() error
}

type deviceEvent struct {
	dev   *InputDevice
	event *evdev.InputEvent
}

// evdevBackend grabs physical keyboards and replays their events through a
// uinput virtual keyboard, so muting an event is simply not replaying it.
type evdevBackend struct {
	opts     Options
	log      zerolog.Logger
	profiles *keymaps.ProfileProvider

	tracker  *intercept.ModifierTracker
	keyboard virtualKeyboard
	held     heldKeys
	devices  []*InputDevice
	handler  Handler
	done     chan struct{}
	stopOnce sync.Once
}

// NewBackend returns the evdev/uinput backend.
func NewBackend(opts Options, log zerolog.Logger) (Backend, error) {
	return &evdevBackend{
		opts:     opts,
		log:      log,
		profiles: keymaps.CreateDefaultProfileProvider(),
		tracker:  intercept.NewModifierTracker(false, false),
	}, nil
}

func (b *evdevBackend) Install(h Handler) error {
	devices, err := FindInputDevices(b.opts.DeviceNames, b.opts.VirtualName, b.profiles)
	if err != nil {
		return err
	}

	keyboard, err := uinput.CreateKeyboard(b.opts.UInputPath, []byte(b.opts.VirtualName))
	if err != nil {
		closeDevices(devices)
		return fmt.Errorf("failed to create virtual keyboard: %w", err)
	}

	caps, num, err := readLockLEDs(devices[0].device.File)
	if err != nil {
		b.log.Warn().Err(err).Str("device", devices[0].name).Msg("cannot read lock LEDs, assuming off")
	}
	b.tracker = intercept.NewModifierTracker(caps, num)

	time.Sleep(grabDelay)

	var grabbed []*InputDevice
	for _, dev := range devices {
		if err := dev.device.Grab(); err != nil {
			b.log.Warn().Err(err).Str("device", dev.name).Msg("failed to grab device")
			dev.device.File.Close()
			continue
		}
		b.log.Info().Str("device", dev.name).Str("path", dev.path).Str("profile", dev.profile.Name).Msg("monitoring device")
		grabbed = append(grabbed, dev)
	}
	if len(grabbed) == 0 {
		keyboard.Close()
		return errors.New("could not grab any keyboard")
	}

	b.keyboard = keyboard
	b.devices = grabbed
	b.handler = h
	b.done = make(chan struct{})
	return nil
}

func (b *evdevBackend) Pump(ctx context.Context) error {
	events := make(chan deviceEvent, 64)
	errs := make(chan error, len(b.devices))

	for _, dev := range b.devices {
		go b.read(dev, events, errs)
	}

	live := len(b.devices)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case de := <-events:
			b.dispatch(de.dev, de.event)
		case err := <-errs:
			b.log.Error().Err(err).Msg("keyboard lost")
			live--
			if live == 0 {
				return errors.New("no keyboards left")
			}
		}
	}
}

func (b *evdevBackend) read(dev *InputDevice, events chan<- deviceEvent, errs chan<- error) {
	for {
		event, err := dev.device.ReadOne()
		if err != nil {
			select {
			case <-b.done:
			default:
				errs <- fmt.Errorf("error reading from %s: %w", dev.name, err)
			}
			return
		}
		select {
		case events <- deviceEvent{dev: dev, event: event}:
		case <-b.done:
			return
		}
	}
}

// dispatch runs one physical event through the handler and replays it
// unless the handler muted it.
func (b *evdevBackend) dispatch(dev *InputDevice, event *evdev.InputEvent) {
	if event.Type != evdev.EV_KEY {
		return
	}

	if code, ok := dev.profile.Translate(event.Code); ok {
		ev := intercept.Event{Code: code, Transition: transition(event.Value)}
		b.tracker.Observe(ev)

		// Without Num Lock the keypad digits are navigation keys
		if !(code.IsNumpadDigit() && !b.tracker.NumLock()) {
			if b.handler(ev) == intercept.MuteEvent {
				return
			}
		}
	}

	b.forward(event)
}

func transition(value int32) intercept.Transition {
	switch value {
	case keyPressed, keyRepeat:
		return intercept.KeyDown
	case keyReleased:
		return intercept.KeyUp
	}
	return intercept.TransitionOther
}

func (b *evdevBackend) forward(event *evdev.InputEvent) {
	var err error
	switch event.Value {
	case keyPressed, keyRepeat:
		err = b.keyboard.KeyDown(int(event.Code))
	case keyReleased:
		err = b.keyboard.KeyUp(int(event.Code))
	}
	if err != nil {
		b.log.Warn().Err(err).Uint16("code", event.Code).Msg("failed to forward key")
		return
	}

	if entryModifiers[event.Code] {
		if event.Value == keyReleased {
			b.held = b.held.without(int(event.Code))
		} else {
			b.held = b.held.with(int(event.Code))
		}
	}
}

// Modifiers implements intercept.ModifierStateProvider.
func (b *evdevBackend) Modifiers() intercept.Modifiers {
	return b.tracker.Modifiers()
}

// InjectUnicode implements intercept.InputInjector. The whole entry sequence
// is typed on the down phase; the up phase has nothing left to send.
func (b *evdevBackend) InjectUnicode(in intercept.UnicodeInput) (int, error) {
	if b.keyboard == nil {
		return 0, &intercept.InjectionError{Input: in, Err: errNotInstalled}
	}
	if in.Phase == intercept.PhaseUp {
		return 1, nil
	}

	for _, s := range unicodeEntrySequence(in.Char, b.held) {
		var err error
		if s.down {
			err = b.keyboard.KeyDown(s.key)
		} else {
			err = b.keyboard.KeyUp(s.key)
		}
		if err != nil {
			ie := &intercept.InjectionError{Input: in, Err: err}
			var errno syscall.Errno
			if errors.As(err, &errno) {
				ie.Code = uint32(errno)
			}
			return 0, ie
		}
	}
	return 1, nil
}

func (b *evdevBackend) Uninstall() error {
	var errs []error
	b.stopOnce.Do(func() {
		if b.done != nil {
			close(b.done)
		}
		for _, dev := range b.devices {
			if err := dev.device.Release(); err != nil {
				errs = append(errs, fmt.Errorf("release %s: %w", dev.name, err))
			}
		}
		closeDevices(b.devices)
		if b.keyboard != nil {
			if err := b.keyboard.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close virtual keyboard: %w", err))
			}
		}
	})
	return errors.Join(errs...)
}

func closeDevices(devices []*InputDevice) {
	for _, dev := range devices {
		dev.device.File.Close()
	}
}
