// Package hook binds the interception controller to the operating system's
// low-level keyboard facility.
package hook

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goFullwidth/intercept"
)

// ErrUnsupported is returned on platforms without a keyboard hook.
var ErrUnsupported = errors.New("keyboard hook not supported on this platform")

// Handler processes one keyboard event and reports whether to mute it.
type Handler func(intercept.Event) intercept.Result

// Backend is one OS keyboard facility. It supplies live modifier state and
// synthetic input injection to the controller.
type Backend interface {
	intercept.ModifierStateProvider
	intercept.InputInjector

	// Install registers h as the listener for every key event.
	Install(h Handler) error
	// Pump delivers events to the handler until ctx is done.
	Pump(ctx context.Context) error
	// Uninstall removes the listener and releases OS resources.
	Uninstall() error
}

// Options configures the OS backends.
type Options struct {
	// DeviceNames selects evdev devices by name. Empty means every keyboard.
	DeviceNames []string
	// UInputPath is the uinput character device.
	UInputPath string
	// VirtualName names the virtual keyboard used for re-injection.
	VirtualName string
}

// InstallError means the listener could not be registered.
type InstallError struct {
	Err error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install keyboard hook: %v", e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Run installs h on b, pumps events until ctx is done and removes the
// listener on every exit path. Install failures are returned as
// *InstallError; uninstall failures are only logged.
func Run(ctx context.Context, b Backend, h Handler, log zerolog.Logger) (err error) {
	if err := b.Install(h); err != nil {
		return &InstallError{Err: err}
	}
	log.Info().Msg("keyboard hook installed")

	defer func() {
		if uerr := b.Uninstall(); uerr != nil {
			log.Error().Err(uerr).Msg("failed to remove keyboard hook")
			return
		}
		log.Info().Msg("keyboard hook removed")
	}()

	err = b.Pump(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
