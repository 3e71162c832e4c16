package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	evdev "github.com/gvalkov/golang-evdev"
	"golang.org/x/sys/unix"

	"github.com/goFullwidth/keymaps"
)

// InputDevice represents a physical keyboard
type InputDevice struct {
	device  *evdev.InputDevice
	name    string
	path    string
	profile keymaps.Profile
}

// FindInputDevices locates keyboard devices. With no wanted names every
// device that looks like a keyboard is returned. The virtual keyboard we
// create ourselves is always skipped.
func FindInputDevices(wanted []string, virtualName string, profiles *keymaps.ProfileProvider) ([]*InputDevice, error) {
	var devices []*InputDevice

	devFiles, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}

	for _, path := range devFiles {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}

		if dev.Name == virtualName || !wantDevice(dev, wanted) {
			dev.File.Close()
			continue
		}

		devices = append(devices, &InputDevice{
			device:  dev,
			name:    dev.Name,
			path:    path,
			profile: profiles.GetProfile(keymaps.GetKeyboardType(dev.Name)),
		})
	}

	if len(devices) == 0 {
		return nil, errors.New("no suitable input devices found")
	}

	return devices, nil
}

func wantDevice(dev *evdev.InputDevice, wanted []string) bool {
	if len(wanted) == 0 {
		return isKeyboard(dev)
	}
	for _, name := range wanted {
		if dev.Name == name {
			return true
		}
	}
	return false
}

// isKeyboard reports whether the device can produce letters and space.
func isKeyboard(dev *evdev.InputDevice) bool {
	for ct, codes := range dev.Capabilities {
		if ct.Type != evdev.EV_KEY {
			continue
		}
		var hasA, hasSpace bool
		for _, c := range codes {
			switch c.Code {
			case evdev.KEY_A:
				hasA = true
			case evdev.KEY_SPACE:
				hasSpace = true
			}
		}
		return hasA && hasSpace
	}
	return false
}

// LED bit numbers from linux/input-event-codes.h
const (
	ledNumLock  = 0
	ledCapsLock = 1
)

// eviocgled builds the EVIOCGLED(len) request number.
func eviocgled(size int) uintptr {
	const iocRead = 2
	return uintptr(iocRead)<<30 | uintptr(size)<<16 | uintptr('E')<<8 | 0x19
}

// readLockLEDs reads the Caps Lock and Num Lock LEDs of a keyboard.
func readLockLEDs(f *os.File) (capsLock, numLock bool, err error) {
	var leds [8]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), eviocgled(len(leds)), uintptr(unsafe.Pointer(&leds[0])))
	if errno != 0 {
		return false, false, errno
	}
	return leds[0]&(1<<ledCapsLock) != 0, leds[0]&(1<<ledNumLock) != 0, nil
}
