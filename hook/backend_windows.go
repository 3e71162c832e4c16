package hook

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"github.com/goFullwidth/intercept"
	"github.com/goFullwidth/keymaps"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetKeyState         = user32.NewProc("GetKeyState")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procSendInput           = user32.NewProc("SendInput")
)

const (
	whKeyboardLL = 13
	hcAction     = 0

	wmQuit       = 0x0012
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	inputKeyboard    = 1
	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// keyboardInput mirrors INPUT with the keyboard arm of the union; the
// padding covers the larger MOUSEINPUT arm.
type keyboardInput struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

// llHookBackend is a WH_KEYBOARD_LL hook. The hook, the message loop and
// the callback all run on one locked OS thread.
type llHookBackend struct {
	log      zerolog.Logger
	handler  Handler
	hook     uintptr
	threadID uint32
	callback uintptr
}

// NewBackend returns the low-level keyboard hook backend.
func NewBackend(opts Options, log zerolog.Logger) (Backend, error) {
	return &llHookBackend{log: log}, nil
}

func (b *llHookBackend) Install(h Handler) error {
	runtime.LockOSThread()

	b.handler = h
	b.threadID = windows.GetCurrentThreadId()
	if b.callback == 0 {
		b.callback = windows.NewCallback(b.hookProc)
	}

	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, b.callback, 0, 0)
	if hook == 0 {
		runtime.UnlockOSThread()
		return fmt.Errorf("SetWindowsHookExW: %w", err)
	}
	b.hook = hook
	return nil
}

func (b *llHookBackend) Pump(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			procPostThreadMessageW.Call(uintptr(b.threadID), wmQuit, 0, 0)
		case <-stop:
		}
	}()

	var m msg
	for {
		ret, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case 0:
			return ctx.Err()
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		}
	}
}

func (b *llHookBackend) Uninstall() error {
	defer runtime.UnlockOSThread()
	if b.hook == 0 {
		return nil
	}
	ok, _, err := procUnhookWindowsHookEx.Call(b.hook)
	b.hook = 0
	if ok == 0 {
		return fmt.Errorf("UnhookWindowsHookEx: %w", err)
	}
	return nil
}

func (b *llHookBackend) hookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode == hcAction {
		var tr intercept.Transition
		switch wParam {
		case wmKeyDown:
			tr = intercept.KeyDown
		case wmKeyUp:
			tr = intercept.KeyUp
		case wmSysKeyDown:
			tr = intercept.SysKeyDown
		case wmSysKeyUp:
			tr = intercept.SysKeyUp
		default:
			tr = intercept.TransitionOther
		}

		kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		ev := intercept.Event{Code: keymaps.KeyCode(kb.VkCode), Transition: tr}
		if b.handler(ev) == intercept.MuteEvent {
			// Return 1 to suppress the key
			return 1
		}
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func keyHeld(vk keymaps.KeyCode) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return int16(r) < 0
}

func keyToggled(vk keymaps.KeyCode) bool {
	r, _, _ := procGetKeyState.Call(uintptr(vk))
	return r&0x0001 != 0
}

// Modifiers implements intercept.ModifierStateProvider.
func (b *llHookBackend) Modifiers() intercept.Modifiers {
	return intercept.Modifiers{
		Ctrl:     keyHeld(keymaps.KeyControl),
		CapsLock: keyToggled(keymaps.KeyCapital),
		Shift:    keyHeld(keymaps.KeyShift),
	}
}

// InjectUnicode implements intercept.InputInjector with SendInput.
func (b *llHookBackend) InjectUnicode(in intercept.UnicodeInput) (int, error) {
	inp := keyboardInput{
		Type: inputKeyboard,
		Ki: keybdInput{
			WScan:   uint16(in.Char),
			DwFlags: keyeventfUnicode,
		},
	}
	if in.Phase == intercept.PhaseUp {
		inp.Ki.DwFlags |= keyeventfKeyUp
	}

	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&inp)), unsafe.Sizeof(inp))
	if n == 0 {
		ie := &intercept.InjectionError{Input: in, Err: intercept.ErrNothingInjected}
		var errno windows.Errno
		if errors.As(err, &errno) {
			ie.Code = uint32(errno)
		}
		return 0, ie
	}
	return int(n), nil
}
