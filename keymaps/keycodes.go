package keymaps

import "fmt"

// KeyCode identifies a physical key position. Codes follow the Windows
// virtual-key numbering, which keeps letters, main-row digits and keypad
// digits in contiguous runs.
type KeyCode uint32

// Letters and digits
const (
	KeyA KeyCode = 0x41
	KeyZ KeyCode = 0x5A

	Key0 KeyCode = 0x30
	Key9 KeyCode = 0x39

	KeyNumpad0 KeyCode = 0x60
	KeyNumpad9 KeyCode = 0x69
)

// Punctuation and space (US layout positions)
const (
	KeySpace     KeyCode = 0x20
	KeyOem1      KeyCode = 0xBA // ;:
	KeyOemPlus   KeyCode = 0xBB // =+
	KeyOemComma  KeyCode = 0xBC // ,<
	KeyOemMinus  KeyCode = 0xBD // -_
	KeyOemPeriod KeyCode = 0xBE // .>
	KeyOem2      KeyCode = 0xBF // /?
	KeyOem3      KeyCode = 0xC0 // `~
	KeyOem4      KeyCode = 0xDB // [{
	KeyOem5      KeyCode = 0xDC // \|
	KeyOem6      KeyCode = 0xDD // ]}
	KeyOem7      KeyCode = 0xDE // '"
)

// Arrows
const (
	KeyLeft  KeyCode = 0x25
	KeyUp    KeyCode = 0x26
	KeyRight KeyCode = 0x27
	KeyDown  KeyCode = 0x28
)

// Modifiers and keys the daemon needs to recognise
const (
	KeyShift    KeyCode = 0x10
	KeyControl  KeyCode = 0x11
	KeyCapital  KeyCode = 0x14 // Caps Lock
	KeyNumLock  KeyCode = 0x90
	KeyLShift   KeyCode = 0xA0
	KeyRShift   KeyCode = 0xA1
	KeyLControl KeyCode = 0xA2
	KeyRControl KeyCode = 0xA3
	KeyLMenu    KeyCode = 0xA4
	KeyRMenu    KeyCode = 0xA5
	KeyPacket   KeyCode = 0xE7 // carrier for injected unicode input
)

// Digit returns the main-row digit key for n (0-9).
func Digit(n int) KeyCode {
	return Key0 + KeyCode(n)
}

// NumpadDigit returns the keypad digit key for n (0-9).
func NumpadDigit(n int) KeyCode {
	return KeyNumpad0 + KeyCode(n)
}

// Letter returns the key for an upper or lower case ASCII letter.
func Letter(c byte) KeyCode {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return KeyCode(c)
}

// IsLetter reports whether k lies in the A-Z range.
func (k KeyCode) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsNumpadDigit reports whether k lies in the keypad digit range.
func (k KeyCode) IsNumpadDigit() bool {
	return k >= KeyNumpad0 && k <= KeyNumpad9
}

// IsShift reports whether k is one of the shift keys.
func (k KeyCode) IsShift() bool {
	return k == KeyShift || k == KeyLShift || k == KeyRShift
}

// IsControl reports whether k is one of the control keys.
func (k KeyCode) IsControl() bool {
	return k == KeyControl || k == KeyLControl || k == KeyRControl
}

func (k KeyCode) String() string {
	switch {
	case k.IsLetter(), k >= Key0 && k <= Key9:
		return string(rune(k))
	case k.IsNumpadDigit():
		return fmt.Sprintf("Numpad%d", k-KeyNumpad0)
	case k == KeySpace:
		return "Space"
	}
	return fmt.Sprintf("VK(0x%02X)", uint32(k))
}
