package keymaps

// pcKeys maps evdev key codes of a standard PC keyboard to KeyCodes.
// Codes from linux/input-event-codes.h
var pcKeys = map[uint16]KeyCode{
	// Number row
	2:  Digit(1),
	3:  Digit(2),
	4:  Digit(3),
	5:  Digit(4),
	6:  Digit(5),
	7:  Digit(6),
	8:  Digit(7),
	9:  Digit(8),
	10: Digit(9),
	11: Digit(0),
	12: KeyOemMinus,
	13: KeyOemPlus,

	// Letters
	16: Letter('Q'),
	17: Letter('W'),
	18: Letter('E'),
	19: Letter('R'),
	20: Letter('T'),
	21: Letter('Y'),
	22: Letter('U'),
	23: Letter('I'),
	24: Letter('O'),
	25: Letter('P'),
	30: Letter('A'),
	31: Letter('S'),
	32: Letter('D'),
	33: Letter('F'),
	34: Letter('G'),
	35: Letter('H'),
	36: Letter('J'),
	37: Letter('K'),
	38: Letter('L'),
	44: Letter('Z'),
	45: Letter('X'),
	46: Letter('C'),
	47: Letter('V'),
	48: Letter('B'),
	49: Letter('N'),
	50: Letter('M'),

	// Punctuation
	26: KeyOem4,      // [
	27: KeyOem6,      // ]
	39: KeyOem1,      // ;
	40: KeyOem7,      // '
	41: KeyOem3,      // `
	43: KeyOem5,      // \
	51: KeyOemComma,  // ,
	52: KeyOemPeriod, // .
	53: KeyOem2,      // /
	57: KeySpace,

	// Keypad digits, only meaningful with Num Lock on
	71: NumpadDigit(7),
	72: NumpadDigit(8),
	73: NumpadDigit(9),
	75: NumpadDigit(4),
	76: NumpadDigit(5),
	77: NumpadDigit(6),
	79: NumpadDigit(1),
	80: NumpadDigit(2),
	81: NumpadDigit(3),
	82: NumpadDigit(0),

	// Modifiers
	29:  KeyLControl,
	97:  KeyRControl,
	42:  KeyLShift,
	54:  KeyRShift,
	56:  KeyLMenu,
	100: KeyRMenu,
	58:  KeyCapital,
	69:  KeyNumLock,
}

// GetLaptopProfile returns the profile for built-in laptop keyboards
func GetLaptopProfile() Profile {
	return Profile{Name: "laptop", Keys: pcKeys}
}

// GetExternalProfile returns the profile for external USB keyboards
func GetExternalProfile() Profile {
	return Profile{Name: "external", Keys: pcKeys}
}

// RegisterLaptopProfile registers the laptop keyboard profile with the provider
func RegisterLaptopProfile(provider *ProfileProvider) {
	provider.RegisterProfile(KBD_TYPE_LAPTOP, GetLaptopProfile())
}

// RegisterExternalProfile registers the external keyboard profile with the provider
func RegisterExternalProfile(provider *ProfileProvider) {
	provider.RegisterProfile(KBD_TYPE_EXTERNAL, GetExternalProfile())
}
