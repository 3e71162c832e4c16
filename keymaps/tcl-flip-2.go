package keymaps

// GetPhoneProfile returns the profile for flip phone keypads. Keypad digits
// report main-row codes and have no shifted symbols.
func GetPhoneProfile() Profile {
	type keyAddresses struct {
		Key1 uint16
		Key2 uint16
		Key3 uint16
		Key4 uint16
		Key5 uint16
		Key6 uint16
		Key7 uint16
		Key8 uint16
		Key9 uint16
		Key0 uint16

		UpKey    uint16
		DownKey  uint16
		LeftKey  uint16
		RightKey uint16
	}
	ka := keyAddresses{
		// Numberpad
		Key1: 2,
		Key2: 3,
		Key3: 4,
		Key4: 5,
		Key5: 6,
		Key6: 7,
		Key7: 8,
		Key8: 9,
		Key9: 10,
		Key0: 11,

		UpKey:    103,
		DownKey:  108,
		LeftKey:  105,
		RightKey: 106,
	}
	return Profile{
		Name: "phone",
		Keys: map[uint16]KeyCode{
			ka.Key0: Digit(0),
			ka.Key1: Digit(1),
			ka.Key2: Digit(2),
			ka.Key3: Digit(3),
			ka.Key4: Digit(4),
			ka.Key5: Digit(5),
			ka.Key6: Digit(6),
			ka.Key7: Digit(7),
			ka.Key8: Digit(8),
			ka.Key9: Digit(9),
			// Arrows are never remapped but keep their identity for logging
			ka.UpKey:    KeyUp,
			ka.DownKey:  KeyDown,
			ka.LeftKey:  KeyLeft,
			ka.RightKey: KeyRight,
		},
	}
}

// RegisterPhoneProfile registers the phone keypad profile with the provider
func RegisterPhoneProfile(provider *ProfileProvider) {
	provider.RegisterProfile(KBD_TYPE_PHONE, GetPhoneProfile())
}
