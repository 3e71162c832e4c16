package keymaps

// CreateDefaultProfileProvider creates and returns a provider with all default profiles
func CreateDefaultProfileProvider() *ProfileProvider {
	provider := NewProfileProvider()

	RegisterPhoneProfile(provider)
	RegisterLaptopProfile(provider)
	RegisterExternalProfile(provider)

	return provider
}

// GetKeyboardType determines the keyboard type based on device name
func GetKeyboardType(deviceName string) int {
	switch deviceName {
	case "AT Translated Set 2 keyboard":
		return KBD_TYPE_LAPTOP
	case "mtk-kpd", "matrix-keypad":
		return KBD_TYPE_PHONE
	default:
		return KBD_TYPE_EXTERNAL
	}
}
