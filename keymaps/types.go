package keymaps

// Define keyboard types
const (
	KBD_TYPE_PHONE = iota
	KBD_TYPE_LAPTOP
	KBD_TYPE_EXTERNAL
)

// Profile translates the evdev key codes of one kind of keyboard into
// KeyCodes. Keys missing from the table are never remapped.
type Profile struct {
	Name string
	Keys map[uint16]KeyCode
}

// Translate returns the KeyCode for an evdev key code.
func (p Profile) Translate(code uint16) (KeyCode, bool) {
	k, ok := p.Keys[code]
	return k, ok
}

// ProfileProvider provides translation profiles for different keyboard types
type ProfileProvider struct {
	profiles map[int]Profile
}

// NewProfileProvider creates an empty provider
func NewProfileProvider() *ProfileProvider {
	return &ProfileProvider{
		profiles: map[int]Profile{},
	}
}

// GetProfile returns the profile for the specified keyboard type
func (p *ProfileProvider) GetProfile(keyboardType int) Profile {
	profile, exists := p.profiles[keyboardType]
	if !exists {
		// Default to the laptop layout if type not found
		return p.profiles[KBD_TYPE_LAPTOP]
	}
	return profile
}

// RegisterProfile registers a profile for a specific keyboard type
func (p *ProfileProvider) RegisterProfile(keyboardType int, profile Profile) {
	p.profiles[keyboardType] = profile
}
