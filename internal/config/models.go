package config

import (
	"fmt"
	"sort"
	"strings"
)

// CurrentVersion is the only registry file version this package understands.
const CurrentVersion = 1

// Registry represents the entire user configuration file.
// It stores shocker nicknames and application preferences, never credentials.
type Registry struct {
	Version     int                 `yaml:"version"`
	Preferences *Preferences        `yaml:"preferences,omitempty"`
	Shockers    map[string]*Shocker `yaml:"shockers,omitempty"` // Keyed by nickname
}

// Shocker is a user-defined alias for a shocker id.
type Shocker struct {
	ID           string `yaml:"id"`
	DeviceID     string `yaml:"device_id,omitempty"`
	MaxIntensity int    `yaml:"max_intensity,omitempty"` // 0 means no cap beyond the API's 100
}

// Preferences represents application-wide user preferences.
// Zero values mean "use the built-in default".
type Preferences struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	ConfirmShock   *bool  `yaml:"confirm_shock,omitempty"` // nil means true
	// The API key is NEVER stored in the config file
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     CurrentVersion,
		Preferences: &Preferences{},
		Shockers:    make(map[string]*Shocker),
	}
}

// ShouldConfirmShock reports whether shock commands ask for confirmation.
func (p *Preferences) ShouldConfirmShock() bool {
	return p == nil || p.ConfirmShock == nil || *p.ConfirmShock
}

// GetShocker retrieves an alias by nickname. Returns nil if it doesn't exist.
func (r *Registry) GetShocker(nickname string) *Shocker {
	return r.Shockers[nickname]
}

// SetShocker creates or replaces the alias for nickname.
func (r *Registry) SetShocker(nickname string, s *Shocker) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return fmt.Errorf("nickname must not be empty")
	}
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("shocker id must not be empty")
	}
	if s.MaxIntensity < 0 || s.MaxIntensity > 100 {
		return fmt.Errorf("max intensity %d out of range (0-100)", s.MaxIntensity)
	}
	if r.Shockers == nil {
		r.Shockers = make(map[string]*Shocker)
	}
	r.Shockers[nickname] = s
	return nil
}

// RemoveShocker deletes an alias. Returns false if it didn't exist.
func (r *Registry) RemoveShocker(nickname string) bool {
	if _, ok := r.Shockers[nickname]; !ok {
		return false
	}
	delete(r.Shockers, nickname)
	return true
}

// ResolveShocker maps a nickname to its stored shocker id. Anything that is
// not a known nickname is returned unchanged and treated as a raw id; the
// returned alias is nil in that case.
func (r *Registry) ResolveShocker(nameOrID string) (string, *Shocker) {
	if s, ok := r.Shockers[nameOrID]; ok && s != nil {
		return s.ID, s
	}
	return nameOrID, nil
}

// Nicknames returns the alias names in sorted order.
func (r *Registry) Nicknames() []string {
	names := make([]string, 0, len(r.Shockers))
	for name := range r.Shockers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CapIntensity lowers intensity to the alias's max_intensity, if one is set.
func (s *Shocker) CapIntensity(intensity int) int {
	if s == nil || s.MaxIntensity <= 0 {
		return intensity
	}
	return min(intensity, s.MaxIntensity)
}
