package config

import (
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/paths"
)

// ProfileNames returns profile names in creation order.
func (c *Config) ProfileNames() []string {
	names := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		names[i] = p.Name
	}
	return names
}

// CreateProfile adds an empty profile. The first profile created while no
// profile is active becomes the active one.
func (c *Config) CreateProfile(name string) error {
	if err := paths.ValidateProfileName(name); err != nil {
		return err
	}
	if _, exists := c.Profile(name); exists {
		return errors.Newf(errors.ErrDuplicateProfile, "profile %q already exists", name).
			WithDetail("profile", name)
	}

	c.Profiles = append(c.Profiles, Profile{Name: name})
	if c.ActiveProfile == "" {
		c.ActiveProfile = name
	}
	return nil
}

// SwitchProfile makes name the active profile.
func (c *Config) SwitchProfile(name string) error {
	if _, ok := c.Profile(name); !ok {
		return errors.Newf(errors.ErrUnknownProfile, "no profile named %q", name).
			WithDetail("profile", name)
	}
	c.ActiveProfile = name
	return nil
}

// DeleteProfile removes a profile and its tracked paths. Deleting the
// active profile leaves no profile active.
func (c *Config) DeleteProfile(name string) error {
	idx := -1
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Newf(errors.ErrUnknownProfile, "no profile named %q", name).
			WithDetail("profile", name)
	}

	c.Profiles = append(c.Profiles[:idx], c.Profiles[idx+1:]...)
	if c.ActiveProfile == name {
		c.ActiveProfile = ""
	}
	return nil
}
