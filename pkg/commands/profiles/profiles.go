// Package profiles lists and changes the named sets of tracked paths.
package profiles

import (
	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// List returns every profile in configuration order.
func List(cfg *config.Config) *types.ProfileListResult {
	result := &types.ProfileListResult{
		Active:   cfg.ActiveProfile,
		Profiles: make([]types.ProfileSummary, 0, len(cfg.Profiles)),
	}
	for _, p := range cfg.Profiles {
		result.Profiles = append(result.Profiles, types.ProfileSummary{
			Name:   p.Name,
			Paths:  len(p.Paths),
			Active: p.Name == cfg.ActiveProfile,
		})
	}
	return result
}

// Create adds a profile. The first profile becomes active.
func Create(cfg *config.Config, name string) (*types.ProfileChange, error) {
	if err := cfg.CreateProfile(name); err != nil {
		return nil, err
	}
	return changed(cfg, name, "created"), nil
}

// Switch makes name the active profile.
func Switch(cfg *config.Config, name string) (*types.ProfileChange, error) {
	if err := cfg.SwitchProfile(name); err != nil {
		return nil, err
	}
	return changed(cfg, name, "switched"), nil
}

// Delete removes a profile. Deleting the active profile leaves none active.
func Delete(cfg *config.Config, name string) (*types.ProfileChange, error) {
	if err := cfg.DeleteProfile(name); err != nil {
		return nil, err
	}
	return changed(cfg, name, "deleted"), nil
}

func changed(cfg *config.Config, name, action string) *types.ProfileChange {
	logger := logging.GetLogger("commands.profiles")
	logger.Info().
		Str("profile", name).
		Str("action", action).
		Str("active", cfg.ActiveProfile).
		Msg("Profile changed")
	return &types.ProfileChange{Profile: name, Action: action, Active: cfg.ActiveProfile}
}
