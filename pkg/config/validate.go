package config

import (
	"fmt"

	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/paths"
)

// postProcess fills derived defaults and rejects configurations that
// break the profile invariants.
func postProcess(cfg *Config) error {
	if cfg.Repository != nil && cfg.Repository.Branch == "" {
		cfg.Repository.Branch = DefaultBranch
	}

	seen := make(map[string]bool, len(cfg.Profiles))
	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		if err := paths.ValidateProfileName(p.Name); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("profile %q is defined twice", p.Name)
		}
		seen[p.Name] = true

		sources := make(map[string]bool, len(p.Paths))
		for _, tp := range p.Paths {
			if tp.Kind == "" {
				return fmt.Errorf("profile %q: path %s has no kind", p.Name, tp.Source)
			}
			if sources[tp.Source] {
				return fmt.Errorf("profile %q tracks %s twice", p.Name, tp.Source)
			}
			sources[tp.Source] = true
		}
	}

	if cfg.ActiveProfile != "" && !seen[cfg.ActiveProfile] {
		logger := logging.GetLogger("config")
		logger.Warn().
			Str("profile", cfg.ActiveProfile).
			Msg("Active profile does not exist, clearing it")
		cfg.ActiveProfile = ""
	}

	return nil
}
