package config

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

const fileHeader = "# fuxi configuration, managed by fuxi.\n\n"

// Store reads and writes the configuration file.
type Store struct {
	path string
	fs   types.FS
}

// NewStore returns a Store for the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path, fs: filesystem.NewOS()}
}

// DefaultStore returns the Store for $XDG_CONFIG_HOME/fuxi/config.toml.
func DefaultStore() *Store {
	return NewStore(paths.New().ConfigFile())
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *Store) Exists() bool {
	return filesystem.Exists(s.fs, s.path)
}

// Load reads the configuration. It fails with ErrConfigMissing when the
// file does not exist and ErrConfigCorrupt when it cannot be decoded.
func (s *Store) Load() (*Config, error) {
	logger := logging.GetLogger("config")

	if _, err := s.fs.Stat(s.path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Newf(errors.ErrConfigMissing, "no configuration at %s", s.path).
				WithDetail("path", s.path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigCorrupt, "cannot read %s", s.path)
	}

	k, overrides, err := loadLayers(s.path)
	if err != nil {
		var pe *parseError
		if stderrors.As(err, &pe) {
			return nil, errors.Wrapf(pe.err, errors.ErrConfigCorrupt, "cannot parse %s", s.path).
				WithDetail("path", s.path)
		}
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot load configuration")
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigCorrupt, "invalid values in %s", s.path).
			WithDetail("path", s.path)
	}
	if err := postProcess(cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigCorrupt, "invalid configuration in %s", s.path).
			WithDetail("path", s.path)
	}
	if err := cfg.trackEnv(overrides); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot load configuration")
	}

	logger.Debug().
		Str("path", s.path).
		Int("profiles", len(cfg.Profiles)).
		Str("active", cfg.ActiveProfile).
		Msg("Configuration loaded")
	return cfg, nil
}

// LoadOrDefault behaves like Load but starts from defaults when no file
// exists yet.
func (s *Store) LoadOrDefault() (*Config, error) {
	cfg, err := s.Load()
	if errors.IsErrorCode(err, errors.ErrConfigMissing) {
		logger := logging.GetLogger("config")
		logger.Debug().Str("path", s.path).Msg("No configuration file, using defaults")
		return Defaults()
	}
	return cfg, err
}

// Save writes cfg atomically. On failure the previous file is untouched.
func (s *Store) Save(cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}

	if err := filesystem.WriteFileAtomic(s.fs, s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "cannot write %s", s.path).
			WithDetail("path", s.path)
	}

	logger := logging.GetLogger("config")
	logger.Debug().Str("path", s.path).Msg("Configuration saved")
	return nil
}

// Marshal renders cfg as the TOML written to disk. Environment overrides
// the program left untouched are not written.
func Marshal(cfg *Config) ([]byte, error) {
	persisted, err := cfg.withoutEnv()
	if err != nil {
		return nil, err
	}
	body, err := toml.Marshal(persisted)
	if err != nil {
		return nil, err
	}
	return append([]byte(fileHeader), body...), nil
}
