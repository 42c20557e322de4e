package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "FUXI_"

// envRoots are the top level keys environment variables may set.
var envRoots = []string{"active_profile", "last_backup_id", "repository.", "git."}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultsContent returns the embedded defaults file.
func DefaultsContent() string {
	return string(defaultConfig)
}

// envOverride is a key set from the environment. base is what defaults
// and the file held for it; loaded is the decoded value as marshaled.
type envOverride struct {
	base    interface{}
	hasBase bool
	loaded  string
}

// loadLayers builds the koanf instance. An empty path skips the file
// layer. The returned overrides list every key the environment set.
func loadLayers(path string) (*koanf.Koanf, map[string]*envOverride, error) {
	k := koanf.New(".")

	defaults, err := systemDefaults()
	if err != nil {
		return nil, nil, err
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, nil, &parseError{path: path, err: err}
		}
	}

	envLayer := koanf.New(".")
	if err := envLayer.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load environment: %w", err)
	}
	overrides := make(map[string]*envOverride)
	for _, key := range envLayer.Keys() {
		overrides[key] = &envOverride{base: k.Get(key), hasBase: k.Exists(key)}
	}
	if err := k.Merge(envLayer); err != nil {
		return nil, nil, fmt.Errorf("failed to merge environment: %w", err)
	}

	return k, overrides, nil
}

// toKoanf reads cfg back the way it would be written to disk.
func toKoanf(cfg *Config) (*koanf.Koanf, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, err
	}
	return k, nil
}

// trackEnv remembers the overrides applied to a freshly loaded cfg.
func (c *Config) trackEnv(overrides map[string]*envOverride) error {
	if len(overrides) == 0 {
		c.env = nil
		return nil
	}
	k, err := toKoanf(c)
	if err != nil {
		return err
	}
	for key, o := range overrides {
		o.loaded = fmt.Sprint(k.Get(key))
	}
	c.env = overrides
	return nil
}

// withoutEnv returns the configuration to persist: overridden keys the
// program did not change go back to their file or default values.
func (c *Config) withoutEnv() (*Config, error) {
	if len(c.env) == 0 {
		return c, nil
	}
	k, err := toKoanf(c)
	if err != nil {
		return nil, err
	}
	for key, o := range c.env {
		if fmt.Sprint(k.Get(key)) != o.loaded {
			continue
		}
		if o.hasBase {
			if err := k.Set(key, o.base); err != nil {
				return nil, err
			}
		} else {
			k.Delete(key)
		}
	}
	if c.Repository != nil && k.String("repository.local_path") == "" &&
		k.String("repository.remote") == "" && k.String("repository.branch") == "" {
		k.Delete("repository")
	}
	return decode(k)
}

func systemDefaults() (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	return k.Raw(), nil
}

// envKey maps FUXI_GIT__NETWORK_TIMEOUT to git.network_timeout. Variables
// outside the known roots (FUXI_CONFIG_DIR, FUXI_STATE_DIR) are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	for _, root := range envRoots {
		if key == root || (strings.HasSuffix(root, ".") && strings.HasPrefix(key, root)) {
			return key
		}
	}
	return ""
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the configuration used before `fuxi init` has run.
func Defaults() (*Config, error) {
	k, overrides, err := loadLayers("")
	if err != nil {
		return nil, err
	}
	cfg, err := decode(k)
	if err != nil {
		return nil, fmt.Errorf("failed to decode defaults: %w", err)
	}
	if err := postProcess(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.trackEnv(overrides)
}

type parseError struct {
	path string
	err  error
}

func (e *parseError) Error() string { return fmt.Sprintf("%s: %v", e.path, e.err) }
func (e *parseError) Unwrap() error { return e.err }
