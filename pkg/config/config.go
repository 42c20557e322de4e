package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// DefaultBranch is used when the repository has no branch configured.
const DefaultBranch = "main"

// Config is the whole persisted configuration.
type Config struct {
	ActiveProfile string      `koanf:"active_profile" toml:"active_profile,omitempty"`
	LastBackupID  string      `koanf:"last_backup_id" toml:"last_backup_id,omitempty"`
	Repository    *Repository `koanf:"repository" toml:"repository,omitempty"`
	Git           GitSettings `koanf:"git" toml:"git"`
	Profiles      []Profile   `koanf:"profiles" toml:"profiles,omitempty"`

	env map[string]*envOverride
}

// Repository is the backup repository fuxi mirrors files into.
type Repository struct {
	Remote    string `koanf:"remote" toml:"remote"`
	LocalPath string `koanf:"local_path" toml:"local_path"`
	Branch    string `koanf:"branch" toml:"branch"`
}

// GitSettings tune how fuxi drives git.
type GitSettings struct {
	NetworkTimeout    Duration `koanf:"network_timeout" toml:"network_timeout"`
	RemoteURLTemplate string   `koanf:"remote_url_template" toml:"remote_url_template"`
}

// Profile is a named set of tracked paths.
type Profile struct {
	Name  string              `koanf:"name" toml:"name"`
	Paths []types.TrackedPath `koanf:"paths" toml:"paths,omitempty"`
}

// Duration is a time.Duration persisted in its string form ("2m0s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// IsInitialized reports whether `fuxi init` has configured a repository.
func (c *Config) IsInitialized() bool {
	return c.Repository != nil && c.Repository.LocalPath != ""
}

// RequireRepository returns the repository or ErrNotInitialized.
func (c *Config) RequireRepository() (*Repository, error) {
	if !c.IsInitialized() {
		return nil, errors.New(errors.ErrNotInitialized, "no backup repository configured, run 'fuxi init' first")
	}
	return c.Repository, nil
}

// SetRepository records the backup repository.
func (c *Config) SetRepository(remote, localPath, branch string) {
	if branch == "" {
		branch = DefaultBranch
	}
	c.Repository = &Repository{Remote: remote, LocalPath: localPath, Branch: branch}
}

// BranchName returns the configured branch or DefaultBranch.
func (r *Repository) BranchName() string {
	if r == nil || r.Branch == "" {
		return DefaultBranch
	}
	return r.Branch
}

// RemoteURL turns the configured remote into something git can push to.
// Values that already look like URLs or local paths are used verbatim.
func (c *Config) RemoteURL() string {
	if c.Repository == nil || c.Repository.Remote == "" {
		return ""
	}
	return ExpandRemote(c.Repository.Remote, c.Git.RemoteURLTemplate)
}

// ExpandRemote applies template to an "owner/name" shorthand.
func ExpandRemote(remote, template string) string {
	if looksLikeURL(remote) || template == "" {
		return remote
	}
	return fmt.Sprintf(template, remote)
}

func looksLikeURL(remote string) bool {
	if strings.Contains(remote, "://") || strings.HasPrefix(remote, "/") ||
		strings.HasPrefix(remote, ".") || strings.HasPrefix(remote, "~") {
		return true
	}
	// scp-like syntax: user@host:path
	if at := strings.Index(remote, "@"); at >= 0 && strings.Contains(remote[at:], ":") {
		return true
	}
	return false
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (*Profile, bool) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], true
		}
	}
	return nil, false
}

// Active returns the active profile or ErrNoActiveProfile.
func (c *Config) Active() (*Profile, error) {
	if c.ActiveProfile == "" {
		return nil, errors.New(errors.ErrNoActiveProfile, "no active profile, create or switch to one first")
	}
	p, ok := c.Profile(c.ActiveProfile)
	if !ok {
		return nil, errors.Newf(errors.ErrNoActiveProfile, "active profile %q does not exist", c.ActiveProfile)
	}
	return p, nil
}

// ResolveProfile returns the named profile, or the active one when name is empty.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name == "" {
		return c.Active()
	}
	p, ok := c.Profile(name)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownProfile, "no profile named %q", name).
			WithDetail("profile", name)
	}
	return p, nil
}

// Tracks reports whether the profile already tracks source.
func (p *Profile) Tracks(source string) bool {
	return p.index(source) >= 0
}

func (p *Profile) index(source string) int {
	for i, tp := range p.Paths {
		if tp.Source == source {
			return i
		}
	}
	return -1
}
