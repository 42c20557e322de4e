// pkg/testutil/environment.go
// DEPENDENCIES: config, filesystem, paths
// PURPOSE: Isolated directories and configuration for command tests

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // afero memory filesystem, nothing touches disk
	EnvIsolated                  // real filesystem in a temp directory
)

// TestEnvironment holds the directories a command test works in.
type TestEnvironment struct {
	Root      string
	HomeDir   string
	RepoDir   string
	ConfigDir string
	StateDir  string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates the environment. EnvIsolated also points
// HOME, XDG_* and FUXI_* variables at it.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.HomeDir = filepath.Join(env.Root, "home")
	env.RepoDir = filepath.Join(env.Root, "repo")
	env.ConfigDir = filepath.Join(env.Root, "config", "fuxi")
	env.StateDir = filepath.Join(env.Root, "state", "fuxi")

	for _, dir := range []string{env.HomeDir, env.ConfigDir, env.StateDir} {
		require.NoError(t, env.FS.MkdirAll(dir, 0755))
	}

	if envType == EnvIsolated {
		t.Setenv("HOME", env.HomeDir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.Root, "config"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(env.Root, "state"))
		t.Setenv(paths.EnvConfigDir, env.ConfigDir)
		t.Setenv(paths.EnvStateDir, env.StateDir)
	}

	return env
}

// Home returns an absolute path below the test home directory.
func (env *TestEnvironment) Home(rel ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, rel...)...)
}

// WriteFile creates a file and its parents. Relative paths are taken
// from the home directory.
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	if !filepath.IsAbs(path) {
		path = env.Home(path)
	}
	require.NoError(env.t, env.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, env.FS.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns a file's content, failing the test when it is missing.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	require.NoError(env.t, err)
	return string(data)
}

// Store returns a config store in the environment's config dir.
func (env *TestEnvironment) Store() *config.Store {
	return config.NewStore(filepath.Join(env.ConfigDir, paths.ConfigFileName))
}

// Config returns a configuration with the repository set to RepoDir and
// the given profiles created; the first one is active.
func (env *TestEnvironment) Config(profiles ...string) *config.Config {
	env.t.Helper()
	cfg, err := config.Defaults()
	require.NoError(env.t, err)
	cfg.SetRepository("user/dots", env.RepoDir, "main")
	for _, p := range profiles {
		require.NoError(env.t, cfg.CreateProfile(p))
	}
	return cfg
}

// Track adds paths to the active profile, failing on any item error.
func (env *TestEnvironment) Track(cfg *config.Config, sources ...string) {
	env.t.Helper()
	results, err := cfg.AddPaths(env.FS, "", sources)
	require.NoError(env.t, err)
	for _, r := range results {
		require.NoError(env.t, r.Error, r.Path)
	}
}
