package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/fuxi/pkg/errors"
)

// Environment variable names
const (
	EnvConfigDir = "FUXI_CONFIG_DIR"
	EnvStateDir  = "FUXI_STATE_DIR"
	EnvHome      = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG base dirs
	AppDirName = "fuxi"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "fuxi.log"
)

// Paths holds the resolved fuxi directories.
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves directories from the environment. XDG variables are
// re-read on every call so tests can point them at temp dirs.
func New() *Paths {
	xdg.Reload()

	p := &Paths{}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
	return p
}

// ConfigDir returns the directory holding config.toml
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the full path of config.toml
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// StateDir returns the state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the log file location
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// ~user forms are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// NormalizePath expands ~, makes the path absolute and cleans it.
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", path)
	}
	return filepath.Clean(abs), nil
}

// IsRoot reports whether a clean absolute path is a filesystem root.
func IsRoot(path string) bool {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]
	return rest == "" || rest == string(filepath.Separator) || rest == "/"
}

// Overlaps reports whether two absolute paths are the same or one lies
// inside the other.
func Overlaps(a, b string) bool {
	return Contains(a, b) || Contains(b, a)
}

// Contains reports whether path equals dir or lies below it.
func Contains(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
