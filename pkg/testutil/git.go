package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/git"
)

// RequireGit skips the test when git is missing and isolates git from the
// user's configuration.
func RequireGit(t *testing.T) {
	t.Helper()
	if !git.Available() {
		t.Skip("git binary not available")
	}
	t.Setenv("GIT_AUTHOR_NAME", "fuxi test")
	t.Setenv("GIT_AUTHOR_EMAIL", "fuxi@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "fuxi test")
	t.Setenv("GIT_COMMITTER_EMAIL", "fuxi@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(t.TempDir(), "gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}
