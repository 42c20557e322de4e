// cmd/fuxi/root_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: cobra
// PURPOSE: Test the command tree, help topics and completion

package fuxi

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FUXI_STATE_DIR", t.TempDir())
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_CommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"version"}, {"config"}, {"init"}, {"backup"}, {"save"}, {"list"}, {"apply"},
		{"profile", "list"}, {"profile", "create"}, {"profile", "switch"}, {"profile", "delete"},
		{"path", "list"}, {"path", "add"}, {"path", "remove"}, {"completion"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	apply, _, _ := root.Find([]string{"apply"})
	assert.NotNil(t, apply.Flags().Lookup("dryrun"))
	backup, _, _ := root.Find([]string{"backup"})
	for _, flag := range []string{"message", "push", "prune"} {
		assert.NotNil(t, backup.Flags().Lookup(flag), flag)
	}
	remove, _, _ := root.Find([]string{"path", "remove"})
	assert.NotNil(t, remove.Flags().Lookup("purge"))
	assert.NotNil(t, remove.InheritedFlags().Lookup("profile"))
}

func TestRootCmd_NoCommand(t *testing.T) {
	out, err := execute(t)
	assert.Error(t, err)
	assert.Contains(t, out, "BACKUPS:")
}

func TestRootCmd_ArgumentValidation(t *testing.T) {
	_, err := execute(t, "apply")
	assert.Error(t, err)

	_, err = execute(t, "init", "user/dots")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "--format", "text", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fuxi dev")
}

func TestHelpTopics(t *testing.T) {
	out, err := execute(t, "help", "topics")
	require.NoError(t, err)
	for _, topic := range []string{"backups", "configuration", "layout", "profiles"} {
		assert.Contains(t, out, topic)
	}

	out, err = execute(t, "help", "layout")
	require.NoError(t, err)
	assert.Contains(t, out, "Repository layout")
}

func TestGenerateCompletion(t *testing.T) {
	root := &cobra.Command{Use: "fuxi"}
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		var out bytes.Buffer
		require.NoError(t, GenerateCompletion(root, shell, &out), shell)
		assert.NotEmpty(t, out.String(), shell)
	}

	err := GenerateCompletion(root, "tcsh", &bytes.Buffer{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
