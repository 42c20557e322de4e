// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS
// PURPOSE: Test topic loading and the topic-aware help command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"topics/profiles.md":       {Data: []byte("# Profiles\n\nNamed path sets")},
		"topics/option-dryrun.txt": {Data: []byte("Simulate apply")},
		"topics/config.txxt":       {Data: []byte("ignored by default")},
		"topics/notes.json":        {Data: []byte("{}")},
	}
}

func TestTopicManager_Load(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testSource())
		require.NoError(t, tm.Load())

		assert.Equal(t, []string{"option-dryrun", "profiles"}, tm.ListTopics())
		topic, ok := tm.GetTopic("profiles")
		require.True(t, ok)
		assert.Equal(t, "# Profiles\n\nNamed path sets", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testSource(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Load())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil source", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Load())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopicFlagStyle(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Load())

	for _, name := range []string{"dryrun", "--dryrun", "-dryrun", "option-dryrun"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "Simulate apply", topic.Content)
	}
	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestTopicManager_WriteIndex(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Load())

	var out bytes.Buffer
	tm.WriteIndex(&out, "fuxi")
	assert.Contains(t, out.String(), "General topics:\n  profiles")
	assert.Contains(t, out.String(), "Option topics:\n  --dryrun")
	assert.Contains(t, out.String(), "Use 'fuxi help <topic>'")

	var empty bytes.Buffer
	New(nil).WriteIndex(&empty, "fuxi")
	assert.Equal(t, "No help topics available.\n", empty.String())
}

func TestInitialize_HelpCommand(t *testing.T) {
	root := &cobra.Command{Use: "fuxi", Short: "root"}
	root.AddCommand(&cobra.Command{Use: "backup", Short: "Copy tracked paths", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testSource())
	require.NoError(t, err)

	run := func(args ...string) string {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	assert.Equal(t, "# Profiles\n\nNamed path sets", run("help", "profiles"))
	assert.Contains(t, run("help", "topics"), "profiles")
	assert.True(t, strings.Contains(run("help", "backup"), "Copy tracked paths"))
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# x", r.Render("# x", ".md"))
}

func TestGlamourRenderer_NonMarkdownUnchanged(t *testing.T) {
	r := NewPlainGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
	assert.Contains(t, r.Render("# Title", ".md"), "Title")
}
