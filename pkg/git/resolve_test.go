// pkg/git/resolve_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: FakeGit for Resolve
// PURPOSE: Test resolution of backup ids and hash prefixes

package git_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/testutil"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var history = []types.Backup{
	{Hash: "abc1234f00d", Message: "third"},
	{Hash: "abc9876beef", Message: "second"},
	{Hash: "0123456789a", Message: "first"},
}

func TestMatchReference_Unique(t *testing.T) {
	b, err := git.MatchReference("abc1", history)
	require.NoError(t, err)
	assert.Equal(t, "third", b.Message)

	b, err = git.MatchReference("01", history)
	require.NoError(t, err)
	assert.Equal(t, "first", b.Message)
}

func TestMatchReference_CaseInsensitive(t *testing.T) {
	b, err := git.MatchReference("ABC98", history)
	require.NoError(t, err)
	assert.Equal(t, "second", b.Message)
}

func TestMatchReference_FullHash(t *testing.T) {
	b, err := git.MatchReference("abc9876beef", history)
	require.NoError(t, err)
	assert.Equal(t, "second", b.Message)
}

func TestMatchReference_Ambiguous(t *testing.T) {
	_, err := git.MatchReference("abc", history)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguousReference))

	candidates, ok := errors.GetErrorDetails(err)["candidates"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"abc1234", "abc9876"}, candidates)
}

func TestMatchReference_Unknown(t *testing.T) {
	for _, token := range []string{"fff", "", "not-hex", "latest"} {
		_, err := git.MatchReference(token, history)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownReference), "token %q", token)
	}
}

func TestMatchReference_DuplicateHistoryEntries(t *testing.T) {
	dup := append([]types.Backup{}, history...)
	dup = append(dup, history[0])

	b, err := git.MatchReference("abc1", dup)
	require.NoError(t, err)
	assert.Equal(t, "third", b.Message)
}

func TestResolve_Latest(t *testing.T) {
	ctx := context.Background()
	fsys := filesystem.NewMemory()
	remote := testutil.NewFakeRemote()
	g := testutil.NewFakeGit(fsys, "/repo").Initialized().WithRemote(remote)

	_, err := git.Resolve(ctx, g, "main", "latest")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownReference), "empty repository")

	require.NoError(t, fsys.WriteFile("/repo/a", []byte("a"), 0644))
	require.NoError(t, g.Add(ctx))
	local, err := g.Commit(ctx, "local only")
	require.NoError(t, err)

	hash, err := git.Resolve(ctx, g, "main", "")
	require.NoError(t, err)
	assert.Equal(t, local, hash, "falls back to HEAD before the first push")

	require.NoError(t, g.Push(ctx, git.DefaultRemote, "main"))
	hash, err = git.Resolve(ctx, g, "main", "LATEST")
	require.NoError(t, err)
	assert.Equal(t, local, hash, "HEAD and the remote branch agree")
}

func TestResolve_LatestKeepsUnpushedBackup(t *testing.T) {
	ctx := context.Background()
	fsys := filesystem.NewMemory()
	g := testutil.NewFakeGit(fsys, "/repo").Initialized().WithRemote(testutil.NewFakeRemote())

	commit := func(content string) string {
		require.NoError(t, fsys.WriteFile("/repo/a", []byte(content), 0644))
		require.NoError(t, g.Add(ctx))
		hash, err := g.Commit(ctx, content)
		require.NoError(t, err)
		return hash
	}

	commit("v1")
	require.NoError(t, g.Push(ctx, git.DefaultRemote, "main"))
	unpushed := commit("v2")
	require.NoError(t, g.Fetch(ctx, git.DefaultRemote))

	hash, err := git.Resolve(ctx, g, "main", "latest")
	require.NoError(t, err)
	assert.Equal(t, unpushed, hash)
}

func TestResolve_LatestFollowsRemoteAhead(t *testing.T) {
	ctx := context.Background()
	remote := testutil.NewFakeRemote()

	fsA := filesystem.NewMemory()
	a := testutil.NewFakeGit(fsA, "/repo").Initialized().WithRemote(remote)
	require.NoError(t, fsA.WriteFile("/repo/a", []byte("v1"), 0644))
	require.NoError(t, a.Add(ctx))
	_, err := a.Commit(ctx, "v1")
	require.NoError(t, err)
	require.NoError(t, a.Push(ctx, git.DefaultRemote, "main"))

	fsB := filesystem.NewMemory()
	b := testutil.NewFakeGit(fsB, "/repo").Initialized().WithRemote(remote)
	require.NoError(t, b.Pull(ctx, git.DefaultRemote, "main"))
	require.NoError(t, fsB.WriteFile("/repo/a", []byte("v2"), 0644))
	require.NoError(t, b.Add(ctx))
	newer, err := b.Commit(ctx, "v2")
	require.NoError(t, err)
	require.NoError(t, b.Push(ctx, git.DefaultRemote, "main"))

	require.NoError(t, a.Fetch(ctx, git.DefaultRemote))
	hash, err := git.Resolve(ctx, a, "main", "latest")
	require.NoError(t, err)
	assert.Equal(t, newer, hash)
}

func TestResolve_Prefix(t *testing.T) {
	ctx := context.Background()
	fsys := filesystem.NewMemory()
	g := testutil.NewFakeGit(fsys, "/repo").Initialized()
	g.NextHashes = []string{"abc1000000000000000000000000000000000000", "abc2000000000000000000000000000000000000"}
	for _, content := range []string{"one", "two"} {
		require.NoError(t, fsys.WriteFile("/repo/f", []byte(content), 0644))
		require.NoError(t, g.Add(ctx))
		_, err := g.Commit(ctx, content)
		require.NoError(t, err)
	}

	_, err := git.Resolve(ctx, g, "main", "abc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguousReference))

	hash, err := git.Resolve(ctx, g, "main", "abc2")
	require.NoError(t, err)
	assert.Equal(t, "abc2000000000000000000000000000000000000", hash)
}
