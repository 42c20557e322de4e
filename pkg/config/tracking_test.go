// pkg/config/tracking_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero memory filesystem
// PURPOSE: Test per-path outcomes of adding and removing tracked paths

package config_test

import (
	"testing"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPaths_PartialSuccess(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/home/u/a", []byte("a"), 0644))
	require.NoError(t, fs.MkdirAll("/home/u/dir", 0755))

	cfg := emptyConfig(t)
	require.NoError(t, cfg.CreateProfile("main"))

	results, err := cfg.AddPaths(fs, "", []string{"/home/u/a", "/home/u/missing", "/home/u/dir"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Error)
	assert.Equal(t, types.KindFile, results[0].Kind)
	assert.True(t, errors.IsErrorCode(results[1].Error, errors.ErrPathNotFound))
	assert.NoError(t, results[2].Error)
	assert.Equal(t, types.KindDirectory, results[2].Kind)

	p, _ := cfg.Profile("main")
	assert.Equal(t, []types.TrackedPath{
		{Source: "/home/u/a", Kind: types.KindFile},
		{Source: "/home/u/dir", Kind: types.KindDirectory},
	}, p.Paths)

	assert.NoError(t, config.Summarize(results))
}

func TestAddPaths_RejectsRepositoryOverlap(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/u/.dotbak/main", 0755))
	require.NoError(t, fs.MkdirAll("/home/u/.config", 0755))

	cfg := emptyConfig(t)
	require.NoError(t, cfg.CreateProfile("main"))
	cfg.SetRepository("", "/home/u/.dotbak", "main")

	results, err := cfg.AddPaths(fs, "main", []string{"/home/u", "/home/u/.dotbak", "/home/u/.dotbak/main", "/home/u/.config"})
	require.NoError(t, err)
	require.Len(t, results, 4)

	for _, r := range results[:3] {
		assert.True(t, errors.IsErrorCode(r.Error, errors.ErrInvalidInput), "%s: %v", r.Path, r.Error)
	}
	assert.NoError(t, results[3].Error)

	p, _ := cfg.Profile("main")
	assert.Equal(t, []types.TrackedPath{{Source: "/home/u/.config", Kind: types.KindDirectory}}, p.Paths)
}

func TestAddPaths_Duplicates(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/home/u/a", []byte("a"), 0644))

	cfg := emptyConfig(t)
	require.NoError(t, cfg.CreateProfile("main"))

	results, err := cfg.AddPaths(fs, "main", []string{"/home/u/a", "/home/u/./a"})
	require.NoError(t, err)

	assert.NoError(t, results[0].Error)
	assert.True(t, errors.IsErrorCode(results[1].Error, errors.ErrDuplicatePath))

	p, _ := cfg.Profile("main")
	assert.Len(t, p.Paths, 1)
}

func TestAddPaths_SameSourceInTwoProfiles(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/home/u/a", []byte("a"), 0644))

	cfg := emptyConfig(t)
	require.NoError(t, cfg.CreateProfile("main"))
	require.NoError(t, cfg.CreateProfile("work"))

	for _, profile := range []string{"main", "work"} {
		results, err := cfg.AddPaths(fs, profile, []string{"/home/u/a"})
		require.NoError(t, err)
		assert.NoError(t, results[0].Error)
	}
}

func TestAddPaths_ProfileErrorsBeforeMutation(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/home/u/a", []byte("a"), 0644))

	cfg := emptyConfig(t)

	_, err := cfg.AddPaths(fs, "", []string{"/home/u/a"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoActiveProfile))

	_, err = cfg.AddPaths(fs, "ghost", []string{"/home/u/a"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))
	assert.Empty(t, cfg.Profiles)
}

func TestAddPaths_RejectsRoot(t *testing.T) {
	cfg := emptyConfig(t)
	require.NoError(t, cfg.CreateProfile("main"))

	results, err := cfg.AddPaths(filesystem.NewMemory(), "", []string{"/"})
	require.NoError(t, err)
	assert.True(t, errors.IsErrorCode(results[0].Error, errors.ErrInvalidInput))
}

func TestRemovePaths(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/home/u/a", []byte("a"), 0644))
	require.NoError(t, fs.WriteFile("/home/u/b", []byte("b"), 0644))

	cfg := emptyConfig(t)
	require.NoError(t, cfg.CreateProfile("main"))
	_, err := cfg.AddPaths(fs, "", []string{"/home/u/a", "/home/u/b"})
	require.NoError(t, err)

	results, err := cfg.RemovePaths("", []string{"/home/u/a", "/home/u/zzz"})
	require.NoError(t, err)

	assert.NoError(t, results[0].Error)
	assert.Equal(t, types.KindFile, results[0].Kind)
	assert.True(t, errors.IsErrorCode(results[1].Error, errors.ErrPathNotTracked))

	p, _ := cfg.Profile("main")
	assert.Equal(t, []types.TrackedPath{{Source: "/home/u/b", Kind: types.KindFile}}, p.Paths)
}

func TestSummarize(t *testing.T) {
	assert.NoError(t, config.Summarize(nil))

	ok := types.PathResult{Path: "/a", Status: types.StatusSuccess}
	bad := types.PathResult{Path: "/b", Status: types.StatusFailed,
		Error: errors.New(errors.ErrPathNotFound, "/b does not exist")}

	assert.NoError(t, config.Summarize([]types.PathResult{ok, bad}))

	err := config.Summarize([]types.PathResult{bad})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAllItemsFailed))

	err = config.Summarize([]types.PathResult{bad, bad})
	require.Error(t, err)
	failures, _ := errors.GetErrorDetails(err)["failures"].(map[string]string)
	assert.Equal(t, "/b does not exist", failures["/b"])
}
