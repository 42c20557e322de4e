// pkg/synthfs/executor_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: synthfs, temp directories
// PURPOSE: Test batch writes, replacement and per-batch failure isolation

package synthfs_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/synthfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSExecutor_WritesAndCopies(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("from source"), 0644))

	results := synthfs.New().Execute(context.Background(), []synthfs.Batch{{
		Name: "item",
		Writes: []synthfs.FileWrite{
			{Target: filepath.Join(dir, "out", "deep", "a.txt"), Content: []byte("inline")},
			{Target: filepath.Join(dir, "out", "b.txt"), Source: src},
		},
	}})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Error)

	data, err := os.ReadFile(filepath.Join(dir, "out", "deep", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "inline", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "out", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "from source", string(data))
}

func TestOSExecutor_ReplaceAppliesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no executable bit")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	results := synthfs.New().Execute(context.Background(), []synthfs.Batch{{
		Name:   "tool",
		Writes: []synthfs.FileWrite{{Target: target, Content: []byte("#!/bin/sh\n"), Mode: 0755, Replace: true}},
	}})
	require.NoError(t, results[0].Error)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "executable bit should be set")
}

func TestExecutors_ReplaceKeepsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges")
	}
	executors := map[string]func() synthfs.Executor{
		"synthfs": func() synthfs.Executor { return synthfs.New() },
		"fs":      func() synthfs.Executor { return synthfs.NewFSExecutor(filesystem.NewOS()) },
	}
	for name, newExecutor := range executors {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			linked := filepath.Join(dir, "dotfiles", "tool")
			require.NoError(t, os.MkdirAll(filepath.Dir(linked), 0755))
			require.NoError(t, os.WriteFile(linked, []byte("old"), 0644))
			link := filepath.Join(dir, "tool")
			require.NoError(t, os.Symlink(filepath.Join("dotfiles", "tool"), link))

			results := newExecutor().Execute(context.Background(), []synthfs.Batch{{
				Name:   "tool",
				Writes: []synthfs.FileWrite{{Target: link, Content: []byte("#!/bin/sh\n"), Mode: 0755, Replace: true}},
			}})
			require.NoError(t, results[0].Error)

			linfo, err := os.Lstat(link)
			require.NoError(t, err)
			assert.NotZero(t, linfo.Mode()&os.ModeSymlink, "the link survives")

			data, err := os.ReadFile(linked)
			require.NoError(t, err)
			assert.Equal(t, "#!/bin/sh\n", string(data))
			info, err := os.Stat(linked)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
		})
	}
}

func TestOSExecutor_Removes(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0644))

	results := synthfs.New().Execute(context.Background(), []synthfs.Batch{{
		Name:    "prune",
		Removes: []string{stale, filepath.Join(dir, "never-existed")},
	}})
	require.NoError(t, results[0].Error)

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestOSExecutor_FailureIsPerBatch(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	results := synthfs.New().Execute(context.Background(), []synthfs.Batch{
		{Name: "bad", Writes: []synthfs.FileWrite{{Target: filepath.Join(blocker, "child"), Content: []byte("y")}}},
		{Name: "good", Writes: []synthfs.FileWrite{{Target: filepath.Join(dir, "ok"), Content: []byte("z")}}},
	})

	require.Len(t, results, 2)
	assert.True(t, errors.IsErrorCode(results[0].Error, errors.ErrWriteFailed))
	assert.NoError(t, results[1].Error)

	_, err := os.Stat(filepath.Join(dir, "ok"))
	assert.NoError(t, err)
}

func TestFSExecutor(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/src/a", []byte("a"), 0644))
	require.NoError(t, fs.WriteFile("/dst/old", []byte("old"), 0644))

	results := synthfs.NewFSExecutor(fs).Execute(context.Background(), []synthfs.Batch{{
		Name:    "mem",
		Writes:  []synthfs.FileWrite{{Target: "/dst/x/a", Source: "/src/a"}},
		Removes: []string{"/dst/old"},
	}})
	require.NoError(t, results[0].Error)

	data, err := fs.ReadFile("/dst/x/a")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
	assert.False(t, filesystem.Exists(fs, "/dst/old"))
}
