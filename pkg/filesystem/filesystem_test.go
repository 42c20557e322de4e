// pkg/filesystem/filesystem_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero memory filesystem
// PURPOSE: Test the afero adapter, atomic writes and file walking

package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoFS_ReadFileRejectsDirectory(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/u/.config", 0755))

	_, err := fs.ReadFile("/home/u/.config")
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	fs := filesystem.NewMemory()
	target := "/cfg/fuxi/config.toml"

	require.NoError(t, filesystem.WriteFileAtomic(fs, target, []byte("a = 1\n"), 0644))
	require.NoError(t, filesystem.WriteFileAtomic(fs, target, []byte("a = 2\n"), 0644))

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "a = 2\n", string(data))

	entries, err := fs.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWalkFiles(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/src/nvim/init.lua", []byte("x"), 0644))
	require.NoError(t, fs.WriteFile("/src/nvim/lua/plugins.lua", []byte("y"), 0644))
	require.NoError(t, fs.WriteFile("/src/a.txt", []byte("z"), 0644))
	require.NoError(t, fs.MkdirAll("/src/empty", 0755))

	files, err := filesystem.WalkFiles(fs, "/src")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.txt",
		filepath.Join("nvim", "init.lua"),
		filepath.Join("nvim", "lua", "plugins.lua"),
	}, files)

	_, err = filesystem.WalkFiles(fs, "/missing")
	assert.Error(t, err)
}

func TestWalkFiles_SkipsGitMetadata(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/src/nvim/init.lua", []byte("x"), 0644))
	require.NoError(t, fs.WriteFile("/src/nvim/.git/HEAD", []byte("ref: refs/heads/main"), 0644))
	require.NoError(t, fs.WriteFile("/src/vendor/lib/.git", []byte("gitdir: ../../.git/modules/lib"), 0644))
	require.NoError(t, fs.WriteFile("/src/vendor/lib/lib.lua", []byte("y"), 0644))
	require.NoError(t, fs.WriteFile("/src/.gitignore", []byte("*.log"), 0644))

	files, err := filesystem.WalkFiles(fs, "/src")
	require.NoError(t, err)
	assert.Equal(t, []string{
		".gitignore",
		filepath.Join("nvim", "init.lua"),
		filepath.Join("vendor", "lib", "lib.lua"),
	}, files)
}

func TestExists(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/f", []byte("x"), 0644))
	assert.True(t, filesystem.Exists(fs, "/f"))
	assert.False(t, filesystem.Exists(fs, "/g"))
}
