package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/fuxi/pkg/types"
)

// WriteFileAtomic writes data to a sibling temp file and renames it over
// path, so readers see either the old or the new content.
func WriteFileAtomic(fsys types.FS, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%d.tmp", filepath.Base(path), time.Now().UnixNano()))
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether name exists, following symlinks.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// GitDirName is skipped by WalkFiles at every depth.
const GitDirName = ".git"

// WalkFiles returns every regular file below root as paths relative to
// root, sorted. Directories themselves are not listed. Symlinks are
// followed through Stat. Git metadata of nested repositories is left
// out so their content is stored as plain files.
func WalkFiles(fsys types.FS, root string) ([]string, error) {
	var files []string
	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := fsys.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.Name() == GitDirName {
				continue
			}
			childRel := filepath.Join(rel, entry.Name())
			info, err := fsys.Stat(filepath.Join(root, childRel))
			if err != nil {
				return err
			}
			if info.IsDir() {
				if err := walk(childRel); err != nil {
					return err
				}
				continue
			}
			files = append(files, childRel)
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
