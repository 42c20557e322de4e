package hashutil

import (
	"fmt"

	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/zeebo/xxh3"
)

// Fingerprint returns a content fingerprint used to detect unchanged files.
// It is not a cryptographic hash.
func Fingerprint(data []byte) string {
	sum := xxh3.Hash128(data)
	return fmt.Sprintf("xxh3:%016x%016x", sum.Hi, sum.Lo)
}

// FileFingerprint fingerprints the file at path.
func FileFingerprint(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Fingerprint(data), nil
}

// SameContent reports whether the file at path holds exactly data.
func SameContent(fsys types.FS, path string, data []byte) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, err
	}
	if info.Size() != int64(len(data)) {
		return false, nil
	}
	current, err := FileFingerprint(fsys, path)
	if err != nil {
		return false, err
	}
	return current == Fingerprint(data), nil
}
