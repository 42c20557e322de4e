package types

import (
	"fmt"
	"io/fs"
	"strings"
)

// PathKind records whether a tracked path is a single file or a directory
// tree. It is fixed when the path is added.
type PathKind string

const (
	KindFile      PathKind = "file"
	KindDirectory PathKind = "directory"
)

// ParsePathKind accepts the persisted spelling of a kind.
func ParsePathKind(s string) (PathKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindFile):
		return KindFile, nil
	case string(KindDirectory), "dir":
		return KindDirectory, nil
	}
	return "", fmt.Errorf("unknown path kind %q", s)
}

// KindOf derives the kind of a live filesystem entry.
func KindOf(info fs.FileInfo) PathKind {
	if info.IsDir() {
		return KindDirectory
	}
	return KindFile
}

func (k PathKind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler
func (k PathKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PathKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePathKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TrackedPath is an absolute source path tracked by a profile.
type TrackedPath struct {
	Source string   `toml:"source" koanf:"source" json:"source"`
	Kind   PathKind `toml:"kind" koanf:"kind" json:"kind"`
}
