package git

import (
	"context"

	"github.com/arthur-debert/fuxi/pkg/types"
)

// DefaultRemote is the remote fuxi pushes to and fetches from.
const DefaultRemote = "origin"

// Client operates on a single repository.
type Client interface {
	// Dir returns the repository working tree.
	Dir() string

	Init(ctx context.Context) error
	IsRepo(ctx context.Context) bool
	SetBranch(ctx context.Context, branch string) error
	EnsureRemote(ctx context.Context, name, url string) error

	// Add stages paths, or everything when none are given.
	Add(ctx context.Context, paths ...string) error
	// Remove unstages and untracks paths, keeping them on disk.
	Remove(ctx context.Context, paths ...string) error
	// Commit records the index and returns the new commit hash.
	Commit(ctx context.Context, message string) (string, error)
	// HasPendingChanges reports working tree changes, staged or not.
	HasPendingChanges(ctx context.Context) (bool, error)
	// HasStagedChanges reports whether the index differs from HEAD.
	HasStagedChanges(ctx context.Context) (bool, error)

	Push(ctx context.Context, remote, branch string) error
	Fetch(ctx context.Context, remote string) error
	Pull(ctx context.Context, remote, branch string) error

	// Log returns commits newest first. With all set, every ref is
	// walked; otherwise only HEAD. An empty repository has no commits.
	Log(ctx context.Context, all bool) ([]types.Backup, error)
	// ResolveRef returns the commit a ref points at; ok is false when
	// the ref does not exist.
	ResolveRef(ctx context.Context, ref string) (hash string, ok bool, err error)
	// IsAncestor reports whether ancestor is reachable from descendant.
	// A commit is its own ancestor.
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	// ListFiles lists blobs under prefix at commit.
	ListFiles(ctx context.Context, commit, prefix string) ([]FileEntry, error)
	ReadFile(ctx context.Context, commit, path string) ([]byte, error)
}

// FileEntry is a file stored in a commit.
type FileEntry struct {
	Path       string
	Executable bool
}
