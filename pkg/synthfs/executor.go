package synthfs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// FileWrite places one file. Exactly one of Source (a path to copy from)
// or Content is used; Content wins when both are set.
type FileWrite struct {
	Target  string
	Source  string
	Content []byte
	Mode    fs.FileMode
	// Replace removes an existing target first so Mode is applied. A
	// symlinked target keeps its link and the file it points at is
	// replaced instead.
	Replace bool
}

// Batch is a unit of work that succeeds or fails as a whole.
type Batch struct {
	Name    string
	Writes  []FileWrite
	Removes []string
}

// BatchResult is the outcome of one Batch.
type BatchResult struct {
	Name  string
	Error error
}

// Executor applies batches to a filesystem.
type Executor interface {
	Execute(ctx context.Context, batches []Batch) []BatchResult
}

// OSExecutor runs batches against the host filesystem through synthfs.
type OSExecutor struct {
	logger     zerolog.Logger
	filesystem filesystem.FullFileSystem
	rollback   bool
}

var opCounter uint64

// New returns an executor rooted at / that accepts absolute paths.
func New() *OSExecutor {
	osfs := filesystem.NewOSFileSystem("/")
	return &OSExecutor{
		logger:     logging.GetLogger("synthfs"),
		filesystem: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
		rollback:   true,
	}
}

// Execute runs every batch and reports each outcome in order.
func (e *OSExecutor) Execute(ctx context.Context, batches []Batch) []BatchResult {
	results := make([]BatchResult, len(batches))
	for i, batch := range batches {
		results[i] = BatchResult{Name: batch.Name, Error: e.run(ctx, batch)}
	}
	return results
}

func (e *OSExecutor) run(ctx context.Context, batch Batch) error {
	if len(batch.Writes) == 0 && len(batch.Removes) == 0 {
		return nil
	}

	sfs := synthfs.New()
	ops := make([]synthfs.Operation, 0, len(batch.Writes)+len(batch.Removes))
	for _, w := range batch.Writes {
		w := w
		ops = append(ops, sfs.CustomOperationWithID(nextID("write", w.Target), func(ctx context.Context, fsys filesystem.FileSystem) error {
			return writeFile(fsys, w)
		}))
	}
	for _, target := range batch.Removes {
		target := target
		ops = append(ops, sfs.CustomOperationWithID(nextID("remove", target), func(ctx context.Context, fsys filesystem.FileSystem) error {
			if err := fsys.Remove(target); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", target, err)
			}
			return nil
		}))
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = e.rollback

	e.logger.Debug().
		Str("batch", batch.Name).
		Int("writes", len(batch.Writes)).
		Int("removes", len(batch.Removes)).
		Msg("Executing synthfs operations")

	result, err := synthfs.RunWithOptions(ctx, e.filesystem, options, ops...)
	if err != nil {
		return errors.Wrapf(firstFailure(result, err), errors.ErrWriteFailed, "cannot write %s", batch.Name)
	}
	return nil
}

// firstFailure digs the failing operation's error out of a pipeline result.
func firstFailure(result *synthfs.Result, fallback error) error {
	if result == nil {
		return fallback
	}
	for _, op := range result.GetOperations() {
		if r, ok := op.(synthfs.OperationResult); ok && r.Status != synthfs.StatusSuccess && r.Error != nil {
			return r.Error
		}
	}
	return fallback
}

func nextID(kind, target string) string {
	n := atomic.AddUint64(&opCounter, 1)
	return fmt.Sprintf("%s_%s_%d", kind, filepath.Base(target), n)
}

func writeFile(fsys filesystem.FileSystem, w FileWrite) error {
	dir := filepath.Dir(w.Target)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data := w.Content
	if data == nil && w.Source != "" {
		src, err := fsys.Open(w.Source)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", w.Source, err)
		}
		defer func() { _ = src.Close() }()
		if data, err = io.ReadAll(src); err != nil {
			return fmt.Errorf("failed to read %s: %w", w.Source, err)
		}
	}

	target := w.Target
	if w.Replace {
		target = followLinks(fsys.Readlink, w.Target)
		if err := fsys.Remove(target); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to replace %s: %w", w.Target, err)
		}
	}
	if err := fsys.WriteFile(target, data, modeOrDefault(w.Mode)); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.Target, err)
	}
	return nil
}

// maxLinkDepth bounds symlink chains, as the kernel does.
const maxLinkDepth = 40

// followLinks returns the file a chain of symlinks ends at. A path that
// is not a link comes back unchanged.
func followLinks(readlink func(string) (string, error), path string) string {
	for i := 0; i < maxLinkDepth; i++ {
		dest, err := readlink(path)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return path
}

func modeOrDefault(mode fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return 0644
	}
	return mode.Perm()
}

// FSExecutor applies batches directly to a types.FS. It backs tests that
// run against an in-memory filesystem.
type FSExecutor struct {
	fs types.FS
}

// NewFSExecutor returns an executor writing to fsys.
func NewFSExecutor(fsys types.FS) *FSExecutor {
	return &FSExecutor{fs: fsys}
}

// Execute runs every batch and reports each outcome in order. A batch
// stops at its first failing write.
func (e *FSExecutor) Execute(_ context.Context, batches []Batch) []BatchResult {
	results := make([]BatchResult, len(batches))
	for i, batch := range batches {
		results[i] = BatchResult{Name: batch.Name, Error: e.run(batch)}
	}
	return results
}

func (e *FSExecutor) run(batch Batch) error {
	for _, w := range batch.Writes {
		if err := e.fs.MkdirAll(filepath.Dir(w.Target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrWriteFailed, "cannot write %s", batch.Name)
		}
		data := w.Content
		if data == nil && w.Source != "" {
			var err error
			if data, err = e.fs.ReadFile(w.Source); err != nil {
				return errors.Wrapf(err, errors.ErrWriteFailed, "cannot write %s", batch.Name)
			}
		}
		target := w.Target
		if w.Replace {
			target = followLinks(e.fs.Readlink, w.Target)
			if err := e.fs.Remove(target); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, errors.ErrWriteFailed, "cannot write %s", batch.Name)
			}
		}
		if err := e.fs.WriteFile(target, data, modeOrDefault(w.Mode)); err != nil {
			return errors.Wrapf(err, errors.ErrWriteFailed, "cannot write %s", batch.Name)
		}
	}
	for _, target := range batch.Removes {
		if err := e.fs.Remove(target); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrWriteFailed, "cannot remove %s", target)
		}
	}
	return nil
}
