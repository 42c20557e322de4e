package backup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/synthfs"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/rs/zerolog"
)

// MessageLayout formats the timestamp of the default commit message.
const MessageLayout = "2006-01-02 15:04:05"

// Options holds options for the backup command
type Options struct {
	Config  *config.Config
	Message string
	// Push sends the new commit to origin. A failed push is reported
	// in the result and does not undo the commit.
	Push bool
	// Prune removes files from tracked directories in the repository
	// when their source no longer exists.
	Prune bool

	Git        git.Client
	FileSystem types.FS         // defaults to the OS filesystem
	Executor   synthfs.Executor // defaults to synthfs.New()
	Now        func() time.Time
}

// Backup copies every path tracked by the active profile into the
// repository and commits the result.
func Backup(ctx context.Context, opts Options) (*types.BackupResult, error) {
	logger := logging.GetLogger("commands.backup")
	defer logging.LogOperationStart(logger, "backup")()

	cfg := opts.Config
	repo, err := cfg.RequireRepository()
	if err != nil {
		return nil, err
	}
	profile, err := cfg.Active()
	if err != nil {
		return nil, err
	}
	if len(profile.Paths) == 0 {
		return nil, errors.Newf(errors.ErrNothingTracked, "profile %q has no tracked paths", profile.Name)
	}
	if !opts.Git.IsRepo(ctx) {
		return nil, errors.Newf(errors.ErrNotInitialized, "%s is not a git repository, run fuxi init", repo.LocalPath)
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	executor := opts.Executor
	if executor == nil {
		executor = synthfs.New()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	result := &types.BackupResult{
		Profile:   profile.Name,
		Items:     make([]types.BackupItem, len(profile.Paths)),
		Timestamp: now(),
	}

	// Plan one batch per item so a failing path leaves the others intact.
	var batches []synthfs.Batch
	var batchItems []int
	for i, tracked := range profile.Paths {
		item, batch := plan(fsys, repo.LocalPath, profile.Name, tracked, opts.Prune)
		result.Items[i] = item
		if item.Error != nil {
			logger.Warn().Err(item.Error).Str("source", tracked.Source).Msg("Skipping tracked path")
			continue
		}
		batches = append(batches, batch)
		batchItems = append(batchItems, i)
	}

	for n, br := range executor.Execute(ctx, batches) {
		item := &result.Items[batchItems[n]]
		if br.Error != nil {
			item.Status = types.StatusFailed
			item.Error = errors.Wrapf(br.Error, errors.ErrPartialCopyFailure, "cannot copy %s", item.Source)
			continue
		}
		item.Status = types.StatusSuccess
	}

	if result.FailedItems() == len(result.Items) {
		return result, allFailed(result)
	}

	if err := opts.Git.Add(ctx); err != nil {
		return result, err
	}
	pending, err := opts.Git.HasStagedChanges(ctx)
	if err != nil {
		return result, err
	}
	if !pending {
		logger.Info().Msg("Repository already matches tracked paths")
		result.NothingToBackUp = true
		return result, nil
	}

	result.Message = opts.Message
	if result.Message == "" {
		result.Message = "Backup " + result.Timestamp.Format(MessageLayout)
	}
	hash, err := opts.Git.Commit(ctx, result.Message)
	if err != nil {
		return result, err
	}
	result.Commit = hash
	cfg.LastBackupID = hash
	logger.Info().Str("commit", hash).Int("items", len(result.Items)).Msg("Backup committed")

	if opts.Push {
		if err := opts.Git.Push(ctx, git.DefaultRemote, repo.BranchName()); err != nil {
			logger.Warn().Err(err).Msg("Push failed, commit kept locally")
			result.PushError = err
		} else {
			result.Pushed = true
		}
	}

	logBackup(logger, result)
	return result, nil
}

// plan checks one tracked path against the live filesystem and builds
// the batch that mirrors it into the repository.
func plan(fsys types.FS, repoDir, profile string, tracked types.TrackedPath, prune bool) (types.BackupItem, synthfs.Batch) {
	item := types.BackupItem{Source: tracked.Source, Kind: tracked.Kind, Status: types.StatusPlanned}
	batch := synthfs.Batch{Name: tracked.Source}

	rel, err := paths.ToRepoRelative(profile, tracked.Source)
	if err != nil {
		return failed(item, err), batch
	}
	item.RepoPath = rel
	target := filepath.Join(repoDir, filepath.FromSlash(rel))

	if paths.Overlaps(tracked.Source, repoDir) {
		return failed(item, errors.Newf(errors.ErrInvalidInput,
			"%s overlaps the backup repository %s", tracked.Source, repoDir)), batch
	}

	info, err := fsys.Stat(tracked.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return failed(item, errors.Newf(errors.ErrPathNotFound, "%s no longer exists", tracked.Source)), batch
		}
		return failed(item, errors.Wrapf(err, errors.ErrPartialCopyFailure, "cannot read %s", tracked.Source)), batch
	}
	if kind := types.KindOf(info); kind != tracked.Kind {
		return failed(item, errors.Newf(errors.ErrPartialCopyFailure,
			"%s was tracked as a %s but is now a %s", tracked.Source, tracked.Kind, kind)), batch
	}

	if tracked.Kind == types.KindFile {
		batch.Writes = []synthfs.FileWrite{{
			Target:  target,
			Source:  tracked.Source,
			Mode:    info.Mode().Perm(),
			Replace: true,
		}}
		item.Files = 1
		return item, batch
	}

	files, err := filesystem.WalkFiles(fsys, tracked.Source)
	if err != nil {
		return failed(item, errors.Wrapf(err, errors.ErrPartialCopyFailure, "cannot walk %s", tracked.Source)), batch
	}
	live := make(map[string]bool, len(files))
	for _, f := range files {
		live[f] = true
		src := filepath.Join(tracked.Source, f)
		fi, err := fsys.Stat(src)
		if err != nil {
			return failed(item, errors.Wrapf(err, errors.ErrPartialCopyFailure, "cannot read %s", src)), batch
		}
		batch.Writes = append(batch.Writes, synthfs.FileWrite{
			Target:  filepath.Join(target, f),
			Source:  src,
			Mode:    fi.Mode().Perm(),
			Replace: true,
		})
	}
	item.Files = len(files)

	if prune && filesystem.Exists(fsys, target) {
		stored, err := filesystem.WalkFiles(fsys, target)
		if err != nil {
			return failed(item, errors.Wrapf(err, errors.ErrPartialCopyFailure, "cannot walk %s", target)), batch
		}
		for _, f := range stored {
			if !live[f] {
				batch.Removes = append(batch.Removes, filepath.Join(target, f))
			}
		}
		item.Pruned = len(batch.Removes)
	}
	return item, batch
}

func failed(item types.BackupItem, err error) types.BackupItem {
	item.Status = types.StatusFailed
	item.Error = err
	return item
}

func allFailed(result *types.BackupResult) error {
	if len(result.Items) == 1 {
		return result.Items[0].Error
	}
	failures := make(map[string]string, len(result.Items))
	for _, item := range result.Items {
		failures[item.Source] = errors.Message(item.Error)
	}
	return errors.Newf(errors.ErrAllItemsFailed, "none of the %d tracked paths could be backed up", len(result.Items)).
		WithDetail("failures", failures)
}

func logBackup(logger zerolog.Logger, result *types.BackupResult) {
	logger.Debug().
		Str("profile", result.Profile).
		Str("commit", result.Commit).
		Bool("pushed", result.Pushed).
		Int("failed", result.FailedItems()).
		Msg("Backup finished")
}
