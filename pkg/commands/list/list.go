// Package list shows the backups recorded in the repository.
package list

import (
	"context"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// Options holds options for the list command
type Options struct {
	Config *config.Config
	Git    git.Client
}

// List returns the local history newest first. The backup recorded as
// last_backup_id is flagged.
func List(ctx context.Context, opts Options) (*types.BackupListResult, error) {
	logger := logging.GetLogger("commands.list")

	repo, err := opts.Config.RequireRepository()
	if err != nil {
		return nil, err
	}
	if !opts.Git.IsRepo(ctx) {
		return nil, errors.Newf(errors.ErrNotInitialized, "%s is not a git repository, run fuxi init", repo.LocalPath)
	}

	history, err := opts.Git.Log(ctx, false)
	if err != nil {
		return nil, err
	}

	result := &types.BackupListResult{
		Branch:  repo.BranchName(),
		Backups: make([]types.BackupListEntry, len(history)),
	}
	for i, b := range history {
		result.Backups[i] = types.BackupListEntry{
			Backup: b,
			IsLast: b.Hash == opts.Config.LastBackupID,
		}
	}
	logger.Debug().Int("count", len(result.Backups)).Msg("Listed backups")
	return result, nil
}
