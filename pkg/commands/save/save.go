// Package save commits and pushes edits made directly in the backup
// repository, such as removals staged by `fuxi path remove --purge`.
package save

import (
	"context"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/arthur-debert/fuxi/pkg/ui/confirmations"
)

// DefaultMessage is the commit message when none is given.
const DefaultMessage = "Save configuration"

// ConfirmMessage is the question asked before committing.
const ConfirmMessage = "Commit and push all pending changes in the repository?"

// Options holds options for the save command
type Options struct {
	Config    *config.Config
	Message   string
	Force     bool // skip the confirmation
	Git       git.Client
	Confirmer confirmations.Confirmer
}

// Save commits everything pending in the repository and pushes it.
// Unlike backup, a failed push fails the command.
func Save(ctx context.Context, opts Options) (*types.SaveResult, error) {
	logger := logging.GetLogger("commands.save")
	defer logging.LogOperationStart(logger, "save")()

	repo, err := opts.Config.RequireRepository()
	if err != nil {
		return nil, err
	}
	if !opts.Git.IsRepo(ctx) {
		return nil, errors.Newf(errors.ErrNotInitialized, "%s is not a git repository, run fuxi init", repo.LocalPath)
	}

	result := &types.SaveResult{}
	pending, err := opts.Git.HasPendingChanges(ctx)
	if err != nil {
		return nil, err
	}
	if !pending {
		logger.Info().Msg("No pending changes")
		result.NothingToSave = true
		return result, nil
	}

	if !opts.Force {
		if opts.Confirmer == nil {
			return nil, errors.New(errors.ErrInvalidInput, "confirmation required, use --force")
		}
		ok, err := opts.Confirmer.Confirm(ConfirmMessage, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info().Msg("Save cancelled")
			result.Cancelled = true
			return result, nil
		}
	}

	result.Message = opts.Message
	if result.Message == "" {
		result.Message = DefaultMessage
	}
	if err := opts.Git.Add(ctx); err != nil {
		return result, err
	}
	staged, err := opts.Git.HasStagedChanges(ctx)
	if err != nil {
		return result, err
	}
	if !staged {
		logger.Info().Msg("Nothing staged after add")
		result.NothingToSave = true
		return result, nil
	}
	hash, err := opts.Git.Commit(ctx, result.Message)
	if err != nil {
		return result, err
	}
	result.Commit = hash

	if err := opts.Git.Push(ctx, git.DefaultRemote, repo.BranchName()); err != nil {
		return result, err
	}
	result.Pushed = true
	logger.Info().Str("commit", hash).Msg("Saved and pushed")
	return result, nil
}
