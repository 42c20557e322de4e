// Package initialize points fuxi at a backup repository, creating the
// local clone directory and git repository when needed.
package initialize

import (
	"context"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// Options defines the options for the Initialize command.
type Options struct {
	Config *config.Config
	// Remote is an "owner/name" shorthand or a full git URL.
	Remote string
	// LocalPath is where the repository lives on this machine.
	LocalPath string

	// NewGit opens a client for the normalized LocalPath. Defaults to
	// the git binary.
	NewGit     func(dir string) git.Client
	FileSystem types.FS
}

// Initialize configures the backup repository.
func Initialize(ctx context.Context, opts Options) (*types.InitResult, error) {
	log := logging.GetLogger("commands.initialize")
	log.Debug().Str("remote", opts.Remote).Str("path", opts.LocalPath).Msg("Executing command")

	cfg := opts.Config
	if opts.Remote == "" {
		return nil, errors.New(errors.ErrInvalidInput, "remote cannot be empty")
	}
	localPath, err := paths.NormalizePath(opts.LocalPath)
	if err != nil {
		return nil, err
	}
	if paths.IsRoot(localPath) {
		return nil, errors.New(errors.ErrInvalidInput, "the repository cannot live at the filesystem root")
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	newGit := opts.NewGit
	if newGit == nil {
		newGit = func(dir string) git.Client { return git.New(dir, cfg.Git.NetworkTimeout.Std()) }
	}

	if info, err := fsys.Stat(localPath); err == nil && !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s exists and is not a directory", localPath)
	}
	if err := fsys.MkdirAll(localPath, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrWriteFailed, "cannot create %s", localPath)
	}

	branch := config.DefaultBranch
	if cfg.Repository != nil {
		branch = cfg.Repository.BranchName()
	}

	result := &types.InitResult{
		Remote:    opts.Remote,
		RemoteURL: config.ExpandRemote(opts.Remote, cfg.Git.RemoteURLTemplate),
		LocalPath: localPath,
		Branch:    branch,
	}
	if cfg.IsInitialized() && cfg.Repository.LocalPath != localPath {
		result.Replaced = cfg.Repository.LocalPath
	}

	client := newGit(localPath)
	if !client.IsRepo(ctx) {
		if err := client.Init(ctx); err != nil {
			return nil, err
		}
		if err := client.SetBranch(ctx, branch); err != nil {
			return nil, err
		}
		result.Created = true
	}
	if err := client.EnsureRemote(ctx, git.DefaultRemote, result.RemoteURL); err != nil {
		return nil, err
	}

	cfg.SetRepository(opts.Remote, localPath, branch)
	log.Info().
		Str("path", localPath).
		Str("remote_url", result.RemoteURL).
		Bool("created", result.Created).
		Msg("Repository configured")
	return result, nil
}
