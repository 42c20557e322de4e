// Package tracking adds and removes the paths a profile backs up.
package tracking

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// AddOptions holds options for `fuxi path add`
type AddOptions struct {
	Config     *config.Config
	Profile    string // defaults to the active profile
	Paths      []string
	FileSystem types.FS
}

// Add tracks every path it can. It fails only when no path was added.
func Add(opts AddOptions) (*types.PathListResult, error) {
	logger := logging.GetLogger("commands.tracking")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	profile, err := opts.Config.ResolveProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	items, err := opts.Config.AddPaths(fsys, profile.Name, opts.Paths)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Error != nil {
			logger.Warn().Err(item.Error).Str("path", item.Path).Msg("Path not added")
		} else {
			logger.Info().Str("path", item.Path).Str("kind", item.Kind.String()).Msg("Path added")
		}
	}
	return &types.PathListResult{Profile: profile.Name, Items: items}, config.Summarize(items)
}

// RemoveOptions holds options for `fuxi path remove`
type RemoveOptions struct {
	Config  *config.Config
	Profile string
	Paths   []string
	// Purge also deletes the stored copies from the repository and
	// untracks them in git, ready for the next backup or save to commit.
	Purge bool

	Git        git.Client
	FileSystem types.FS
}

// Remove stops tracking paths. It fails only when no path was removed.
func Remove(ctx context.Context, opts RemoveOptions) (*types.PathListResult, error) {
	logger := logging.GetLogger("commands.tracking")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	profile, err := opts.Config.ResolveProfile(opts.Profile)
	if err != nil {
		return nil, err
	}
	var repo *config.Repository
	if opts.Purge {
		if repo, err = opts.Config.RequireRepository(); err != nil {
			return nil, err
		}
	}

	name := profile.Name
	items, err := opts.Config.RemovePaths(name, opts.Paths)
	if err != nil {
		return nil, err
	}
	result := &types.PathListResult{Profile: name, Items: items}

	if opts.Purge {
		for i := range result.Items {
			item := &result.Items[i]
			if item.Error != nil {
				continue
			}
			if err := purge(ctx, opts.Git, fsys, repo.LocalPath, name, item.Path); err != nil {
				logger.Warn().Err(err).Str("path", item.Path).Msg("Untracked but not purged")
				item.Status = types.StatusFailed
				item.Error = err
			}
		}
	}
	return result, config.Summarize(result.Items)
}

func purge(ctx context.Context, client git.Client, fsys types.FS, repoDir, profile, source string) error {
	rel, err := paths.ToRepoRelative(profile, source)
	if err != nil {
		return err
	}
	if err := client.Remove(ctx, rel); err != nil {
		return err
	}
	if err := fsys.RemoveAll(filepath.Join(repoDir, filepath.FromSlash(rel))); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "cannot delete stored copy of %s", source)
	}
	return nil
}

// List returns the paths tracked by a profile.
func List(cfg *config.Config, profileName string) (*types.TrackedPathList, error) {
	profile, err := cfg.ResolveProfile(profileName)
	if err != nil {
		return nil, err
	}
	return &types.TrackedPathList{
		Profile: profile.Name,
		Paths:   append([]types.TrackedPath{}, profile.Paths...),
	}, nil
}
