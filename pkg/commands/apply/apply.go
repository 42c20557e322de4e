package apply

import (
	"context"
	"io/fs"
	"os"
	"sort"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/internal/hashutil"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/synthfs"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/rs/zerolog"
)

// Options holds options for the apply command
type Options struct {
	Config *config.Config
	// Reference is "latest", a full commit hash or an unambiguous prefix.
	Reference string
	DryRun    bool

	Git        git.Client
	FileSystem types.FS         // defaults to the OS filesystem
	Executor   synthfs.Executor // defaults to synthfs.New()
}

// planned couples an action with the content it writes.
type planned struct {
	action  types.ApplyAction
	content []byte
	mode    fs.FileMode
	replace bool
}

// Apply restores the active profile's files from a backup. A dry run
// returns the same actions a real run would take without touching
// anything besides fetching.
func Apply(ctx context.Context, opts Options) (*types.ApplyResult, error) {
	logger := logging.GetLogger("commands.apply")
	defer logging.LogOperationStart(logger, "apply")()

	cfg := opts.Config
	repo, err := cfg.RequireRepository()
	if err != nil {
		return nil, err
	}
	profile, err := cfg.Active()
	if err != nil {
		return nil, err
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

	reference := opts.Reference
	if reference == "" {
		reference = git.LatestReference
	}
	branch := repo.BranchName()

	if err := opts.Git.Fetch(ctx, git.DefaultRemote); err != nil {
		return nil, err
	}
	hash, err := git.Resolve(ctx, opts.Git, branch, reference)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("reference", reference).Str("commit", hash).Bool("dry_run", opts.DryRun).Msg("Resolved backup")

	if !opts.DryRun {
		if err := pull(ctx, opts.Git, branch); err != nil {
			return nil, err
		}
	}

	plans, err := planActions(ctx, opts.Git, fsys, profile.Name, hash)
	if err != nil {
		return nil, err
	}

	result := &types.ApplyResult{
		Profile:   profile.Name,
		Reference: reference,
		Commit:    hash,
		DryRun:    opts.DryRun,
		Actions:   make([]types.ApplyAction, len(plans)),
	}
	for i, p := range plans {
		result.Actions[i] = p.action
	}
	if opts.DryRun {
		logApply(logger, result)
		return result, failures(result)
	}

	var batches []synthfs.Batch
	var batchActions []int
	for i, p := range plans {
		action := &result.Actions[i]
		switch {
		case action.Error != nil:
			continue
		case action.Kind == types.ActionNoOp:
			action.Status = types.StatusSkipped
			continue
		}
		batches = append(batches, synthfs.Batch{
			Name: action.Destination,
			Writes: []synthfs.FileWrite{{
				Target:  action.Destination,
				Content: p.content,
				Mode:    p.mode,
				Replace: p.replace,
			}},
		})
		batchActions = append(batchActions, i)
	}

	for n, br := range executor.Execute(ctx, batches) {
		action := &result.Actions[batchActions[n]]
		if br.Error != nil {
			action.Status = types.StatusFailed
			action.Error = br.Error
			continue
		}
		action.Status = types.StatusSuccess
	}

	logApply(logger, result)
	if err := failures(result); err != nil {
		return result, err
	}
	cfg.LastBackupID = hash
	return result, nil
}

// pull fast-forwards the working tree when the remote branch exists. A
// branch that was never pushed has nothing to pull.
func pull(ctx context.Context, client git.Client, branch string) error {
	_, ok, err := client.ResolveRef(ctx, git.RemoteBranchRef(branch))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return client.Pull(ctx, git.DefaultRemote, branch)
}

// planActions classifies every file stored for profile at commit against
// the live filesystem. Files that cannot be read or mapped become failed
// actions rather than aborting the plan.
func planActions(ctx context.Context, client git.Client, fsys types.FS, profile, commit string) ([]planned, error) {
	entries, err := client.ListFiles(ctx, commit, paths.ProfileRoot(profile))
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	plans := make([]planned, 0, len(entries))
	for _, entry := range entries {
		p := planned{action: types.ApplyAction{
			RepoPath:   entry.Path,
			Executable: entry.Executable,
			Status:     types.StatusPlanned,
		}}

		dest, err := paths.ToSource(profile, entry.Path)
		if err != nil {
			plans = append(plans, failedPlan(p, err))
			continue
		}
		p.action.Destination = dest

		content, err := client.ReadFile(ctx, commit, entry.Path)
		if err != nil {
			plans = append(plans, failedPlan(p, err))
			continue
		}
		p.content = content

		info, err := fsys.Stat(dest)
		switch {
		case os.IsNotExist(err):
			p.action.Kind = types.ActionCreate
			p.mode = createMode(entry.Executable)
		case err != nil:
			plans = append(plans, failedPlan(p, errors.Wrapf(err, errors.ErrPartialCopyFailure, "cannot read %s", dest)))
			continue
		case info.IsDir():
			p.action.Kind = types.ActionOverwrite
			plans = append(plans, failedPlan(p, errors.Newf(errors.ErrPartialCopyFailure, "%s is a directory", dest)))
			continue
		default:
			same, err := hashutil.SameContent(fsys, dest, content)
			if err != nil {
				plans = append(plans, failedPlan(p, errors.Wrapf(err, errors.ErrPartialCopyFailure, "cannot read %s", dest)))
				continue
			}
			if same {
				p.action.Kind = types.ActionNoOp
			} else {
				p.action.Kind = types.ActionOverwrite
			}
			p.mode = overwriteMode(info.Mode().Perm(), entry.Executable)
			p.replace = p.mode != info.Mode().Perm()
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func failedPlan(p planned, err error) planned {
	if p.action.Kind == "" {
		p.action.Kind = types.ActionCreate
	}
	p.action.Status = types.StatusFailed
	p.action.Error = err
	return p
}

func createMode(executable bool) fs.FileMode {
	if executable {
		return 0755
	}
	return 0644
}

// overwriteMode keeps an existing file's permissions and only follows the
// executable bit recorded in the commit.
func overwriteMode(current fs.FileMode, executable bool) fs.FileMode {
	if executable {
		return current | (current&0444)>>2
	}
	return current &^ 0111
}

func failures(result *types.ApplyResult) error {
	failed := make(map[string]string)
	for _, a := range result.Actions {
		if a.Error != nil {
			failed[a.RepoPath] = errors.Message(a.Error)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrPartialCopyFailure, "%d of %d files could not be restored", len(failed), len(result.Actions)).
		WithDetail("failures", failed)
}

func logApply(logger zerolog.Logger, result *types.ApplyResult) {
	logger.Info().
		Str("profile", result.Profile).
		Str("commit", result.Commit).
		Bool("dry_run", result.DryRun).
		Int("create", result.Count(types.ActionCreate)).
		Int("overwrite", result.Count(types.ActionOverwrite)).
		Int("no_op", result.Count(types.ActionNoOp)).
		Msg("Apply finished")
}
