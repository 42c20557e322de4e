package config

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// AddPaths starts tracking inputs in profile (the active one when empty).
// Each input is handled on its own; a failing input does not stop the
// rest. Profile errors are returned before anything changes.
func (c *Config) AddPaths(fsys types.FS, profile string, inputs []string) ([]types.PathResult, error) {
	p, err := c.ResolveProfile(profile)
	if err != nil {
		return nil, err
	}

	results := make([]types.PathResult, 0, len(inputs))
	for _, input := range inputs {
		result := types.PathResult{Path: input}

		source, err := normalizeInput(input)
		if err != nil {
			results = append(results, failed(result, err))
			continue
		}
		result.Path = source

		if paths.IsRoot(source) {
			results = append(results, failed(result,
				errors.New(errors.ErrInvalidInput, "the filesystem root cannot be tracked").WithDetail("path", source)))
			continue
		}

		if err := c.CheckOutsideRepository(source); err != nil {
			results = append(results, failed(result, err))
			continue
		}

		info, err := fsys.Stat(source)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				err = errors.Newf(errors.ErrPathNotFound, "%s does not exist", source).WithDetail("path", source)
			} else {
				err = errors.Wrapf(err, errors.ErrPathNotFound, "cannot access %s", source).WithDetail("path", source)
			}
			results = append(results, failed(result, err))
			continue
		}

		if p.Tracks(source) {
			results = append(results, failed(result,
				errors.Newf(errors.ErrDuplicatePath, "%s is already tracked by %s", source, p.Name).WithDetail("path", source)))
			continue
		}

		kind := types.KindOf(info)
		p.Paths = append(p.Paths, types.TrackedPath{Source: source, Kind: kind})
		result.Kind = kind
		result.Status = types.StatusSuccess
		results = append(results, result)
	}

	return results, nil
}

// CheckOutsideRepository rejects a source that is the repository, holds
// it or lives inside it.
func (c *Config) CheckOutsideRepository(source string) error {
	if !c.IsInitialized() || !paths.Overlaps(source, c.Repository.LocalPath) {
		return nil
	}
	return errors.Newf(errors.ErrInvalidInput, "%s overlaps the backup repository %s", source, c.Repository.LocalPath).
		WithDetail("path", source).
		WithDetail("repository", c.Repository.LocalPath)
}

// RemovePaths stops tracking inputs in profile (the active one when
// empty). Sources do not need to exist any more.
func (c *Config) RemovePaths(profile string, inputs []string) ([]types.PathResult, error) {
	p, err := c.ResolveProfile(profile)
	if err != nil {
		return nil, err
	}

	results := make([]types.PathResult, 0, len(inputs))
	for _, input := range inputs {
		result := types.PathResult{Path: input}

		source, err := normalizeInput(input)
		if err != nil {
			results = append(results, failed(result, err))
			continue
		}
		result.Path = source

		idx := p.index(source)
		if idx < 0 {
			results = append(results, failed(result,
				errors.Newf(errors.ErrPathNotTracked, "%s is not tracked by %s", source, p.Name).WithDetail("path", source)))
			continue
		}

		result.Kind = p.Paths[idx].Kind
		p.Paths = append(p.Paths[:idx], p.Paths[idx+1:]...)
		result.Status = types.StatusSuccess
		results = append(results, result)
	}

	return results, nil
}

// Summarize turns per-item results into a command outcome: nil when at
// least one item succeeded, ErrAllItemsFailed otherwise.
func Summarize(results []types.PathResult) error {
	if len(results) == 0 {
		return nil
	}

	failures := make(map[string]string)
	for _, r := range results {
		if !r.Failed() {
			return nil
		}
		failures[r.Path] = errors.Message(r.Error)
	}

	err := errors.New(errors.ErrAllItemsFailed, "no path could be processed")
	if len(results) == 1 {
		err = errors.Wrap(results[0].Error, errors.ErrAllItemsFailed, "no path could be processed")
	}
	return err.WithDetail("failures", failures)
}

func normalizeInput(input string) (string, error) {
	if err := paths.ValidatePath(input); err != nil {
		return "", err
	}
	return paths.NormalizePath(input)
}

func failed(r types.PathResult, err error) types.PathResult {
	r.Status = types.StatusFailed
	r.Error = err
	return r
}
