package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fuxi/pkg/errors"
)

// volumePrefix marks a Windows drive segment in a repository path.
const volumePrefix = "@"

// ToRepoRelative returns where source is stored for profile inside the
// repository, always slash separated.
func ToRepoRelative(profile, source string) (string, error) {
	if err := ValidateProfileName(profile); err != nil {
		return "", err
	}
	if !filepath.IsAbs(source) {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not an absolute path", source).
			WithDetail("path", source)
	}

	cleaned := filepath.Clean(source)
	if IsRoot(cleaned) {
		return "", errors.New(errors.ErrInvalidInput, "the filesystem root cannot be tracked").
			WithDetail("path", source)
	}

	vol := filepath.VolumeName(cleaned)
	rest := strings.TrimPrefix(filepath.ToSlash(cleaned[len(vol):]), "/")

	segments := []string{profile}
	if vol != "" {
		if len(vol) != 2 || vol[1] != ':' {
			return "", errors.Newf(errors.ErrInvalidInput, "unsupported volume %s", vol).
				WithDetail("path", source)
		}
		segments = append(segments, volumePrefix+strings.ToUpper(vol[:1]))
	}
	segments = append(segments, rest)

	return path.Join(segments...), nil
}

// ToSource is the inverse of ToRepoRelative. It rejects paths outside the
// profile's namespace and any path with empty, "." or ".." segments.
func ToSource(profile, repoRelative string) (string, error) {
	if err := ValidateProfileName(profile); err != nil {
		return "", err
	}

	prefix := profile + "/"
	if !strings.HasPrefix(repoRelative, prefix) {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is outside profile %s", repoRelative, profile).
			WithDetail("path", repoRelative)
	}

	segments := strings.Split(strings.TrimPrefix(repoRelative, prefix), "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", errors.Newf(errors.ErrInvalidInput, "invalid repository path %s", repoRelative).
				WithDetail("path", repoRelative)
		}
	}

	if filepath.Separator == '\\' {
		first := segments[0]
		if len(first) != 2 || !strings.HasPrefix(first, volumePrefix) || len(segments) < 2 {
			return "", errors.Newf(errors.ErrInvalidInput, "repository path %s has no volume", repoRelative).
				WithDetail("path", repoRelative)
		}
		return first[1:] + ":" + `\` + strings.Join(segments[1:], `\`), nil
	}

	return "/" + strings.Join(segments, "/"), nil
}

// ProfileRoot returns the repository directory holding a profile's content.
func ProfileRoot(profile string) string {
	return profile + "/"
}
