package paths

import (
	"strings"

	"github.com/arthur-debert/fuxi/pkg/errors"
)

// ValidateProfileName ensures a profile name can be used as the top level
// directory of the repository. Names must not be empty, contain path
// separators or special characters, or start with a dot.
func ValidateProfileName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.New(errors.ErrInvalidInput, "profile name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be '.' or '..'")
	}

	if strings.HasPrefix(name, ".") {
		return errors.New(errors.ErrInvalidInput, "profile name cannot start with '.'")
	}

	invalidChars := ":*?\"<>|"
	if strings.ContainsAny(name, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"profile name contains invalid characters: %s", invalidChars)
	}

	for _, r := range name {
		if r < 32 || r == 127 {
			return errors.New(errors.ErrInvalidInput,
				"profile name contains control characters")
		}
	}

	return nil
}

// ValidatePath performs basic validation on a user supplied path.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}
	return nil
}
