package paths_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestValidateProfileName(t *testing.T) {
	valid := []string{"main", "work-laptop", "p_1", "Home Desktop", "ünïcode"}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.NoError(t, paths.ValidateProfileName(name))
		})
	}

	invalid := map[string]string{
		"empty":         "",
		"slash":         "a/b",
		"backslash":     `a\b`,
		"dot":           ".",
		"dotdot":        "..",
		"leading dot":   ".git",
		"colon":         "c:",
		"star":          "a*",
		"pipe":          "a|b",
		"control chars": "a\tb",
	}
	for name, value := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			err := paths.ValidateProfileName(value)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, paths.ValidatePath("/home/u/.zshrc"))
	assert.Error(t, paths.ValidatePath(""))
	assert.Error(t, paths.ValidatePath("a\x00b"))
	assert.Error(t, paths.ValidatePath("/"+strings.Repeat("a", 5000)))
}
