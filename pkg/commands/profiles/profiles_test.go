// pkg/commands/profiles/profiles_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test profile listing and change results

package profiles_test

import (
	"testing"

	"github.com/arthur-debert/fuxi/pkg/commands/profiles"
	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLifecycle(t *testing.T) {
	cfg, err := config.Defaults()
	require.NoError(t, err)

	change, err := profiles.Create(cfg, "laptop")
	require.NoError(t, err)
	assert.Equal(t, "laptop", change.Active, "first profile becomes active")

	change, err = profiles.Create(cfg, "server")
	require.NoError(t, err)
	assert.Equal(t, "laptop", change.Active)

	change, err = profiles.Switch(cfg, "server")
	require.NoError(t, err)
	assert.Equal(t, "server", change.Active)

	list := profiles.List(cfg)
	require.Len(t, list.Profiles, 2)
	assert.False(t, list.Profiles[0].Active)
	assert.True(t, list.Profiles[1].Active)

	change, err = profiles.Delete(cfg, "server")
	require.NoError(t, err)
	assert.Empty(t, change.Active)
	assert.Empty(t, profiles.List(cfg).Active)
}

func TestProfileErrors(t *testing.T) {
	cfg, err := config.Defaults()
	require.NoError(t, err)
	_, err = profiles.Create(cfg, "main")
	require.NoError(t, err)

	_, err = profiles.Create(cfg, "main")
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateProfile))
	_, err = profiles.Switch(cfg, "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))
	_, err = profiles.Delete(cfg, "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))
	_, err = profiles.Create(cfg, "../etc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
