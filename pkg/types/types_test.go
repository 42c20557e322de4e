// pkg/types/types_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test path kinds, backup ids and result helpers

package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathKind(t *testing.T) {
	tests := []struct {
		in      string
		want    types.PathKind
		wantErr bool
	}{
		{"file", types.KindFile, false},
		{"directory", types.KindDirectory, false},
		{"dir", types.KindDirectory, false},
		{" File ", types.KindFile, false},
		{"symlink", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := types.ParsePathKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathKindText(t *testing.T) {
	var k types.PathKind
	require.NoError(t, k.UnmarshalText([]byte("directory")))
	assert.Equal(t, types.KindDirectory, k)

	out, err := types.KindFile.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "file", string(out))

	assert.Error(t, k.UnmarshalText([]byte("fifo")))
}

func TestBackupShortHash(t *testing.T) {
	assert.Equal(t, "abc1234", types.Backup{Hash: "abc1234def5678"}.ShortHash())
	assert.Equal(t, "abc", types.Backup{Hash: "abc"}.ShortHash())
}

func TestResultCounters(t *testing.T) {
	apply := &types.ApplyResult{Actions: []types.ApplyAction{
		{Kind: types.ActionCreate},
		{Kind: types.ActionNoOp},
		{Kind: types.ActionCreate},
	}}
	assert.Equal(t, 2, apply.Count(types.ActionCreate))
	assert.Equal(t, 0, apply.Count(types.ActionOverwrite))

	backup := &types.BackupResult{Items: []types.BackupItem{
		{Source: "/a"},
		{Source: "/b", Error: errors.New("boom")},
	}}
	assert.Equal(t, 1, backup.FailedItems())

	assert.True(t, types.PathResult{Error: errors.New("x")}.Failed())
	assert.False(t, types.PathResult{}.Failed())
}

func TestItemErrorsEncodeAsMessages(t *testing.T) {
	result := &types.BackupResult{
		Profile: "main",
		Items: []types.BackupItem{
			{Source: "/a", Status: types.StatusSuccess},
			{Source: "/b", Status: types.StatusFailed, Error: errors.New("gone")},
		},
		PushError: errors.New("offline"),
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "main", decoded["profile"])
	assert.Equal(t, "offline", decoded["pushError"])

	items := decoded["items"].([]interface{})
	require.Len(t, items, 2)
	assert.NotContains(t, items[0].(map[string]interface{}), "error")
	assert.Equal(t, "gone", items[1].(map[string]interface{})["error"])
	assert.Equal(t, "/b", items[1].(map[string]interface{})["source"])
}
