// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: ui/json, ui/text, ui/terminal
// PURPOSE: Test renderer selection and what each renderer writes

package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/arthur-debert/fuxi/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApply() *types.ApplyResult {
	return &types.ApplyResult{
		Profile:   "main",
		Reference: "latest",
		Commit:    "abcdef0123456789",
		DryRun:    true,
		Actions: []types.ApplyAction{
			{RepoPath: "main/home/u/.zshrc", Destination: "/home/u/.zshrc", Kind: types.ActionOverwrite, Status: types.StatusPlanned},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range ui.Formats {
		t.Run(format.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	r, err := ui.NewRenderer(ui.Format("xml"), &bytes.Buffer{})
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleApply()))
	out := buf.String()
	assert.Contains(t, out, "Would restore main from abcdef0")
	assert.Contains(t, out, "[plan]")
	assert.Contains(t, out, "overwrite")
	assert.Contains(t, out, "/home/u/.zshrc")
	assert.NotContains(t, out, "[path]")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrUnknownProfile, "profile \"x\" does not exist")))
	assert.Equal(t, "Error: profile \"x\" does not exist\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderMessage("Tracking [path]/a[/path]"))
	assert.Equal(t, "Tracking /a\n", buf.String())
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleApply()))
	out := buf.String()
	assert.Contains(t, out, "/home/u/.zshrc")
	assert.NotContains(t, out, "[path]")

	buf.Reset()
	err = errors.New(errors.ErrPartialCopyFailure, "1 of 2 files could not be restored").
		WithDetail("failures", map[string]string{"main/a": "permission denied"})
	require.NoError(t, r.RenderError(err))
	assert.Contains(t, buf.String(), "1 of 2 files could not be restored")
	assert.Contains(t, buf.String(), "main/a")
	assert.Contains(t, buf.String(), "permission denied")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(sampleApply()))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "abcdef0123456789", decoded["commit"])
	assert.Equal(t, true, decoded["dryRun"])

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrAmbiguousReference, "abc matches 2 backups").
		WithDetail("candidates", []string{"abc1", "abc2"})))
	var errDoc struct {
		Error struct {
			Code    string                 `json:"code"`
			Message string                 `json:"message"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &errDoc))
	assert.Equal(t, "AMBIGUOUS_REFERENCE", errDoc.Error.Code)
	assert.Equal(t, "abc matches 2 backups", errDoc.Error.Message)
	assert.Len(t, errDoc.Error.Details["candidates"], 2)

	buf.Reset()
	require.NoError(t, r.RenderMessage("[bold]done[/bold]"))
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}
