// pkg/style/style_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the style sheet registry and markup rendering

package style

import (
	"testing"

	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSheet(t *testing.T) {
	r, err := ParseRegistry(defaultSheet)
	require.NoError(t, err)
	for _, name := range []string{"title", "path", "create", "overwrite", "noop", "profile"} {
		assert.Contains(t, r.Names(), name)
	}
}

func TestParseRegistry(t *testing.T) {
	r, err := ParseRegistry([]byte(`
colors:
  accent: { light: "#000000", dark: "#FFFFFF" }
styles:
  loud: { foreground: accent, bold: true }
  literal: { foreground: "#FF0000" }
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"literal", "loud"}, r.Names())
	assert.True(t, r.Get("loud").GetBold())
	assert.False(t, r.Get("missing").GetBold())

	_, err = ParseRegistry([]byte("styles: [unclosed"))
	assert.Error(t, err)
}

func TestMarkup(t *testing.T) {
	r, err := ParseRegistry([]byte(`
styles:
  path: { italic: true }
  bold: { bold: true }
`))
	require.NoError(t, err)
	p := NewMarkupParser(r)

	assert.Equal(t, "copied ~/.zshrc", p.Strip("copied [path]~/.zshrc[/path]"))
	assert.Equal(t, "a b", p.Strip("[bold]a [path]b[/path][/bold]"))
	assert.Equal(t, "[unknown]x[/unknown]", p.Strip("[unknown]x[/unknown]"))

	rendered := p.Render("copied [path]~/.zshrc[/path]")
	assert.Contains(t, rendered, "~/.zshrc")
	assert.NotContains(t, rendered, "[path]")

	nested := p.Render("[bold]a [path]b[/path][/bold]")
	assert.NotContains(t, nested, "[bold]")
	assert.NotContains(t, nested, "[/path]")
}

func TestIndicators(t *testing.T) {
	assert.Equal(t, SuccessIndicator, Indicator(types.StatusSuccess))
	assert.Equal(t, ErrorIndicator, Indicator(types.StatusFailed))
	assert.Equal(t, PendingIndicator, Indicator(types.StatusPlanned))
	assert.Equal(t, InfoIndicator, Indicator(types.StatusSkipped))
	assert.Contains(t, ActionLabel(types.ActionNoOp), "no-op")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "Hello", Indent("Hello", 0))
	assert.Equal(t, "    Hello", Indent("Hello", 2))
}
