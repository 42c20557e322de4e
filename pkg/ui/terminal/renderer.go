// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/style"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/arthur-debert/fuxi/pkg/ui/display"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := display.Build(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	return display.Write(r.output, view, Styler{})
}

// RenderError renders an error with its failures, if any
func (r *Renderer) RenderError(err error) error {
	if _, werr := fmt.Fprintf(r.output, "%s %s\n", style.ErrorPrefix(), errors.Message(err)); werr != nil {
		return werr
	}
	if failures, ok := errors.GetErrorDetails(err)["failures"].(map[string]string); ok {
		for path, msg := range failures {
			if _, werr := fmt.Fprintf(r.output, "  %s %s %s\n", style.ErrorIndicator, style.PathStyle.Render(path), style.MutedStyle.Render("("+msg+")")); werr != nil {
				return werr
			}
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}

// Styler colors views with the built-in style sheet.
type Styler struct{}

func (Styler) Markup(s string) string                   { return style.Render(s) }
func (Styler) Title(s string) string                    { return style.TitleStyle.Render(s) }
func (Styler) Muted(s string) string                    { return style.MutedStyle.Render(s) }
func (Styler) Indicator(status types.ItemStatus) string { return style.Indicator(status) }
func (Styler) Action(kind types.ActionKind) string {
	pad := 9 - len(kind)
	if pad < 0 {
		pad = 0
	}
	return style.ActionLabel(kind) + strings.Repeat(" ", pad)
}
func (Styler) WarningPrefix() string { return style.WarningPrefix() }
