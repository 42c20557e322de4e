// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/style"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/arthur-debert/fuxi/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := display.Build(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	return display.Write(r.output, view, Styler{})
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", errors.Message(err))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}

// Styler prints views without escape sequences.
type Styler struct{}

func (Styler) Markup(s string) string { return style.Strip(s) }
func (Styler) Title(s string) string  { return s }
func (Styler) Muted(s string) string  { return s }

func (Styler) Indicator(status types.ItemStatus) string {
	switch status {
	case types.StatusSuccess:
		return "[ok]  "
	case types.StatusFailed:
		return "[fail]"
	case types.StatusPlanned:
		return "[plan]"
	case types.StatusSkipped:
		return "[skip]"
	}
	return "-     "
}

func (Styler) Action(kind types.ActionKind) string { return fmt.Sprintf("%-9s", kind) }
func (Styler) WarningPrefix() string               { return "Warning:" }
