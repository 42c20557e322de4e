// Package ui renders command results as styled terminal output, plain
// text or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/ui/json"
	"github.com/arthur-debert/fuxi/pkg/ui/terminal"
	"github.com/arthur-debert/fuxi/pkg/ui/text"
)

// Renderer is implemented by every output format.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders a failure, including per item details when the
	// error carries them
	RenderError(err error) error

	// RenderMessage renders a one line message that may contain markup
	RenderMessage(msg string) error
}

// NewRenderer returns the renderer for format. FormatAuto inspects
// output when it is a file and falls back to plain text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return text.New(output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q", string(format))
}
