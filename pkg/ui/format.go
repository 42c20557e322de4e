package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command output is rendered.
type Format string

const (
	// FormatAuto picks terminal or text output from the output stream
	FormatAuto Format = "auto"
	// FormatTerminal renders colors and symbols
	FormatTerminal Format = "term"
	// FormatText renders plain text
	FormatText Format = "text"
	// FormatJSON renders one JSON document per result
	FormatJSON Format = "json"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatAuto, FormatTerminal, FormatText, FormatJSON}

func (f Format) String() string { return string(f) }

// ParseFormat accepts a format name and a few aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q (use auto, term, text or json)", s)
}

// DetectFormat chooses terminal output only for color capable
// terminals. NO_COLOR forces plain text.
func DetectFormat(output *os.File) Format {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
