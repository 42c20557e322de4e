package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/fuxi/pkg/types"
)

// Styler decides how view elements look. Text output strips markup;
// terminal output colors it.
type Styler interface {
	Markup(s string) string
	Title(s string) string
	Muted(s string) string
	Indicator(status types.ItemStatus) string
	Action(kind types.ActionKind) string
	WarningPrefix() string
}

// Write prints a view.
func Write(w io.Writer, v *View, st Styler) error {
	var b strings.Builder

	if v.Title != "" {
		b.WriteString(st.Title(st.Markup(v.Title)) + "\n\n")
	}
	for i, s := range v.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Title != "" {
			b.WriteString(st.Title(st.Markup(s.Title)) + "\n")
		}
		if len(s.Lines) == 0 && s.Empty != "" {
			b.WriteString("  " + st.Muted(s.Empty) + "\n")
		}
		for _, line := range s.Lines {
			b.WriteString(formatLine(line, st) + "\n")
		}
	}
	if len(v.Sections) > 0 && len(v.Summary) > 0 {
		b.WriteString("\n")
	}
	for _, s := range v.Summary {
		b.WriteString(st.Markup(s) + "\n")
	}
	for _, warning := range v.Warnings {
		b.WriteString(st.WarningPrefix() + " " + st.Markup(warning) + "\n")
	}
	if v.Raw != "" {
		b.WriteString(v.Raw)
		if !strings.HasSuffix(v.Raw, "\n") {
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatLine(line Line, st Styler) string {
	parts := []string{" "}
	if line.Status != "" {
		parts = append(parts, st.Indicator(line.Status))
	} else {
		parts = append(parts, st.Indicator(""))
	}
	switch {
	case line.Action != "":
		parts = append(parts, st.Action(line.Action))
	case line.Label != "":
		parts = append(parts, st.Muted(fmt.Sprintf("%-9s", line.Label)))
	}
	parts = append(parts, st.Markup(line.Text))
	if line.Detail != "" {
		parts = append(parts, st.Muted("("+line.Detail+")"))
	}
	return strings.Join(parts, " ")
}
