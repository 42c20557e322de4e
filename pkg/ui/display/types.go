// Package display turns command results into a format-neutral view that
// the text and terminal renderers print.
package display

import "github.com/arthur-debert/fuxi/pkg/types"

// Line is one item in a section. Text may carry style markup such as
// "[path]...[/path]"; plain renderers strip it.
type Line struct {
	Status types.ItemStatus
	// Action, when set, is shown as a colored label before Text.
	Action types.ActionKind
	// Label is a short plain tag shown before Text when Action is empty.
	Label  string
	Text   string
	Detail string
}

// Section groups lines under an optional title.
type Section struct {
	Title string
	Lines []Line
	// Empty is printed instead of the lines when there are none.
	Empty string
}

// View is everything a renderer prints for one result.
type View struct {
	Title    string
	Sections []Section
	// Summary lines follow the sections.
	Summary []string
	// Warnings are printed last, prefixed as warnings.
	Warnings []string
	// Raw is printed verbatim after everything else.
	Raw string
}
