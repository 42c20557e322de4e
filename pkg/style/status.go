package style

import "github.com/arthur-debert/fuxi/pkg/types"

// Indicator returns the symbol shown in front of an item.
func Indicator(status types.ItemStatus) string {
	switch status {
	case types.StatusSuccess:
		return SuccessIndicator
	case types.StatusFailed:
		return ErrorIndicator
	case types.StatusPlanned:
		return PendingIndicator
	default:
		return InfoIndicator
	}
}

// ActionLabel renders an apply action kind in its own color.
func ActionLabel(kind types.ActionKind) string {
	switch kind {
	case types.ActionCreate:
		return Get("create").Render(string(kind))
	case types.ActionOverwrite:
		return Get("overwrite").Render(string(kind))
	default:
		return Get("noop").Render(string(kind))
	}
}
