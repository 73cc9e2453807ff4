package style

import (
	"fmt"

	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/pterm/pterm"
)

// StatusStyle returns the pterm badge style for an outcome status
func StatusStyle(status types.Status) *pterm.Style {
	switch status {
	case types.StatusApplied:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case types.StatusSkippedConflict:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Badge renders an outcome label padded to a fixed width
func Badge(o types.Outcome) string {
	return StatusStyle(o.Status).Sprint(fmt.Sprintf(" %-23s ", o.Label()))
}

// Indicator returns the one-character marker for a status
func Indicator(status types.Status) string {
	switch status {
	case types.StatusApplied:
		return SuccessIndicator
	case types.StatusFailed:
		return ErrorIndicator
	case types.StatusSkippedConflict:
		return WarningIndicator
	default:
		return PendingIndicator
	}
}
