package style

import (
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(UnchangedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(AppliedColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(FailedColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ConflictColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Kind styles
var (
	SymlinkStyle = lipgloss.NewStyle().
			Foreground(SymlinkColor).
			Bold(true)

	CopyStyle = lipgloss.NewStyle().
			Foreground(CopyColor).
			Bold(true)
)

// Indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	PendingIndicator = MutedStyle.Render("○")
)

// KindStyle returns the style used for an action kind
func KindStyle(kind types.Kind) lipgloss.Style {
	if kind == types.KindCopy {
		return CopyStyle
	}
	return SymlinkStyle
}

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
