package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Outcome colors, one per deployment status. Each pair is light terminal
// first, dark terminal second.
var (
	AppliedColor = lipgloss.AdaptiveColor{
		Light: "#1F7A3D",
		Dark:  "#5FD38D",
	}

	UnchangedColor = lipgloss.AdaptiveColor{
		Light: "#5B6472",
		Dark:  "#9AA4B2",
	}

	ConflictColor = lipgloss.AdaptiveColor{
		Light: "#B45309",
		Dark:  "#F5B454",
	}

	FailedColor = lipgloss.AdaptiveColor{
		Light: "#B91C1C",
		Dark:  "#F87171",
	}
)

// Text colors
var (
	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#F3F4F6",
	}

	// PathColor is used for sources and destinations
	PathColor = lipgloss.AdaptiveColor{
		Light: "#374151",
		Dark:  "#C9D1DB",
	}

	InfoColor = lipgloss.AdaptiveColor{
		Light: "#0E7490",
		Dark:  "#67D4E8",
	}
)

// Action kind colors
var (
	SymlinkColor = lipgloss.AdaptiveColor{
		Light: "#0369A1",
		Dark:  "#4FB6F0",
	}

	CopyColor = lipgloss.AdaptiveColor{
		Light: "#6D28D9",
		Dark:  "#B39DFA",
	}
)
