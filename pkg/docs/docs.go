// Package docs holds the embedded profile format reference
package docs

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed profile.md
var profileReference string

// ProfileReference returns the profile format reference as markdown
func ProfileReference() string {
	return profileReference
}

// Render converts the reference to terminal output. plain selects the
// style without colors; width 0 keeps glamour's default wrapping.
func Render(width int, plain bool) (string, error) {
	var options []glamour.TermRendererOption

	if plain {
		options = append(options, glamour.WithStandardStyle("notty"))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}

	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(profileReference)
}
