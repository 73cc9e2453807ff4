package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format string

const (
	// FormatAuto picks rich output on color terminals and text otherwise
	FormatAuto Format = "auto"
	// FormatText renders plain text output without any styling
	FormatText Format = "text"
	// FormatRich renders terminal output with colors and badges
	FormatRich Format = "rich"
	// FormatJSON renders machine-readable JSON output
	FormatJSON Format = "json"
	// FormatYAML renders machine-readable YAML output
	FormatYAML Format = "yaml"
	// FormatXML renders an XML report document
	FormatXML Format = "xml"
)

// Formats lists every accepted format
var Formats = []Format{FormatAuto, FormatText, FormatRich, FormatJSON, FormatYAML, FormatXML}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "text", "plain":
		return FormatText, nil
	case "rich", "term", "terminal":
		return FormatRich, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// Structured reports whether the format is meant for machines
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatXML
}

// DetectFormat determines the appropriate output format based on environment and terminal capabilities
func DetectFormat(output io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	f, ok := output.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatRich
}

// Resolve turns auto into a concrete format and downgrades rich output
// when colors are disabled.
func Resolve(f Format, output io.Writer, noColor bool) Format {
	if f == FormatAuto || f == "" {
		f = DetectFormat(output)
	}
	if f == FormatRich && noColor {
		return FormatText
	}
	return f
}
