package display

import (
	"fmt"
	"io"
	"sort"
)

// Renderer defines the interface for rendering command results
type Renderer interface {
	RenderReport(r Report) error
	RenderPlan(p PlanDocument) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// New returns the renderer for a concrete format. Resolve auto first.
func New(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatText:
		return NewTextRenderer(w), nil
	case FormatRich:
		return NewRichRenderer(w), nil
	case FormatJSON:
		return NewJSONRenderer(w), nil
	case FormatYAML:
		return NewYAMLRenderer(w), nil
	case FormatXML:
		return NewXMLRenderer(w), nil
	default:
		return nil, fmt.Errorf("no renderer for format %q", format)
	}
}

// sortedKeys returns the keys of a detail map in order
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
