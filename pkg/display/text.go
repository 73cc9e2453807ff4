package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TextRenderer provides plain text output
type TextRenderer struct {
	writer io.Writer
}

// NewTextRenderer creates a new text renderer
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{writer: w}
}

// RenderReport outputs the report grouped by profile group
func (r *TextRenderer) RenderReport(rep Report) error {
	var b strings.Builder

	header := rep.Command
	if rep.DryRun {
		header += " (dry run)"
	}
	if header != "" {
		b.WriteString(header + "\n")
	}

	if len(rep.Groups) == 0 {
		b.WriteString("Nothing to deploy\n")
	}

	for _, g := range rep.Groups {
		fmt.Fprintf(&b, "\n%s:\n", g.Name)
		for _, o := range g.Outcomes {
			fmt.Fprintf(&b, "    %-25s %s\n", o.Status, outcomeLine(o))
			if o.Backup != "" {
				fmt.Fprintf(&b, "    %-25s backup: %s\n", "", o.Backup)
			}
			if o.Error != "" {
				fmt.Fprintf(&b, "    %-25s error: %s\n", "", o.Error)
			}
		}
	}

	b.WriteString("\n" + countsLine(rep) + "\n")

	_, err := io.WriteString(r.writer, b.String())
	return err
}

// RenderPlan outputs the plan as a table
func (r *TextRenderer) RenderPlan(p PlanDocument) error {
	tw := planTable(p)
	tw.SetOutputMirror(r.writer)
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}

// RenderError outputs an error with its details
func (r *TextRenderer) RenderError(err error) error {
	doc := NewErrorDocument(err)
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", doc.Error)
	for _, k := range sortedKeys(doc.Details) {
		fmt.Fprintf(&b, "    %s: %s\n", k, doc.Details[k])
	}
	_, werr := io.WriteString(r.writer, b.String())
	return werr
}

// RenderMessage outputs a line of text
func (r *TextRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.writer, msg)
	return err
}

func outcomeLine(o OutcomeResult) string {
	var line string
	if o.kind == types.KindCopy {
		line = fmt.Sprintf("%s => %s", o.Entry, o.Dest)
	} else {
		line = fmt.Sprintf("%s -> %s", o.Dest, o.Entry)
	}
	if o.Message != "" {
		line += " (" + o.Message + ")"
	}
	return line
}

func countsLine(rep Report) string {
	parts := make([]string, 0, len(types.Statuses))
	for _, st := range types.Statuses {
		label := string(st)
		if rep.DryRun {
			label = types.DryRunPrefix + label
		}
		parts = append(parts, fmt.Sprintf("%d %s", rep.Counts[string(st)], label))
	}
	return "Summary: " + strings.Join(parts, ", ")
}

// planTable builds the go-pretty table shared by the text and rich renderers
func planTable(p PlanDocument) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"#", "Group", "Entry", "Kind", "Source", "Destination", "Policy"})
	for i, a := range p.Actions {
		policy := string(a.Policy)
		if policy == "" {
			policy = string(p.Policy) + " (default)"
		}
		tw.AppendRow(table.Row{i + 1, a.Group, a.Entry, a.Kind, a.Source, a.Dest, policy})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "Actions", p.Count})
	return tw
}
