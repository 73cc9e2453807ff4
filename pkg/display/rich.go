package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/report"
	"github.com/arthur-debert/dotdeploy/pkg/style"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RichRenderer renders colored terminal output
type RichRenderer struct {
	writer io.Writer
}

// NewRichRenderer creates a new rich terminal renderer
func NewRichRenderer(w io.Writer) *RichRenderer {
	return &RichRenderer{writer: w}
}

// RenderReport renders one block per group followed by the counts
func (r *RichRenderer) RenderReport(rep Report) error {
	var b strings.Builder

	header := rep.Command
	if header != "" {
		header = strings.ToUpper(header[:1]) + header[1:]
	}
	if rep.DryRun {
		header += " (dry run)"
	}
	if header != "" {
		b.WriteString(style.TitleStyle.Render(header) + "\n")
	}

	for _, g := range rep.Groups {
		fmt.Fprintf(&b, "\n%s %s\n", groupIndicator(g.Status), style.Bold(g.Name))
		for _, o := range g.Outcomes {
			kind := style.KindStyle(o.kind).Render(fmt.Sprintf("%-7s", o.Kind))
			line := fmt.Sprintf("%s %s %s", style.Badge(types.Outcome{Status: o.status, DryRun: rep.DryRun}), kind, style.PathStyle.Render(o.Dest))
			if o.Message != "" {
				line += " " + style.MutedStyle.Render(o.Message)
			}
			b.WriteString(style.Indent(line, 1) + "\n")
			if o.Backup != "" {
				b.WriteString(style.Indent(style.MutedStyle.Render("backup: "+o.Backup), 3) + "\n")
			}
			if o.Error != "" {
				b.WriteString(style.Indent(style.ErrorStyle.Render(o.Error), 3) + "\n")
			}
		}
	}

	b.WriteString("\n" + r.renderCounts(rep) + "\n")

	_, err := io.WriteString(r.writer, b.String())
	return err
}

func (r *RichRenderer) renderCounts(rep Report) string {
	parts := make([]string, 0, len(types.Statuses))
	for _, st := range types.Statuses {
		n := rep.Counts[string(st)]
		label := string(st)
		if rep.DryRun {
			label = types.DryRunPrefix + label
		}
		text := fmt.Sprintf("%s %d %s", style.Indicator(st), n, label)
		if n == 0 {
			text = style.MutedStyle.Render(fmt.Sprintf("%d %s", n, label))
		}
		parts = append(parts, text)
	}

	verdict := style.SuccessStyle.Render("OK")
	if !rep.Success {
		verdict = style.ErrorStyle.Render("FAILED")
	}
	return verdict + "  " + strings.Join(parts, "  ")
}

// RenderPlan renders the plan table with rounded borders
func (r *RichRenderer) RenderPlan(p PlanDocument) error {
	tw := planTable(p)
	tw.SetOutputMirror(r.writer)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(style.TitleStyle.Render(p.Profile))
	tw.Render()
	return nil
}

// RenderError renders an error with its details
func (r *RichRenderer) RenderError(err error) error {
	doc := NewErrorDocument(err)
	var b strings.Builder
	b.WriteString(style.ErrorIndicator + " " + style.ErrorStyle.Render(doc.Error) + "\n")
	for _, k := range sortedKeys(doc.Details) {
		b.WriteString(style.Indent(style.MutedStyle.Render(k+": ")+doc.Details[k], 1) + "\n")
	}
	_, werr := io.WriteString(r.writer, b.String())
	return werr
}

// RenderMessage renders a line of text
func (r *RichRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.writer, style.InfoStyle.Render(msg))
	return err
}

func groupIndicator(status string) string {
	switch report.GroupStatus(status) {
	case report.GroupSuccess:
		return style.SuccessIndicator
	case report.GroupError:
		return style.ErrorIndicator
	case report.GroupPartial, report.GroupSkipped:
		return style.WarningIndicator
	default:
		return style.PendingIndicator
	}
}
