package display

import (
	"fmt"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/report"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Meta describes the run a report belongs to
type Meta struct {
	Command string
	RunID   string
	Profile string
	Strict  bool
}

// Report is the rendering model of a deployment summary
type Report struct {
	Command string         `json:"command" yaml:"command"`
	RunID   string         `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Profile string         `json:"profile" yaml:"profile"`
	DryRun  bool           `json:"dry_run" yaml:"dry_run"`
	Strict  bool           `json:"strict" yaml:"strict"`
	Success bool           `json:"success" yaml:"success"`
	Counts  map[string]int `json:"counts" yaml:"counts"`
	Groups  []GroupResult  `json:"groups" yaml:"groups"`
}

// GroupResult holds the outcomes of one profile group
type GroupResult struct {
	Name     string          `json:"name" yaml:"name"`
	Status   string          `json:"status" yaml:"status"`
	Outcomes []OutcomeResult `json:"outcomes" yaml:"outcomes"`
}

// OutcomeResult is one rendered outcome. Status carries the dry-run prefix.
type OutcomeResult struct {
	Entry   string `json:"entry" yaml:"entry"`
	Kind    string `json:"kind" yaml:"kind"`
	Source  string `json:"source" yaml:"source"`
	Dest    string `json:"dest" yaml:"dest"`
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Backup  string `json:"backup,omitempty" yaml:"backup,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`

	status types.Status
	kind   types.Kind
}

// NewReport builds the rendering model of a summary
func NewReport(s report.Summary, meta Meta) Report {
	r := Report{
		Command: meta.Command,
		RunID:   meta.RunID,
		Profile: meta.Profile,
		DryRun:  s.DryRun,
		Strict:  meta.Strict,
		Success: s.Success(meta.Strict),
		Counts:  make(map[string]int, len(types.Statuses)),
		Groups:  make([]GroupResult, 0, len(s.Groups)),
	}
	for _, st := range types.Statuses {
		r.Counts[string(st)] = s.Count(st)
	}

	for _, g := range s.Groups {
		gr := GroupResult{Name: g.Name, Status: string(g.Status)}
		for _, o := range g.Outcomes {
			gr.Outcomes = append(gr.Outcomes, OutcomeResult{
				Entry:   o.Action.Entry,
				Kind:    string(o.Action.Kind),
				Source:  o.Action.Source,
				Dest:    o.Action.Dest,
				Status:  o.Label(),
				Message: o.Message,
				Backup:  o.BackupPath,
				Error:   o.ErrorMessage(),
				status:  o.Status,
				kind:    o.Action.Kind,
			})
		}
		r.Groups = append(r.Groups, gr)
	}
	return r
}

// PlanDocument is the rendering model of a plan
type PlanDocument struct {
	Profile string         `json:"profile" yaml:"profile"`
	Count   int            `json:"count" yaml:"count"`
	Actions []types.Action `json:"actions" yaml:"actions"`

	// Policy is the executor policy applied to actions that carry none
	Policy types.Policy `json:"default_policy" yaml:"default_policy"`
}

// NewPlanDocument builds the rendering model of a plan
func NewPlanDocument(profile string, plan *types.Plan, policy types.Policy) PlanDocument {
	actions := plan.Actions()
	if actions == nil {
		actions = []types.Action{}
	}
	return PlanDocument{
		Profile: profile,
		Count:   len(actions),
		Actions: actions,
		Policy:  policy,
	}
}

// ErrorDocument is the rendering model of a fatal error
type ErrorDocument struct {
	Error   string            `json:"error" yaml:"error"`
	Code    string            `json:"code" yaml:"code"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewErrorDocument builds the rendering model of an error
func NewErrorDocument(err error) ErrorDocument {
	doc := ErrorDocument{
		Error: err.Error(),
		Code:  string(errors.GetErrorCode(err)),
	}
	for k, v := range errors.GetErrorDetails(err) {
		text := fmt.Sprint(v)
		if text == "" {
			continue
		}
		if doc.Details == nil {
			doc.Details = make(map[string]string)
		}
		doc.Details[k] = text
	}
	return doc
}
