package report

import (
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Exit codes returned by Summary.ExitCode
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// GroupStatus is the aggregated state of one group's outcomes
type GroupStatus string

const (
	GroupSuccess GroupStatus = "success" // everything applied or already up to date
	GroupPartial GroupStatus = "partial" // some actions failed or conflicted
	GroupError   GroupStatus = "error"   // every action failed
	GroupSkipped GroupStatus = "skipped" // every action conflicted and was left alone
)

// GroupSummary groups the outcomes of a single profile group
type GroupSummary struct {
	Name     string
	Status   GroupStatus
	Outcomes []types.Outcome
	Counts   map[types.Status]int
}

// Summary is the aggregated result of one execution
type Summary struct {
	Counts   map[types.Status]int
	Outcomes []types.Outcome
	Failures []types.Outcome
	Groups   []GroupSummary
	DryRun   bool
}

// Summarize counts outcomes by status, keeping their order
func Summarize(outcomes []types.Outcome) Summary {
	s := Summary{
		Counts:   newCounts(),
		Outcomes: append([]types.Outcome(nil), outcomes...),
	}

	index := make(map[string]int)
	for _, o := range outcomes {
		s.Counts[o.Status]++
		if o.Failed() {
			s.Failures = append(s.Failures, o)
		}
		if o.DryRun {
			s.DryRun = true
		}

		i, ok := index[o.Action.Group]
		if !ok {
			i = len(s.Groups)
			index[o.Action.Group] = i
			s.Groups = append(s.Groups, GroupSummary{Name: o.Action.Group, Counts: newCounts()})
		}
		g := &s.Groups[i]
		g.Outcomes = append(g.Outcomes, o)
		g.Counts[o.Status]++
	}

	for i := range s.Groups {
		s.Groups[i].Status = groupStatus(s.Groups[i])
	}
	return s
}

// Total returns the number of outcomes
func (s Summary) Total() int {
	return len(s.Outcomes)
}

// Count returns the number of outcomes with the given status
func (s Summary) Count(status types.Status) int {
	return s.Counts[status]
}

// Conflicts returns the outcomes left untouched because of a conflict
func (s Summary) Conflicts() []types.Outcome {
	var out []types.Outcome
	for _, o := range s.Outcomes {
		if o.Status == types.StatusSkippedConflict {
			out = append(out, o)
		}
	}
	return out
}

// Success reports whether the run succeeded. In strict mode a
// skipped-conflict also counts as a failure.
func (s Summary) Success(strict bool) bool {
	if s.Count(types.StatusFailed) > 0 {
		return false
	}
	if strict && s.Count(types.StatusSkippedConflict) > 0 {
		return false
	}
	return true
}

// ExitCode maps Success to a process exit status
func (s Summary) ExitCode(strict bool) int {
	if s.Success(strict) {
		return ExitSuccess
	}
	return ExitFailure
}

func newCounts() map[types.Status]int {
	counts := make(map[types.Status]int, len(types.Statuses))
	for _, st := range types.Statuses {
		counts[st] = 0
	}
	return counts
}

func groupStatus(g GroupSummary) GroupStatus {
	total := len(g.Outcomes)
	failed := g.Counts[types.StatusFailed]
	conflicts := g.Counts[types.StatusSkippedConflict]

	switch {
	case failed == total:
		return GroupError
	case conflicts == total:
		return GroupSkipped
	case failed > 0 || conflicts > 0:
		return GroupPartial
	default:
		return GroupSuccess
	}
}
