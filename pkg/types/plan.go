package types

import "fmt"

// Action is one resolved deployment unit. It is a value type: copies
// never share state with the Plan they came from.
type Action struct {
	Group  string `json:"group" yaml:"group"`
	Entry  string `json:"entry" yaml:"entry"`
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
	Kind   Kind   `json:"kind" yaml:"kind"`

	// Policy overrides the executor's conflict policy when set
	Policy Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// Description returns a human-readable description of the action
func (a Action) Description() string {
	if a.Kind == KindCopy {
		return fmt.Sprintf("copy %s to %s", a.Source, a.Dest)
	}
	return fmt.Sprintf("link %s -> %s", a.Dest, a.Source)
}

// Plan is the ordered, validated list of Actions derived from a profile.
// No two Actions share a destination.
type Plan struct {
	actions []Action
}

// NewPlan creates a plan holding a private copy of actions
func NewPlan(actions []Action) *Plan {
	return &Plan{actions: append([]Action(nil), actions...)}
}

// Actions returns a copy of the planned actions in order
func (p *Plan) Actions() []Action {
	if p == nil {
		return nil
	}
	return append([]Action(nil), p.actions...)
}

// Len returns the number of actions
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.actions)
}

// Groups returns the group names in first-appearance order
func (p *Plan) Groups() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]bool)
	var groups []string
	for _, a := range p.actions {
		if !seen[a.Group] {
			seen[a.Group] = true
			groups = append(groups, a.Group)
		}
	}
	return groups
}
