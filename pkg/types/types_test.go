package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"link", KindSymlink, true},
		{"symlink", KindSymlink, true},
		{" Link ", KindSymlink, true},
		{"copy", KindCopy, true},
		{"cp", KindCopy, true},
		{"template", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies {
		got, ok := ParsePolicy(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	got, ok := ParsePolicy("SKIP")
	assert.True(t, ok)
	assert.Equal(t, PolicySkip, got)

	_, ok = ParsePolicy("replace")
	assert.False(t, ok)
}

func TestPolicyOr(t *testing.T) {
	assert.Equal(t, PolicySkip, Policy("").Or(PolicySkip))
	assert.Equal(t, PolicyOverwrite, PolicyOverwrite.Or(PolicySkip))
	assert.False(t, Policy("").IsSet())
}

func TestPlanIsImmutable(t *testing.T) {
	actions := []Action{
		{Group: "vim", Entry: "vimrc", Source: "/d/vim/vimrc", Dest: "/h/.vimrc", Kind: KindSymlink},
		{Group: "git", Entry: "gitconfig", Source: "/d/git/gitconfig", Dest: "/h/.gitconfig", Kind: KindCopy},
	}
	plan := NewPlan(actions)

	actions[0].Dest = "/elsewhere"
	got := plan.Actions()
	assert.Equal(t, "/h/.vimrc", got[0].Dest)

	got[1].Dest = "/mutated"
	assert.Equal(t, "/h/.gitconfig", plan.Actions()[1].Dest)
	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, []string{"vim", "git"}, plan.Groups())
}

func TestNilPlan(t *testing.T) {
	var plan *Plan
	assert.Equal(t, 0, plan.Len())
	assert.Nil(t, plan.Actions())
}

func TestOutcomeLabel(t *testing.T) {
	o := Outcome{Status: StatusApplied}
	assert.Equal(t, "applied", o.Label())

	o.DryRun = true
	assert.Equal(t, "would-applied", o.Label())

	o = Outcome{Status: StatusFailed, Err: errors.New("permission denied")}
	assert.True(t, o.Failed())
	assert.Equal(t, "permission denied", o.ErrorMessage())
}

func TestActionDescription(t *testing.T) {
	a := Action{Source: "/d/vimrc", Dest: "/h/.vimrc", Kind: KindSymlink}
	assert.Equal(t, "link /h/.vimrc -> /d/vimrc", a.Description())

	a.Kind = KindCopy
	assert.Equal(t, "copy /d/vimrc to /h/.vimrc", a.Description())
	assert.Equal(t, "copied", a.Kind.Verb())
}
