package report

import (
	"errors"
	"testing"

	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(group, entry string, status types.Status) types.Outcome {
	o := types.Outcome{
		Action: types.Action{Group: group, Entry: entry, Dest: "/h/" + entry},
		Status: status,
	}
	if status == types.StatusFailed {
		o.Err = errors.New("boom")
	}
	return o
}

func TestSummarize(t *testing.T) {
	outcomes := []types.Outcome{
		outcome("vim", "vimrc", types.StatusApplied),
		outcome("vim", "gvimrc", types.StatusSkippedUnchanged),
		outcome("git", "gitconfig", types.StatusFailed),
		outcome("zsh", "zshrc", types.StatusSkippedConflict),
		outcome("vim", "colors", types.StatusApplied),
	}

	s := Summarize(outcomes)

	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 2, s.Count(types.StatusApplied))
	assert.Equal(t, 1, s.Count(types.StatusSkippedUnchanged))
	assert.Equal(t, 1, s.Count(types.StatusSkippedConflict))
	assert.Equal(t, 1, s.Count(types.StatusFailed))
	assert.Equal(t, outcomes, s.Outcomes)
	require.Len(t, s.Failures, 1)
	assert.Equal(t, "gitconfig", s.Failures[0].Action.Entry)
	require.Len(t, s.Conflicts(), 1)
	assert.False(t, s.DryRun)

	require.Len(t, s.Groups, 3)
	assert.Equal(t, "vim", s.Groups[0].Name)
	assert.Equal(t, GroupSuccess, s.Groups[0].Status)
	assert.Len(t, s.Groups[0].Outcomes, 3)
	assert.Equal(t, GroupError, s.Groups[1].Status)
	assert.Equal(t, GroupSkipped, s.Groups[2].Status)

	outcomes[0].Status = types.StatusFailed
	assert.Equal(t, types.StatusApplied, s.Outcomes[0].Status, "summary keeps its own copy")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Total())
	for _, st := range types.Statuses {
		assert.Equal(t, 0, s.Count(st))
	}
	assert.True(t, s.Success(true))
	assert.Equal(t, ExitSuccess, s.ExitCode(true))
}

func TestGroupPartial(t *testing.T) {
	s := Summarize([]types.Outcome{
		outcome("vim", "vimrc", types.StatusApplied),
		outcome("vim", "gvimrc", types.StatusSkippedConflict),
	})
	assert.Equal(t, GroupPartial, s.Groups[0].Status)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []types.Status
		exitCode   int
		strictCode int
	}{
		{"all applied", []types.Status{types.StatusApplied, types.StatusSkippedUnchanged}, ExitSuccess, ExitSuccess},
		{"conflict", []types.Status{types.StatusApplied, types.StatusSkippedConflict}, ExitSuccess, ExitFailure},
		{"failure", []types.Status{types.StatusFailed, types.StatusApplied}, ExitFailure, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var outcomes []types.Outcome
			for _, st := range tt.statuses {
				outcomes = append(outcomes, outcome("g", string(st), st))
			}
			s := Summarize(outcomes)
			assert.Equal(t, tt.exitCode, s.ExitCode(false))
			assert.Equal(t, tt.strictCode, s.ExitCode(true))
			assert.Equal(t, tt.exitCode == ExitSuccess, s.Success(false))
		})
	}
}

func TestDryRunSummary(t *testing.T) {
	o := outcome("g", "a", types.StatusApplied)
	o.DryRun = true

	s := Summarize([]types.Outcome{o})
	assert.True(t, s.DryRun)
	assert.Equal(t, "would-applied", s.Outcomes[0].Label())
}
