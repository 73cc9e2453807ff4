package types

// Status is the result kind of executing one Action
type Status string

const (
	// StatusApplied means the action placed its source at the destination
	StatusApplied Status = "applied"

	// StatusSkippedUnchanged means the destination already matched
	StatusSkippedUnchanged Status = "skipped-unchanged"

	// StatusSkippedConflict means the destination differed and the skip
	// policy left it alone
	StatusSkippedConflict Status = "skipped-conflict"

	// StatusFailed means a filesystem operation failed
	StatusFailed Status = "failed"
)

// Statuses lists every status in summary order
var Statuses = []Status{StatusApplied, StatusSkippedUnchanged, StatusSkippedConflict, StatusFailed}

// DryRunPrefix marks outcomes that were only evaluated
const DryRunPrefix = "would-"

// Outcome is the result of executing one Action. Exactly one Outcome is
// produced per Action.
type Outcome struct {
	Action  Action
	Status  Status
	Message string

	// Err holds the failure for StatusFailed outcomes
	Err error

	// BackupPath is where a conflicting destination was moved to
	BackupPath string

	// DryRun is set when no filesystem mutation was issued
	DryRun bool
}

// Label returns the status as shown to users, with the dry-run prefix
func (o Outcome) Label() string {
	if o.DryRun {
		return DryRunPrefix + string(o.Status)
	}
	return string(o.Status)
}

// Failed reports whether the outcome is a failure
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// ErrorMessage returns the failure text or ""
func (o Outcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
