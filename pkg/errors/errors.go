package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Path resolution errors
	ErrUnresolvedVariable ErrorCode = "UNRESOLVED_VARIABLE"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrSettings      ErrorCode = "SETTINGS_INVALID"

	// Plan errors
	ErrSourceMissing        ErrorCode = "SOURCE_MISSING"
	ErrDuplicateDestination ErrorCode = "DUPLICATE_DESTINATION"

	// Execution errors
	ErrActionFailed ErrorCode = "ACTION_FAILED"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// Detail keys shared by the constructors below
const (
	DetailGroup    = "group"
	DetailEntry    = "entry"
	DetailReason   = "reason"
	DetailVariable = "variable"
	DetailPath     = "path"
)

// DeployError represents a structured error with code and details
type DeployError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DeployError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DeployError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DeployError) Is(target error) bool {
	var targetErr *DeployError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DeployError with the given code and message
func New(code ErrorCode, message string) *DeployError {
	return &DeployError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DeployError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DeployError {
	return &DeployError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DeployError
func Wrap(err error, code ErrorCode, message string) *DeployError {
	if err == nil {
		return nil
	}
	return &DeployError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DeployError {
	if err == nil {
		return nil
	}
	return &DeployError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DeployError) WithDetail(key string, value interface{}) *DeployError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DeployError) WithDetails(details map[string]interface{}) *DeployError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Detail returns a string detail, or "" when absent
func (e *DeployError) Detail(key string) string {
	if e.Details == nil {
		return ""
	}
	if v, ok := e.Details[key].(string); ok {
		return v
	}
	return ""
}

// NewConfigValidation reports a profile that violates an invariant.
// group and entry may be empty when the problem is not tied to one.
func NewConfigValidation(group, entry, reason string) *DeployError {
	var msg string
	switch {
	case group != "" && entry != "":
		msg = fmt.Sprintf("group %q, entry %q: %s", group, entry, reason)
	case group != "":
		msg = fmt.Sprintf("group %q: %s", group, reason)
	default:
		msg = reason
	}
	return New(ErrConfigInvalid, msg).
		WithDetail(DetailGroup, group).
		WithDetail(DetailEntry, entry).
		WithDetail(DetailReason, reason)
}

// NewUnresolvedVariable reports a variable reference with no definition
func NewUnresolvedVariable(name, rawPath string) *DeployError {
	return Newf(ErrUnresolvedVariable, "undefined variable %q in %q", name, rawPath).
		WithDetail(DetailVariable, name).
		WithDetail(DetailPath, rawPath)
}

// Claim identifies the group/entry pair that produced a destination
type Claim struct {
	Group string
	Entry string
}

func (c Claim) String() string {
	return c.Group + "/" + c.Entry
}

// NewDuplicateDestination reports two entries resolving to one destination
func NewDuplicateDestination(dest string, first, second Claim) *DeployError {
	return Newf(ErrDuplicateDestination, "destination %s claimed by both %s and %s", dest, first, second).
		WithDetail(DetailPath, dest).
		WithDetail("first", first).
		WithDetail("second", second)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DeployError
func GetErrorCode(err error) ErrorCode {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DeployError
func GetErrorDetails(err error) map[string]interface{} {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Details
	}
	return nil
}

// IsPlanTime reports whether err belongs to the class of errors raised
// before any filesystem mutation happens.
func IsPlanTime(err error) bool {
	switch GetErrorCode(err) {
	case ErrUnresolvedVariable, ErrConfigInvalid, ErrConfigLoad, ErrSourceMissing, ErrDuplicateDestination:
		return true
	}
	return false
}

// WithContext attaches the group and entry being processed to err when it
// is a DeployError that does not name them yet. Other errors are returned
// unchanged.
func WithContext(err error, group, entry string) error {
	var deployErr *DeployError
	if !errors.As(err, &deployErr) {
		return err
	}
	if group != "" && deployErr.Detail(DetailGroup) == "" {
		deployErr.WithDetail(DetailGroup, group)
	}
	if entry != "" && deployErr.Detail(DetailEntry) == "" {
		deployErr.WithDetail(DetailEntry, entry)
	}
	return err
}

// NewSourceMissing reports a profile source that does not exist
func NewSourceMissing(group, entry, path string) *DeployError {
	subject := "source"
	if entry == "" {
		subject = "source root"
	}
	return Newf(ErrSourceMissing, "%s %s does not exist", subject, path).
		WithDetail(DetailGroup, group).
		WithDetail(DetailEntry, entry).
		WithDetail(DetailPath, path)
}

// IsNotExist reports whether err means a path does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
