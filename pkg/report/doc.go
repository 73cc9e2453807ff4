// Package report aggregates executor outcomes into a Summary and decides
// the process exit status.
package report
