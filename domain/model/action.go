package model

import "strings"

// PlaceholderToken is replaced by the triggering file path in command templates.
const PlaceholderToken = "MONI_FILE_PATH"

// ActionFunc is a programmatic action. The returned string is reported on
// success, the error message on failure.
type ActionFunc func(path string) (string, error)

// ActionSpec describes what runs for a changed file. When both fields are
// set the callback takes precedence.
type ActionSpec struct {
	Command  string
	Callback ActionFunc
}

// IsEmpty reports whether no action is configured.
func (a ActionSpec) IsEmpty() bool {
	return a.Callback == nil && a.Command == ""
}

// ExpandCommand substitutes every placeholder occurrence with path.
func ExpandCommand(template, path string) string {
	return strings.ReplaceAll(template, PlaceholderToken, path)
}

// CommandResult is the captured outcome of a finished shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports a zero exit status.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// DispatchOutcome summarizes a single dispatch for bookkeeping.
type DispatchOutcome string

const (
	OutcomeNone      DispatchOutcome = "none"
	OutcomeSucceeded DispatchOutcome = "succeeded"
	OutcomeFailed    DispatchOutcome = "failed"
)
