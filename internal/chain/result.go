// Package chain runs an ordered list of events against one shared, typed
// context. A fault-tolerance policy decides whether a failing event aborts the
// run or is recorded and skipped. Middleware wraps every event invocation.
//
// The package has no knowledge of any game; simulations build one chain per
// tick (or per setup phase) and inspect the returned ChainResult.
package chain

import (
	"errors"
	"fmt"
)

// ErrUnspecified is used when an event reports failure without an error.
var ErrUnspecified = errors.New("chain: unspecified failure")

// ErrEventPanic wraps a panic recovered while executing an event.
var ErrEventPanic = errors.New("chain: event panicked")

// Result is the outcome of a single event execution.
// The zero value is a success, so an event that returns Result{} without
// building one explicitly is treated as having succeeded.
type Result struct {
	err error
}

// Success returns a successful result.
func Success() Result {
	return Result{}
}

// Failure returns a failed result carrying err.
func Failure(err error) Result {
	if err == nil {
		err = ErrUnspecified
	}
	return Result{err: err}
}

// Failuref returns a failed result with a formatted error.
// %w verbs are honoured, so sentinel errors stay matchable with errors.Is.
func Failuref(format string, args ...any) Result {
	return Failure(fmt.Errorf(format, args...))
}

// OK reports whether the event succeeded.
func (r Result) OK() bool {
	return r.err == nil
}

// Err returns the failure cause, or nil on success.
func (r Result) Err() error {
	return r.err
}

// Message returns the failure message, or "" on success.
func (r Result) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Status is the aggregate outcome of a chain run.
type Status int

const (
	// StatusSuccess means every event succeeded.
	StatusSuccess Status = iota
	// StatusPartial means at least one event failed but the policy allowed
	// the chain to run to completion.
	StatusPartial
	// StatusFailure means a failure stopped the chain early.
	StatusFailure
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial_success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// EventFailure records one failed event in execution order.
type EventFailure struct {
	Event   string // Name of the failing event
	Message string // Error message at the time of failure
	Err     error  // Underlying error, usable with errors.Is
}

// ChainResult is the outcome of Chain.Execute.
type ChainResult[C any] struct {
	Status   Status
	Context  C
	Failures []EventFailure
}

// OK reports whether the chain ran to completion (success or partial success).
func (r ChainResult[C]) OK() bool {
	return r.Status != StatusFailure
}

// Partial reports whether the chain completed with recorded failures.
func (r ChainResult[C]) Partial() bool {
	return r.Status == StatusPartial
}

// Failed reports whether the chain was aborted by its policy.
func (r ChainResult[C]) Failed() bool {
	return r.Status == StatusFailure
}

// HasFailures reports whether any event failed.
func (r ChainResult[C]) HasFailures() bool {
	return len(r.Failures) > 0
}

// FailureCount returns the number of failed events.
func (r ChainResult[C]) FailureCount() int {
	return len(r.Failures)
}

// FirstFailure returns the earliest failure, if any.
func (r ChainResult[C]) FirstFailure() (EventFailure, bool) {
	if len(r.Failures) == 0 {
		return EventFailure{}, false
	}
	return r.Failures[0], true
}
