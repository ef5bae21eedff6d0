package subsystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrExhausted signals that a subsystem resource is already in use or
	// cannot be allocated.
	ErrExhausted = errors.New("subsystem resource exhausted")
	// ErrNoProvider is returned when a kind has no registered provider.
	ErrNoProvider = errors.New("no provider for subsystem")
	// ErrNilHandle is returned when a provider reports success without a handle.
	ErrNilHandle = errors.New("provider returned nil handle")
)

// Reason classifies why a subsystem failed to start.
type Reason uint8

const (
	ReasonConfig Reason = iota
	ReasonMissingAsset
	ReasonExhausted
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingAsset:
		return "missing asset"
	case ReasonExhausted:
		return "resource exhausted"
	case ReasonCanceled:
		return "canceled"
	default:
		return "configuration"
	}
}

// classify maps a provider error onto a Reason.
func classify(err error) Reason {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	case errors.Is(err, ErrExhausted):
		return ReasonExhausted
	case errors.Is(err, fs.ErrNotExist):
		return ReasonMissingAsset
	default:
		return ReasonConfig
	}
}

// BootstrapError reports the subsystem that failed to start. Any error raised
// while rolling back earlier acquisitions is kept in Rollback.
type BootstrapError struct {
	Kind     Kind
	Reason   Reason
	Err      error
	Rollback error
}

func (e *BootstrapError) Error() string {
	msg := fmt.Sprintf("bootstrap %s (%s): %v", e.Kind, e.Reason, e.Err)
	if e.Rollback != nil {
		msg += "; rollback: " + e.Rollback.Error()
	}
	return msg
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// ReleaseFailure is one failed release step.
type ReleaseFailure struct {
	Kind Kind
	Err  error
}

// TeardownError aggregates every release failure of one teardown pass.
type TeardownError struct {
	Failures []ReleaseFailure
}

func (e *TeardownError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Kind, f.Err))
	}
	return "release: " + strings.Join(parts, "; ")
}

func (e *TeardownError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}

// Kinds lists the kinds whose release failed, in release order.
func (e *TeardownError) Kinds() []Kind {
	out := make([]Kind, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Kind)
	}
	return out
}

// PanicError wraps a value recovered from a panic, with the stack of the
// panicking goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }
