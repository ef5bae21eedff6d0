package app

import (
	"fmt"

	"engine-demo/internal/harness"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitUnknown   = 3
	ExitBootstrap = 4
	ExitRuntime   = 5
)

// ExitCode maps a harness status onto the process exit code.
func ExitCode(s harness.Status) int {
	switch s {
	case harness.StatusOK:
		return ExitOK
	case harness.StatusUnknownDemo:
		return ExitUnknown
	case harness.StatusBootstrapFailure:
		return ExitBootstrap
	default:
		return ExitRuntime
	}
}

// ExitError carries the exit code a command wants the process to end with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
