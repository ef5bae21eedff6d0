package harness

import "time"

// Phase is the harness lifecycle state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseBootstrapping
	PhaseRunning
	PhaseTearingDown
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseRunning:
		return "running"
	case PhaseTearingDown:
		return "tearing-down"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the overall result of one EngineDemo call.
type Status uint8

const (
	StatusOK Status = iota
	StatusUnknownDemo
	StatusBootstrapFailure
	StatusRuntimeFailure
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnknownDemo:
		return "unknown demo"
	case StatusBootstrapFailure:
		return "bootstrap failure"
	case StatusRuntimeFailure:
		return "runtime failure"
	default:
		return "unknown"
	}
}

// Timings records how long a session spent in each phase.
type Timings struct {
	Resolve   time.Duration
	Bootstrap time.Duration
	Run       time.Duration
	Teardown  time.Duration
	Total     time.Duration
}

func (t *Timings) add(p Phase, d time.Duration) {
	switch p {
	case PhaseResolving:
		t.Resolve += d
	case PhaseBootstrapping:
		t.Bootstrap += d
	case PhaseRunning:
		t.Run += d
	case PhaseTearingDown:
		t.Teardown += d
	}
}
