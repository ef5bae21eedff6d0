// Package input provides the input/event subsystem: a queue of user actions
// fed by polled sources (keyboard) and by callers pushing actions directly.
package input

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Action is a user intent recognised by the demo loop.
type Action uint8

const (
	ActionQuit Action = iota + 1
	ActionTogglePause
	ActionStep
	ActionReset
	ActionReseed
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionTogglePause:
		return "pause"
	case ActionStep:
		return "step"
	case ActionReset:
		return "reset"
	case ActionReseed:
		return "reseed"
	default:
		return "unknown"
	}
}

// ParseAction maps an action name as printed by String back to the action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a := ActionQuit; a <= ActionReseed; a++ {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// Source is polled once per frame and emits the actions it observed.
type Source interface {
	Poll(emit func(Action))
}

// SourceFactory builds a fresh source for each queue, so stateful sources
// such as scripts start over on every run.
type SourceFactory func() Source

// Replay returns a factory producing a new script of actions per call.
func Replay(actions ...Action) SourceFactory {
	actions = slices.Clone(actions)
	return func() Source { return NewScript(actions...) }
}

// Queue collects actions between frames. Push is safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	pending  []Action
	sources  []Source
	quit     bool
	released bool
}

// New returns a queue polling the given sources plus the build's default
// sources.
func New(sources ...Source) *Queue {
	return &Queue{sources: append(defaultSources(), sources...)}
}

// Push enqueues an action. Actions pushed after Release are dropped.
func (q *Queue) Push(a Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.released {
		return
	}
	q.pending = append(q.pending, a)
	if a == ActionQuit {
		q.quit = true
	}
}

// Pump polls every source and drains the queue.
func (q *Queue) Pump() []Action {
	q.mu.Lock()
	sources := slices.Clone(q.sources)
	q.mu.Unlock()

	for _, s := range sources {
		s.Poll(q.Push)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// QuitRequested reports whether a quit action was ever pushed.
func (q *Queue) QuitRequested() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.quit
}

// Release detaches all sources and drops pending actions.
func (q *Queue) Release() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.released = true
	q.sources = nil
	q.pending = nil
	return nil
}

// Script replays a fixed list of actions, one per poll. It lets headless
// runs exercise interactive demos.
type Script struct {
	mu      sync.Mutex
	actions []Action
}

// NewScript returns a source emitting actions in order.
func NewScript(actions ...Action) *Script {
	return &Script{actions: actions}
}

// Poll emits the next scripted action, if any.
func (s *Script) Poll(emit func(Action)) {
	s.mu.Lock()
	if len(s.actions) == 0 {
		s.mu.Unlock()
		return
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	s.mu.Unlock()
	emit(a)
}
