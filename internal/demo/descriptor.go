// Package demo defines demo descriptors, the immutable registry that maps
// ids to them, and the contract a demo's entry routine fulfils.
package demo

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"engine-demo/internal/input"
	"engine-demo/internal/render"
	"engine-demo/internal/subsystem"
)

// ErrDone is returned from Scene.Tick when the demo finished on its own.
var ErrDone = errors.New("demo done")

// LoopMode decides what bounds a demo's run loop.
type LoopMode uint8

const (
	// Interactive runs until the user asks to exit.
	Interactive LoopMode = iota + 1
	// Bounded runs until its Budget is spent.
	Bounded
)

func (m LoopMode) String() string {
	switch m {
	case Interactive:
		return "interactive"
	case Bounded:
		return "bounded"
	default:
		return "unknown"
	}
}

// Budget bounds a run by tick count, wall time or both. Zero fields are
// unlimited.
type Budget struct {
	Ticks    uint64
	Duration time.Duration
}

// IsZero reports whether the budget sets no limit.
func (b Budget) IsZero() bool { return b.Ticks == 0 && b.Duration == 0 }

// Spent reports whether ticks or elapsed reached a limit.
func (b Budget) Spent(ticks uint64, elapsed time.Duration) bool {
	if b.Ticks > 0 && ticks >= b.Ticks {
		return true
	}
	return b.Duration > 0 && elapsed >= b.Duration
}

// Tick is the per-iteration input to a scene.
type Tick struct {
	N       uint64
	Delta   time.Duration
	Actions []input.Action
}

// Scene is the running state of a demo.
type Scene interface {
	Tick(ctx context.Context, t Tick) error
}

// Drawer is implemented by scenes that render each frame.
type Drawer interface {
	Draw(r *render.Context)
}

// Resetter is implemented by scenes that react to reset requests.
type Resetter interface {
	Reset(seed int64)
}

// Entry builds the scene from live subsystems.
type Entry func(env *Env) (Scene, error)

// Descriptor describes one demo. Registries store and hand out copies.
type Descriptor struct {
	ID       int
	Name     string
	Summary  string
	Requires []subsystem.Kind
	Mode     LoopMode
	Budget   Budget
	Settings map[string]string
	Entry    Entry
}

func (d Descriptor) clone() Descriptor {
	d.Requires = slices.Clone(d.Requires)
	d.Settings = maps.Clone(d.Settings)
	return d
}
