package subsystem

import (
	"fmt"
	"sync/atomic"
)

// Singleton guards a process-wide engine resource, such as the native
// window, that only one run may hold at a time.
type Singleton struct {
	name string
	held atomic.Bool
}

// NewSingleton names a guarded resource.
func NewSingleton(name string) *Singleton { return &Singleton{name: name} }

// Claim takes the resource or fails with ErrExhausted.
func (s *Singleton) Claim() error {
	if !s.held.CompareAndSwap(false, true) {
		return fmt.Errorf("%s already in use: %w", s.name, ErrExhausted)
	}
	return nil
}

// Free returns the resource. Freeing an unheld singleton is a no-op.
func (s *Singleton) Free() { s.held.Store(false) }
