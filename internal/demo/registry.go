package demo

import (
	"errors"
	"fmt"
	"sort"

	"engine-demo/internal/subsystem"
)

var (
	// ErrNotFound is returned by Lookup for ids that were never registered.
	ErrNotFound = errors.New("demo not found")
	// ErrInvalid wraps every registry construction failure.
	ErrInvalid = errors.New("invalid demo descriptor")
)

// Registry is an immutable id to descriptor table.
type Registry struct {
	byID map[int]Descriptor
	ids  []int
}

// NewRegistry validates descs and builds the table.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[int]Descriptor, len(descs))}
	for _, d := range descs {
		if err := validate(d); err != nil {
			return nil, err
		}
		if prev, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: id %d used by %q and %q", ErrInvalid, d.ID, prev.Name, d.Name)
		}
		r.byID[d.ID] = d.clone()
		r.ids = append(r.ids, d.ID)
	}
	sort.Ints(r.ids)
	return r, nil
}

func validate(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("%w: id %d has no name", ErrInvalid, d.ID)
	}
	if d.Entry == nil {
		return fmt.Errorf("%w: %q has no entry routine", ErrInvalid, d.Name)
	}
	seen := make(map[subsystem.Kind]bool, len(d.Requires))
	for _, k := range d.Requires {
		if !k.Valid() {
			return fmt.Errorf("%w: %q requires unknown subsystem %s", ErrInvalid, d.Name, k)
		}
		if seen[k] {
			return fmt.Errorf("%w: %q lists %s twice", ErrInvalid, d.Name, k)
		}
		seen[k] = true
	}
	switch d.Mode {
	case Interactive:
		if !seen[subsystem.KindInput] {
			return fmt.Errorf("%w: interactive demo %q must require input", ErrInvalid, d.Name)
		}
	case Bounded:
		if d.Budget.IsZero() {
			return fmt.Errorf("%w: bounded demo %q has no budget", ErrInvalid, d.Name)
		}
	default:
		return fmt.Errorf("%w: %q has no loop mode", ErrInvalid, d.Name)
	}
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id int) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("demo %d: %w", id, ErrNotFound)
	}
	return d.clone(), nil
}

// List returns every descriptor ordered by id.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// Len reports the number of registered demos.
func (r *Registry) Len() int { return len(r.ids) }
