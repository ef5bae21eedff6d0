package subsystem

import "github.com/rs/zerolog"

// Handle is one live subsystem instance. Release is invoked exactly once by
// the teardown path.
type Handle interface {
	Release() error
}

type entry struct {
	kind     Kind
	handle   Handle
	released bool
}

// Set holds the handles acquired for one run, in acquisition order.
type Set struct {
	entries []entry
	log     zerolog.Logger
}

// NewSet returns an empty set.
func NewSet() *Set { return &Set{} }

func (s *Set) add(k Kind, h Handle) {
	s.entries = append(s.entries, entry{kind: k, handle: h})
}

// Len reports how many handles the set holds.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Kinds returns the kinds in acquisition order.
func (s *Set) Kinds() []Kind {
	if s == nil {
		return nil
	}
	out := make([]Kind, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.kind)
	}
	return out
}

// Has reports whether a live handle of kind k is present.
func (s *Set) Has(k Kind) bool {
	_, ok := s.Handle(k)
	return ok
}

// Handle returns the live handle for k.
func (s *Set) Handle(k Kind) (Handle, bool) {
	if s == nil {
		return nil, false
	}
	for _, e := range s.entries {
		if e.kind == k && !e.released {
			return e.handle, true
		}
	}
	return nil, false
}

// Lookup returns the handle for k asserted to T. It reports false if the
// handle is missing, released or of another type.
func Lookup[T Handle](s *Set, k Kind) (T, bool) {
	var zero T
	h, ok := s.Handle(k)
	if !ok {
		return zero, false
	}
	t, ok := h.(T)
	return t, ok
}
