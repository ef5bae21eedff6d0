package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

// Catalog maps simulation names to factories. It is built once by the caller
// and treated as read-only afterwards.
type Catalog map[string]Factory

// Lookup returns the factory registered under name.
func (c Catalog) Lookup(name string) (Factory, bool) {
	f, ok := c[name]
	return f, ok && f != nil
}
