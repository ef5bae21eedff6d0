package subsystem

import (
	"context"
	"fmt"
	"maps"
	"runtime/debug"

	"github.com/rs/zerolog"

	"engine-demo/internal/assets"
)

// Params is what every provider receives when acquiring its subsystem.
// Logger also receives the bootstrap and teardown events of the run.
type Params struct {
	Root     assets.Root
	TPS      int
	Seed     int64
	Settings map[string]string
	Logger   zerolog.Logger
}

// Setting returns the named demo setting or def when unset.
func (p Params) Setting(key, def string) string {
	if v, ok := p.Settings[key]; ok && v != "" {
		return v
	}
	return def
}

// AcquireFunc starts one subsystem. Handles acquired earlier in the same
// attempt are reachable through deps.
type AcquireFunc func(ctx context.Context, deps *Set, p Params) (Handle, error)

// Provider binds a kind to its acquire routine.
type Provider struct {
	Kind    Kind
	Acquire AcquireFunc
}

// Bootstrapper acquires the subsystems a demo requires.
type Bootstrapper struct {
	providers map[Kind]Provider
}

// NewBootstrapper builds a bootstrapper from providers. Later providers for
// the same kind replace earlier ones.
func NewBootstrapper(providers ...Provider) (*Bootstrapper, error) {
	b := &Bootstrapper{providers: make(map[Kind]Provider, len(providers))}
	for _, p := range providers {
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("register provider: unknown kind %s", p.Kind)
		}
		if p.Acquire == nil {
			return nil, fmt.Errorf("register provider %s: nil acquire func", p.Kind)
		}
		b.providers[p.Kind] = p
	}
	return b, nil
}

// With returns a copy of b with providers overriding existing ones.
func (b *Bootstrapper) With(providers ...Provider) (*Bootstrapper, error) {
	merged := maps.Clone(b.providers)
	list := make([]Provider, 0, len(merged)+len(providers))
	for _, k := range Kinds() {
		if p, ok := merged[k]; ok {
			list = append(list, p)
		}
	}
	return NewBootstrapper(append(list, providers...)...)
}

// Acquire starts every kind in dependency order regardless of the order
// given. When a step fails, the handles acquired so far are released in
// reverse order before the *BootstrapError is returned.
func (b *Bootstrapper) Acquire(ctx context.Context, kinds []Kind, p Params) (*Set, error) {
	ordered := Ordered(kinds)
	for _, k := range ordered {
		if !k.Valid() {
			return nil, &BootstrapError{Kind: k, Reason: ReasonConfig, Err: fmt.Errorf("unknown subsystem kind %d", uint8(k))}
		}
		if _, ok := b.providers[k]; !ok {
			return nil, &BootstrapError{Kind: k, Reason: ReasonConfig, Err: ErrNoProvider}
		}
	}

	set := &Set{log: p.Logger}
	for _, k := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, b.fail(set, k, err)
		}
		h, err := b.acquireOne(ctx, set, b.providers[k], p)
		if err != nil {
			return nil, b.fail(set, k, err)
		}
		set.add(k, h)
		set.log.Debug().Stringer("kind", k).Msg("subsystem acquired")
	}
	return set, nil
}

// Release tears the set down and logs each step through the logger the set
// was acquired with.
func (b *Bootstrapper) Release(set *Set) error {
	err := Release(set)
	if td, ok := err.(*TeardownError); ok {
		for _, f := range td.Failures {
			set.log.Warn().Err(f.Err).Stringer("kind", f.Kind).Msg("subsystem release failed")
		}
	}
	return err
}

func (b *Bootstrapper) acquireOne(ctx context.Context, deps *Set, prov Provider, p Params) (h Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	h, err = prov.Acquire(ctx, deps, p)
	if err == nil && h == nil {
		err = ErrNilHandle
	}
	return h, err
}

func (b *Bootstrapper) fail(set *Set, k Kind, err error) error {
	be := &BootstrapError{Kind: k, Reason: classify(err), Err: err}
	be.Rollback = b.Release(set)
	set.log.Error().Err(err).Stringer("kind", k).Stringer("reason", be.Reason).
		Int("rolled_back", set.Len()).Msg("subsystem bootstrap failed")
	return be
}
