// Package engine binds every subsystem kind to the routine that starts it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"engine-demo/internal/assets"
	"engine-demo/internal/audio"
	"engine-demo/internal/clock"
	"engine-demo/internal/core"
	"engine-demo/internal/input"
	"engine-demo/internal/pathfind"
	"engine-demo/internal/render"
	"engine-demo/internal/subsystem"
	"engine-demo/internal/world"
)

// ErrNeedsAssets is returned by providers that cannot run without an asset
// loader acquired before them.
var ErrNeedsAssets = errors.New("requires the assets subsystem")

// Options tunes the default providers.
type Options struct {
	// InputSources build the sources each new input queue polls in
	// addition to the build's native sources.
	InputSources []input.SourceFactory
	// Catalog lists the simulations the world subsystem may host.
	Catalog core.Catalog
}

// Providers returns one provider per kind, in bootstrap order.
func Providers(opts Options) []subsystem.Provider {
	if opts.Catalog == nil {
		opts.Catalog = world.DefaultCatalog()
	}
	return []subsystem.Provider{
		{Kind: subsystem.KindAssets, Acquire: acquireAssets},
		{Kind: subsystem.KindRenderer, Acquire: acquireRenderer},
		{Kind: subsystem.KindInput, Acquire: inputAcquirer(opts.InputSources)},
		{Kind: subsystem.KindClock, Acquire: acquireClock},
		{Kind: subsystem.KindWorld, Acquire: worldAcquirer(opts.Catalog)},
		{Kind: subsystem.KindPathfind, Acquire: acquirePathfind},
		{Kind: subsystem.KindAudio, Acquire: acquireAudio},
	}
}

func loaderOf(deps *subsystem.Set) *assets.Loader {
	l, _ := subsystem.Lookup[*assets.Loader](deps, subsystem.KindAssets)
	return l
}

func acquireAssets(_ context.Context, _ *subsystem.Set, p subsystem.Params) (subsystem.Handle, error) {
	return assets.Open(p.Root)
}

func acquireRenderer(_ context.Context, deps *subsystem.Set, p subsystem.Params) (subsystem.Handle, error) {
	cfg := render.DefaultConfig()
	if l := loaderOf(deps); l != nil {
		var err error
		if cfg, err = render.LoadConfig(l); err != nil {
			return nil, err
		}
	}
	cfg.Title = p.Setting("title", cfg.Title)
	return render.New(cfg)
}

func inputAcquirer(factories []input.SourceFactory) subsystem.AcquireFunc {
	return func(context.Context, *subsystem.Set, subsystem.Params) (subsystem.Handle, error) {
		sources := make([]input.Source, 0, len(factories))
		for _, f := range factories {
			sources = append(sources, f())
		}
		return input.New(sources...), nil
	}
}

func acquireClock(_ context.Context, _ *subsystem.Set, p subsystem.Params) (subsystem.Handle, error) {
	return clock.New(p.TPS), nil
}

func worldAcquirer(catalog core.Catalog) subsystem.AcquireFunc {
	return func(_ context.Context, deps *subsystem.Set, p subsystem.Params) (subsystem.Handle, error) {
		base := world.Config{Sim: p.Setting("sim", ""), Params: simParams(p.Settings)}
		cfg, err := world.LoadConfig(loaderOf(deps), base)
		if err != nil {
			return nil, err
		}
		return world.New(catalog, cfg, p.Seed)
	}
}

// simParams extracts "sim.<key>" settings as simulation parameters.
func simParams(settings map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range settings {
		if key, ok := strings.CutPrefix(k, "sim."); ok {
			out[key] = v
		}
	}
	return out
}

func acquirePathfind(_ context.Context, deps *subsystem.Set, p subsystem.Params) (subsystem.Handle, error) {
	l := loaderOf(deps)
	if l == nil {
		return nil, ErrNeedsAssets
	}
	rel := fmt.Sprintf("maps/%s.txt", p.Setting("map", "maze"))
	m, err := pathfind.LoadMap(l, rel)
	if err != nil {
		return nil, err
	}
	return pathfind.New(m), nil
}

func acquireAudio(_ context.Context, deps *subsystem.Set, _ subsystem.Params) (subsystem.Handle, error) {
	cfg := audio.DefaultConfig()
	if l := loaderOf(deps); l != nil {
		var err error
		if cfg, err = audio.LoadConfig(l); err != nil {
			return nil, err
		}
	}
	return audio.New(cfg)
}
