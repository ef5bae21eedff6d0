// Package world provides the simulation subsystem, hosting one cellular
// automaton from a catalog.
package world

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"engine-demo/internal/assets"
	"engine-demo/internal/core"
	"engine-demo/internal/sims/briansbrain"
	"engine-demo/internal/sims/elementary"
	"engine-demo/internal/sims/life"
)

// ManifestPath is the optional world manifest below the asset root.
const ManifestPath = "world/world.toml"

// ErrUnknownSim is returned for names missing from the catalog.
var ErrUnknownSim = errors.New("unknown simulation")

// DefaultCatalog returns a fresh catalog of the built-in simulations.
func DefaultCatalog() core.Catalog {
	return core.Catalog{
		"life":        life.Factory,
		"elementary":  elementary.Factory,
		"briansbrain": briansbrain.Factory,
	}
}

// Config selects the simulation and its parameters.
type Config struct {
	Sim    string
	Params map[string]string
}

type fileConfig struct {
	Sim    string            `toml:"sim"`
	Params map[string]string `toml:"params"`
}

// LoadConfig overlays the world manifest, when present, onto base.
func LoadConfig(l *assets.Loader, base Config) (Config, error) {
	cfg := Config{Sim: base.Sim, Params: maps.Clone(base.Params)}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if l == nil || !l.Exists(ManifestPath) {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := l.DecodeTOML(ManifestPath, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load world config: %w", err)
	}
	if meta.IsDefined("sim") && cfg.Sim == "" {
		cfg.Sim = strings.TrimSpace(raw.Sim)
	}
	for k, v := range raw.Params {
		if _, set := cfg.Params[k]; !set {
			cfg.Params[k] = v
		}
	}
	return cfg, nil
}

// World owns one live simulation.
type World struct {
	sim        core.Sim
	seed       int64
	generation uint64
}

// New builds the configured simulation and resets it with seed.
func New(catalog core.Catalog, cfg Config, seed int64) (*World, error) {
	name := cfg.Sim
	if name == "" {
		name = "life"
	}
	factory, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownSim, name, strings.Join(names(catalog), ", "))
	}
	w := &World{sim: factory(cfg.Params)}
	w.Reset(seed)
	return w, nil
}

func names(c core.Catalog) []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sim exposes the hosted simulation.
func (w *World) Sim() core.Sim { return w.sim }

// Generation reports how many steps ran since the last reset.
func (w *World) Generation() uint64 { return w.generation }

// Seed reports the seed of the last reset.
func (w *World) Seed() int64 { return w.seed }

// Step advances the simulation one generation.
func (w *World) Step() {
	w.sim.Step()
	w.generation++
}

// Reset reseeds the simulation.
func (w *World) Reset(seed int64) {
	w.seed = seed
	w.sim.Reset(seed)
	w.generation = 0
}

// Live counts non-zero cells.
func (w *World) Live() int {
	n := 0
	for _, c := range w.sim.Cells() {
		if c != 0 {
			n++
		}
	}
	return n
}

// Release drops the simulation state.
func (w *World) Release() error {
	w.sim = nil
	return nil
}
