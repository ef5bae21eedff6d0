package demo

import (
	"github.com/rs/zerolog"

	"engine-demo/internal/assets"
	"engine-demo/internal/audio"
	"engine-demo/internal/clock"
	"engine-demo/internal/input"
	"engine-demo/internal/pathfind"
	"engine-demo/internal/render"
	"engine-demo/internal/subsystem"
	"engine-demo/internal/world"
)

// Env is what an entry routine sees: the borrowed asset root and the live
// subsystems of the current run. It must not be retained after the run.
type Env struct {
	Root     assets.Root
	Set      *subsystem.Set
	Seed     int64
	Settings map[string]string
	Log      zerolog.Logger
}

// Setting returns the named demo setting or def.
func (e *Env) Setting(key, def string) string {
	if v, ok := e.Settings[key]; ok && v != "" {
		return v
	}
	return def
}

// Assets returns the asset loader, or nil when not acquired.
func (e *Env) Assets() *assets.Loader {
	h, _ := subsystem.Lookup[*assets.Loader](e.Set, subsystem.KindAssets)
	return h
}

// Renderer returns the rendering context, or nil.
func (e *Env) Renderer() *render.Context {
	h, _ := subsystem.Lookup[*render.Context](e.Set, subsystem.KindRenderer)
	return h
}

// Input returns the input queue, or nil.
func (e *Env) Input() *input.Queue {
	h, _ := subsystem.Lookup[*input.Queue](e.Set, subsystem.KindInput)
	return h
}

// Clock returns the simulation clock, or nil.
func (e *Env) Clock() *clock.Clock {
	h, _ := subsystem.Lookup[*clock.Clock](e.Set, subsystem.KindClock)
	return h
}

// World returns the simulation, or nil.
func (e *Env) World() *world.World {
	h, _ := subsystem.Lookup[*world.World](e.Set, subsystem.KindWorld)
	return h
}

// Pathfinder returns the pathfinder, or nil.
func (e *Env) Pathfinder() *pathfind.Finder {
	h, _ := subsystem.Lookup[*pathfind.Finder](e.Set, subsystem.KindPathfind)
	return h
}

// Mixer returns the audio mixer, or nil.
func (e *Env) Mixer() *audio.Mixer {
	h, _ := subsystem.Lookup[*audio.Mixer](e.Set, subsystem.KindAudio)
	return h
}
