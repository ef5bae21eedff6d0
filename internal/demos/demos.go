// Package demos holds the built-in demo catalogue.
package demos

import (
	"time"

	"engine-demo/internal/demo"
	"engine-demo/internal/subsystem"
)

// Descriptors returns fresh copies of the built-in demos.
func Descriptors() []demo.Descriptor {
	return []demo.Descriptor{
		{
			ID:       0,
			Name:     "window",
			Summary:  "open a rendering context and animate the clear colour",
			Requires: []subsystem.Kind{subsystem.KindRenderer, subsystem.KindInput},
			Mode:     demo.Interactive,
			Entry:    newWindow,
		},
		{
			ID:       1,
			Name:     "textures",
			Summary:  "load every texture from the asset root and bounce them around",
			Requires: []subsystem.Kind{subsystem.KindAssets, subsystem.KindRenderer, subsystem.KindInput},
			Mode:     demo.Interactive,
			Entry:    newTextures,
		},
		{
			ID:       2,
			Name:     "life",
			Summary:  "run a cellular automaton on the simulation clock",
			Requires: []subsystem.Kind{subsystem.KindAssets, subsystem.KindRenderer, subsystem.KindInput, subsystem.KindClock, subsystem.KindWorld},
			Mode:     demo.Interactive,
			Settings: map[string]string{"title": "life"},
			Entry:    newLife,
		},
		{
			ID:       3,
			Name:     "pathfinding",
			Summary:  "answer shortest-path queries over a tile map and draw the latest path",
			Requires: []subsystem.Kind{subsystem.KindAssets, subsystem.KindRenderer, subsystem.KindPathfind},
			Mode:     demo.Bounded,
			Budget:   demo.Budget{Ticks: 64},
			Settings: map[string]string{"map": "maze"},
			Entry:    newPathfinding,
		},
		{
			ID:       4,
			Name:     "tone",
			Summary:  "play the manifest tone through the mixer",
			Requires: []subsystem.Kind{subsystem.KindAssets, subsystem.KindClock, subsystem.KindAudio},
			Mode:     demo.Bounded,
			Budget:   demo.Budget{Duration: 30 * time.Second},
			Entry:    newTone,
		},
		{
			ID:       5,
			Name:     "automata-bench",
			Summary:  "step a simulation unpaced and report generations per second",
			Requires: []subsystem.Kind{subsystem.KindWorld},
			Mode:     demo.Bounded,
			Budget:   demo.Budget{Ticks: 600},
			Settings: map[string]string{"sim": "briansbrain", "sim.w": "96", "sim.h": "96"},
			Entry:    newBench,
		},
	}
}

// Builtin builds a registry of the built-in demos.
func Builtin() (*demo.Registry, error) {
	return demo.NewRegistry(Descriptors()...)
}
