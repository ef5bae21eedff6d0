// Package subsystem acquires engine subsystems in dependency order and
// releases them in reverse.
package subsystem

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies one engine subsystem. The numeric order of the constants is
// the bootstrap order.
type Kind uint8

const (
	KindAssets Kind = iota + 1
	KindRenderer
	KindInput
	KindClock
	KindWorld
	KindPathfind
	KindAudio
)

var kindNames = map[Kind]string{
	KindAssets:   "assets",
	KindRenderer: "renderer",
	KindInput:    "input",
	KindClock:    "clock",
	KindWorld:    "world",
	KindPathfind: "pathfind",
	KindAudio:    "audio",
}

// Kinds lists every known kind in bootstrap order.
func Kinds() []Kind {
	return []Kind{KindAssets, KindRenderer, KindInput, KindClock, KindWorld, KindPathfind, KindAudio}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind resolves a kind by its name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown subsystem %q", name)
}

// Ordered returns kinds sorted into bootstrap order with duplicates removed.
// The input slice is not modified.
func Ordered(kinds []Kind) []Kind {
	out := slices.Clone(kinds)
	slices.Sort(out)
	return slices.Compact(out)
}
