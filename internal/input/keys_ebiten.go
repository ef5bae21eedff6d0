//go:build ebiten

package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func defaultSources() []Source { return []Source{keyboard{}} }

// keyboard maps window key presses onto actions. It must be polled from
// within the ebiten update loop.
type keyboard struct{}

var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyQ, ActionQuit},
	{ebiten.KeyEscape, ActionQuit},
	{ebiten.KeySpace, ActionTogglePause},
	{ebiten.KeyN, ActionStep},
	{ebiten.KeyR, ActionReset},
	{ebiten.KeyS, ActionReseed},
}

func (keyboard) Poll(emit func(Action)) {
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			emit(ka.action)
		}
	}
}
