//go:build ebiten

package audio

import (
	"fmt"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"engine-demo/internal/subsystem"
)

// device guards the process-wide ebiten audio context, which can only be
// created once and only at one sample rate.
var device = subsystem.NewSingleton("audio device")

type speaker struct {
	player *eaudio.Player
}

func openOutput(m *Mixer) (output, error) {
	if m.cfg.Channels != 2 {
		return nil, fmt.Errorf("ebiten output needs 2 channels, got %d", m.cfg.Channels)
	}
	if err := device.Claim(); err != nil {
		return nil, err
	}
	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(m.cfg.SampleRate)
	} else if ctx.SampleRate() != m.cfg.SampleRate {
		device.Free()
		return nil, fmt.Errorf("audio context runs at %d Hz, want %d: %w", ctx.SampleRate(), m.cfg.SampleRate, subsystem.ErrExhausted)
	}
	p, err := ctx.NewPlayer(m)
	if err != nil {
		device.Free()
		return nil, fmt.Errorf("open audio player: %w", err)
	}
	p.Play()
	return &speaker{player: p}, nil
}

// pump is a no-op: the player pulls from the mixer on its own.
func (s *speaker) pump(*Mixer, time.Duration) error { return nil }

func (s *speaker) close() error {
	defer device.Free()
	return s.player.Close()
}
