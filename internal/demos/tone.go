package demos

import (
	"context"
	"errors"

	"engine-demo/internal/audio"
	"engine-demo/internal/clock"
	"engine-demo/internal/demo"
)

type toneScene struct {
	m *audio.Mixer
	c *clock.Clock
}

func newTone(env *demo.Env) (demo.Scene, error) {
	m, c := env.Mixer(), env.Clock()
	if m == nil || c == nil {
		return nil, errors.New("tone needs the mixer and the clock")
	}
	cfg := m.Config()
	m.Play(cfg.Frequency, cfg.Gain, cfg.Duration)
	env.Log.Info().Float64("hz", cfg.Frequency).Dur("duration", cfg.Duration).Msg("tone started")
	return &toneScene{m: m, c: c}, nil
}

// Tick feeds one clock step of audio and finishes when the tone ends.
func (s *toneScene) Tick(context.Context, demo.Tick) error {
	if err := s.m.Pump(s.c.Step()); err != nil {
		return err
	}
	if s.m.Active() == 0 {
		return demo.ErrDone
	}
	return nil
}
