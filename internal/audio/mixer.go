// Package audio provides the audio subsystem: a software mixer producing
// signed 16-bit little-endian PCM for the output backend.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"engine-demo/internal/assets"
)

// ManifestPath is the audio manifest below the asset root.
const ManifestPath = "audio/audio.toml"

// ErrReleased is returned by reads on a released mixer.
var ErrReleased = errors.New("mixer released")

// Config describes the output stream and the demo tone.
type Config struct {
	SampleRate int
	Channels   int
	Frequency  float64
	Gain       float64
	Duration   time.Duration
}

// DefaultConfig returns a stereo 44.1kHz stream with a two second A4 tone.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Channels: 2, Frequency: 440, Gain: 0.2, Duration: 2 * time.Second}
}

type fileConfig struct {
	SampleRate int     `toml:"sample_rate"`
	Channels   int     `toml:"channels"`
	Frequency  float64 `toml:"frequency"`
	Gain       float64 `toml:"gain"`
	Duration   string  `toml:"duration"`
}

// LoadConfig reads the audio manifest.
func LoadConfig(l *assets.Loader) (Config, error) {
	cfg := DefaultConfig()
	var raw fileConfig
	meta, err := l.DecodeTOML(ManifestPath, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load audio config: %w", err)
	}
	if meta.IsDefined("sample_rate") {
		cfg.SampleRate = raw.SampleRate
	}
	if meta.IsDefined("channels") {
		cfg.Channels = raw.Channels
	}
	if meta.IsDefined("frequency") {
		cfg.Frequency = raw.Frequency
	}
	if meta.IsDefined("gain") {
		cfg.Gain = raw.Gain
	}
	if meta.IsDefined("duration") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Duration))
		if err != nil {
			return Config{}, fmt.Errorf("parse duration: %w", err)
		}
		cfg.Duration = d
	}
	return cfg, cfg.Validate()
}

// Validate rejects streams the mixer cannot produce.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", c.SampleRate)
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("invalid channel count %d", c.Channels)
	}
	if c.Gain < 0 || c.Gain > 1 {
		return fmt.Errorf("gain %.2f outside [0,1]", c.Gain)
	}
	return nil
}

type voice struct {
	step      float64
	phase     float64
	gain      float64
	remaining int
}

// Mixer sums sine voices into a PCM stream. Read is safe for use from the
// backend's playback goroutine while the demo calls Play.
type Mixer struct {
	cfg Config

	mu       sync.Mutex
	voices   []*voice
	frames   uint64
	released bool

	out     output
	scratch []byte
}

// output is the backend consuming mixed PCM.
type output interface {
	// pump lets push-less backends pull d worth of audio.
	pump(m *Mixer, d time.Duration) error
	close() error
}

// New opens the output backend selected at build time.
func New(cfg Config) (*Mixer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Mixer{cfg: cfg}
	out, err := openOutput(m)
	if err != nil {
		return nil, err
	}
	m.out = out
	return m, nil
}

// Config returns the stream configuration.
func (m *Mixer) Config() Config { return m.cfg }

// Play starts a sine voice.
func (m *Mixer) Play(freq, gain float64, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released || d <= 0 {
		return
	}
	m.voices = append(m.voices, &voice{
		step:      2 * math.Pi * freq / float64(m.cfg.SampleRate),
		gain:      gain,
		remaining: int(d.Seconds() * float64(m.cfg.SampleRate)),
	})
}

// Active reports how many voices are still sounding.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Frames reports how many sample frames were mixed.
func (m *Mixer) Frames() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Pump advances playback by d on backends that do not pull on their own.
func (m *Mixer) Pump(d time.Duration) error {
	return m.out.pump(m, d)
}

// Read fills p with whole frames of mixed audio.
func (m *Mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return 0, ErrReleased
	}
	frameSize := 2 * m.cfg.Channels
	n := len(p) / frameSize
	for i := 0; i < n; i++ {
		var sum float64
		for _, v := range m.voices {
			if v.remaining <= 0 {
				continue
			}
			sum += math.Sin(v.phase) * v.gain
			v.phase += v.step
			v.remaining--
		}
		s := int16(math.Max(-1, math.Min(1, sum)) * math.MaxInt16)
		for c := 0; c < m.cfg.Channels; c++ {
			binary.LittleEndian.PutUint16(p[i*frameSize+2*c:], uint16(s))
		}
	}
	m.frames += uint64(n)
	m.voices = sweep(m.voices)
	return n * frameSize, nil
}

func sweep(vs []*voice) []*voice {
	out := vs[:0]
	for _, v := range vs {
		if v.remaining > 0 {
			out = append(out, v)
		}
	}
	return out
}

// Release stops output and silences every voice.
func (m *Mixer) Release() error {
	err := m.out.close()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
	m.voices = nil
	return err
}
