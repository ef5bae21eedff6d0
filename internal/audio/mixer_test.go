//go:build !ebiten

package audio

import (
	"encoding/binary"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"engine-demo/internal/assets"
	"engine-demo/internal/testutil/assettest"
)

func TestLoadConfig(t *testing.T) {
	l, err := assets.Open(assettest.Root(t, map[string]string{ManifestPath: assettest.AudioManifest}))
	require.NoError(t, err)
	defer l.Release()

	cfg, err := LoadConfig(l)
	require.NoError(t, err)
	require.Equal(t, 8000, cfg.SampleRate)
	require.Equal(t, 50*time.Millisecond, cfg.Duration)
	require.InDelta(t, 0.25, cfg.Gain, 1e-9)
}

func TestLoadConfigMissing(t *testing.T) {
	l, err := assets.Open(assettest.Root(t, nil))
	require.NoError(t, err)
	defer l.Release()

	_, err = LoadConfig(l)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadMixesAndExpiresVoices(t *testing.T) {
	cfg := Config{SampleRate: 1000, Channels: 2, Gain: 0.5}
	m, err := New(cfg)
	require.NoError(t, err)
	defer m.Release()

	m.Play(250, 0.5, 10*time.Millisecond) // 10 frames, quarter-wave per frame
	require.Equal(t, 1, m.Active())

	buf := make([]byte, 4*20)
	n, err := m.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.EqualValues(t, 20, m.Frames())
	require.Zero(t, m.Active())

	second := int16(binary.LittleEndian.Uint16(buf[4:]))
	require.InDelta(t, 0.5*32767, float64(second), 2)
	require.Equal(t, buf[4:6], buf[6:8], "both channels carry the same sample")
	require.Zero(t, binary.LittleEndian.Uint16(buf[4*15:]), "silence after the voice ends")
}

func TestPumpConsumesDuration(t *testing.T) {
	m, err := New(Config{SampleRate: 8000, Channels: 1})
	require.NoError(t, err)

	require.NoError(t, m.Pump(100*time.Millisecond))
	require.EqualValues(t, 800, m.Frames())

	require.NoError(t, m.Release())
	_, err = m.Read(make([]byte, 4))
	require.ErrorIs(t, err, ErrReleased)
}

func TestValidate(t *testing.T) {
	require.Error(t, Config{SampleRate: 0, Channels: 2}.Validate())
	require.Error(t, Config{SampleRate: 8000, Channels: 3}.Validate())
	require.Error(t, Config{SampleRate: 8000, Channels: 2, Gain: 2}.Validate())
}
