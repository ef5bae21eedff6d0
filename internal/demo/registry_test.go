package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"engine-demo/internal/subsystem"
)

type nopScene struct{}

func (nopScene) Tick(context.Context, Tick) error { return nil }

func nopEntry(*Env) (Scene, error) { return nopScene{}, nil }

func bounded(id int, name string) Descriptor {
	return Descriptor{ID: id, Name: name, Mode: Bounded, Budget: Budget{Ticks: 1}, Entry: nopEntry}
}

func TestLookupRegisteredAndMissing(t *testing.T) {
	reg, err := NewRegistry(bounded(3, "c"), bounded(1, "a"), bounded(2, "b"))
	require.NoError(t, err)

	for id, name := range map[int]string{1: "a", 2: "b", 3: "c"} {
		d, err := reg.Lookup(id)
		require.NoError(t, err)
		require.Equal(t, name, d.Name)
	}
	for _, id := range []int{0, 4, 42, -1} {
		_, err := reg.Lookup(id)
		require.ErrorIs(t, err, ErrNotFound)
	}

	var ids []int
	for _, d := range reg.List() {
		ids = append(ids, d.ID)
	}
	require.Equal(t, []int{1, 2, 3}, ids)
}

func TestRegistryIsImmutable(t *testing.T) {
	d := bounded(1, "a")
	d.Requires = []subsystem.Kind{subsystem.KindClock}
	d.Settings = map[string]string{"k": "v"}
	reg, err := NewRegistry(d)
	require.NoError(t, err)

	d.Requires[0] = subsystem.KindAudio
	d.Settings["k"] = "changed"

	got, err := reg.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, []subsystem.Kind{subsystem.KindClock}, got.Requires)
	require.Equal(t, "v", got.Settings["k"])

	got.Requires[0] = subsystem.KindWorld
	again, _ := reg.Lookup(1)
	require.Equal(t, subsystem.KindClock, again.Requires[0])
}

func TestNewRegistryValidation(t *testing.T) {
	cases := map[string][]Descriptor{
		"duplicate id":            {bounded(1, "a"), bounded(1, "b")},
		"missing name":            {bounded(1, "")},
		"missing entry":           {{ID: 1, Name: "a", Mode: Bounded, Budget: Budget{Ticks: 1}}},
		"interactive needs input": {{ID: 1, Name: "a", Mode: Interactive, Entry: nopEntry}},
		"bounded needs budget":    {{ID: 1, Name: "a", Mode: Bounded, Entry: nopEntry}},
		"no mode":                 {{ID: 1, Name: "a", Entry: nopEntry}},
		"unknown kind": {{ID: 1, Name: "a", Mode: Bounded, Budget: Budget{Ticks: 1}, Entry: nopEntry,
			Requires: []subsystem.Kind{99}}},
		"duplicate kind": {{ID: 1, Name: "a", Mode: Bounded, Budget: Budget{Ticks: 1}, Entry: nopEntry,
			Requires: []subsystem.Kind{subsystem.KindClock, subsystem.KindClock}}},
	}
	for name, descs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry(descs...)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestBudgetSpent(t *testing.T) {
	b := Budget{Ticks: 10, Duration: time.Second}
	require.False(t, b.Spent(9, 999*time.Millisecond))
	require.True(t, b.Spent(10, 0))
	require.True(t, b.Spent(0, time.Second))
	require.False(t, Budget{}.Spent(1<<40, time.Hour))
}
