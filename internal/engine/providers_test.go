//go:build !ebiten

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"engine-demo/internal/assets"
	"engine-demo/internal/pathfind"
	"engine-demo/internal/render"
	"engine-demo/internal/subsystem"
	"engine-demo/internal/testutil/assettest"
	"engine-demo/internal/world"
)

func boot(t *testing.T) *subsystem.Bootstrapper {
	t.Helper()
	b, err := subsystem.NewBootstrapper(Providers(Options{})...)
	require.NoError(t, err)
	return b
}

func TestAcquireEveryKind(t *testing.T) {
	root := assettest.Full(t)
	set, err := boot(t).Acquire(context.Background(), subsystem.Kinds(), subsystem.Params{
		Root: root, TPS: 30, Seed: 5,
		Settings: map[string]string{"title": "all", "sim.w": "20"},
	})
	require.NoError(t, err)
	require.Equal(t, subsystem.Kinds(), set.Kinds())

	r, ok := subsystem.Lookup[*render.Context](set, subsystem.KindRenderer)
	require.True(t, ok)
	require.Equal(t, "all", r.Config().Title)
	require.Equal(t, 64, r.Config().Width)

	w, ok := subsystem.Lookup[*world.World](set, subsystem.KindWorld)
	require.True(t, ok)
	require.Equal(t, 20, w.Sim().Size().W, "settings override the manifest")
	require.Equal(t, 12, w.Sim().Size().H)

	f, ok := subsystem.Lookup[*pathfind.Finder](set, subsystem.KindPathfind)
	require.True(t, ok)
	require.True(t, f.Map().HasGoal)

	l, _ := subsystem.Lookup[*assets.Loader](set, subsystem.KindAssets)
	require.Zero(t, l.OpenStreams())
	require.NoError(t, subsystem.Release(set))
}

func TestRendererWithoutAssetsUsesDefaults(t *testing.T) {
	set, err := boot(t).Acquire(context.Background(), []subsystem.Kind{subsystem.KindRenderer}, subsystem.Params{})
	require.NoError(t, err)
	defer subsystem.Release(set)

	r, _ := subsystem.Lookup[*render.Context](set, subsystem.KindRenderer)
	require.Equal(t, render.DefaultConfig().Width, r.Config().Width)
}

func TestMissingRendererManifestNamesRenderer(t *testing.T) {
	root := assettest.Root(t, map[string]string{"maps/maze.txt": assettest.Maze})
	_, err := boot(t).Acquire(context.Background(),
		[]subsystem.Kind{subsystem.KindRenderer, subsystem.KindAssets}, subsystem.Params{Root: root})

	var be *subsystem.BootstrapError
	require.ErrorAs(t, err, &be)
	require.Equal(t, subsystem.KindRenderer, be.Kind)
	require.Equal(t, subsystem.ReasonMissingAsset, be.Reason)
	require.NoError(t, be.Rollback)
}

func TestMissingRootFailsAssets(t *testing.T) {
	_, err := boot(t).Acquire(context.Background(), []subsystem.Kind{subsystem.KindAssets},
		subsystem.Params{Root: assets.NewRoot(t.TempDir() + "/absent")})

	var be *subsystem.BootstrapError
	require.ErrorAs(t, err, &be)
	require.Equal(t, subsystem.KindAssets, be.Kind)
	require.Equal(t, subsystem.ReasonMissingAsset, be.Reason)
}

func TestPathfindNeedsAssets(t *testing.T) {
	_, err := boot(t).Acquire(context.Background(), []subsystem.Kind{subsystem.KindPathfind}, subsystem.Params{})
	require.ErrorIs(t, err, ErrNeedsAssets)
}

func TestUnknownSimIsConfigFailure(t *testing.T) {
	_, err := boot(t).Acquire(context.Background(), []subsystem.Kind{subsystem.KindWorld},
		subsystem.Params{Settings: map[string]string{"sim": "nope"}})

	var be *subsystem.BootstrapError
	require.ErrorAs(t, err, &be)
	require.Equal(t, subsystem.KindWorld, be.Kind)
	require.Equal(t, subsystem.ReasonConfig, be.Reason)
}
