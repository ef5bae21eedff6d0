package pathfind

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"engine-demo/internal/assets"
	"engine-demo/internal/testutil/assettest"
)

func TestParseMapMarkers(t *testing.T) {
	m, err := ParseMap(strings.NewReader(assettest.Maze))
	require.NoError(t, err)
	require.Equal(t, 7, m.Grid.W)
	require.Equal(t, 6, m.Grid.H)
	require.True(t, m.HasStart)
	require.True(t, m.HasGoal)
	require.Equal(t, Point{1, 1}, m.Start)
	require.Equal(t, Point{5, 3}, m.Goal)
	require.False(t, m.Walkable(Point{0, 0}))
	require.True(t, m.Walkable(m.Start))
}

func TestParseMapErrors(t *testing.T) {
	_, err := ParseMap(strings.NewReader("\n\n"))
	require.ErrorIs(t, err, ErrEmptyMap)

	_, err = ParseMap(strings.NewReader("#S?#\n"))
	require.ErrorContains(t, err, "unexpected tile")
}

func TestPathThroughMaze(t *testing.T) {
	m, err := ParseMap(strings.NewReader(assettest.Maze))
	require.NoError(t, err)
	f := New(m)

	path, err := f.Path(m.Start, m.Goal)
	require.NoError(t, err)
	want := []Point{{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}, {3, 4}, {4, 4}, {5, 4}, {5, 3}}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, f.Searches())
	require.Positive(t, f.Expanded())
}

func TestPathTrivialAndBlocked(t *testing.T) {
	m, err := ParseMap(strings.NewReader(assettest.Maze))
	require.NoError(t, err)
	f := New(m)

	path, err := f.Path(m.Start, m.Start)
	require.NoError(t, err)
	require.Equal(t, []Point{m.Start}, path)

	_, err = f.Path(Point{0, 0}, m.Goal)
	require.ErrorIs(t, err, ErrBlocked)
}

func TestPathUnreachable(t *testing.T) {
	m, err := ParseMap(strings.NewReader("#####\n#S#G#\n#####\n"))
	require.NoError(t, err)
	_, err = New(m).Path(m.Start, m.Goal)
	require.ErrorIs(t, err, ErrNoPath)
}

func TestLoadMapAndRelease(t *testing.T) {
	root := assettest.Root(t, map[string]string{"maps/maze.txt": assettest.Maze})
	l, err := assets.Open(root)
	require.NoError(t, err)
	defer l.Release()

	m, err := LoadMap(l, "maps/maze.txt")
	require.NoError(t, err)
	require.Zero(t, l.OpenStreams())

	f := New(m)
	require.NoError(t, f.Release())
	_, err = f.Path(m.Start, m.Goal)
	require.ErrorIs(t, err, ErrReleased)
}
