// Package pathfind provides the pathfinding subsystem: A* search over a
// tile map loaded from the asset root.
package pathfind

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"engine-demo/internal/assets"
	"engine-demo/internal/core"
)

const (
	tileFree uint8 = 0
	tileWall uint8 = 1
)

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Map is a walkability grid with optional start and goal markers.
type Map struct {
	Grid     *core.ByteGrid
	Start    Point
	Goal     Point
	HasStart bool
	HasGoal  bool
}

// ErrEmptyMap is returned when a map has no rows.
var ErrEmptyMap = errors.New("map has no tiles")

// ParseMap reads the text map format: '#' is a wall, '.' or ' ' is free,
// 'S' and 'G' mark start and goal. Short rows are padded with walls.
func ParseMap(r io.Reader) (*Map, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	m := &Map{Grid: core.NewByteGrid(w, len(rows))}
	for y, row := range rows {
		for x := 0; x < w; x++ {
			ch := byte('#')
			if x < len(row) {
				ch = row[x]
			}
			switch ch {
			case '#':
				m.Grid.Set(x, y, tileWall)
			case '.', ' ':
			case 'S':
				m.Start, m.HasStart = Point{x, y}, true
			case 'G':
				m.Goal, m.HasGoal = Point{x, y}, true
			default:
				return nil, fmt.Errorf("map row %d col %d: unexpected tile %q", y, x, ch)
			}
		}
	}
	return m, nil
}

// LoadMap parses the map at rel below the asset root.
func LoadMap(l *assets.Loader, rel string) (*Map, error) {
	rc, err := l.OpenStream(rel)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	m, err := ParseMap(rc)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", rel, err)
	}
	return m, nil
}

// Walkable reports whether p is inside the map and not a wall.
func (m *Map) Walkable(p Point) bool {
	return m.Grid.In(p.X, p.Y) && m.Grid.At(p.X, p.Y) == tileFree
}

// Cells exposes the raw tile grid for drawing.
func (m *Map) Cells() []uint8 { return m.Grid.Cells() }
