package pathfind

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoPath is returned when the goal is unreachable.
	ErrNoPath = errors.New("no path")
	// ErrBlocked is returned when an endpoint is a wall or off the map.
	ErrBlocked = errors.New("endpoint not walkable")
	// ErrReleased is returned by searches on a released finder.
	ErrReleased = errors.New("pathfinder released")
)

var neighbours = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Finder runs searches over one map.
type Finder struct {
	m        *Map
	searches int
	expanded int
}

// New returns a finder over m.
func New(m *Map) *Finder { return &Finder{m: m} }

// Map returns the searched map.
func (f *Finder) Map() *Map { return f.m }

// Searches reports how many searches ran.
func (f *Finder) Searches() int { return f.searches }

// Expanded reports the total number of expanded nodes.
func (f *Finder) Expanded() int { return f.expanded }

// Path returns the shortest 4-connected path from 'from' to 'to', both
// included.
func (f *Finder) Path(from, to Point) ([]Point, error) {
	if f.m == nil {
		return nil, ErrReleased
	}
	f.searches++
	if !f.m.Walkable(from) {
		return nil, fmt.Errorf("start %s: %w", from, ErrBlocked)
	}
	if !f.m.Walkable(to) {
		return nil, fmt.Errorf("goal %s: %w", to, ErrBlocked)
	}

	g := f.m.Grid
	idx := func(p Point) int { return g.Index(p.X, p.Y) }
	cost := make([]int, g.W*g.H)
	for i := range cost {
		cost[i] = -1
	}
	came := make([]int, g.W*g.H)

	open := &openSet{}
	cost[idx(from)] = 0
	heap.Push(open, node{p: from, f: manhattan(from, to)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(node)
		if cur.p == to {
			return f.walkBack(came, from, to), nil
		}
		f.expanded++
		c := cost[idx(cur.p)]
		if cur.f-manhattan(cur.p, to) > c {
			continue // stale entry
		}
		for _, d := range neighbours {
			n := Point{cur.p.X + d.X, cur.p.Y + d.Y}
			if !f.m.Walkable(n) {
				continue
			}
			ni := idx(n)
			if cost[ni] >= 0 && cost[ni] <= c+1 {
				continue
			}
			cost[ni] = c + 1
			came[ni] = idx(cur.p)
			heap.Push(open, node{p: n, f: c + 1 + manhattan(n, to)})
		}
	}
	return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrNoPath)
}

func (f *Finder) walkBack(came []int, from, to Point) []Point {
	g := f.m.Grid
	path := []Point{to}
	for p := to; p != from; {
		i := came[g.Index(p.X, p.Y)]
		p = Point{i % g.W, i / g.W}
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}

// Release drops the map.
func (f *Finder) Release() error {
	f.m = nil
	return nil
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type node struct {
	p Point
	f int
}

// openSet is a min-heap on f.
type openSet []node

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x any)        { *o = append(*o, x.(node)) }
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}
