package intersect

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion/mesh"
)

// Polyline is a chain of intersection points. Closed polylines repeat their first point
// at the end.
type Polyline struct {
	Points []mgl64.Vec3
	Closed bool
}

// Length sums the length of every edge of the polyline
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Sub(p.Points[i-1]).Len()
	}
	return total
}

// welder merges points closer than eps into shared nodes
type welder struct {
	eps   float64
	grid  map[cellKey][]int
	nodes []mgl64.Vec3
}

func newWelder(eps float64) *welder {
	return &welder{eps: eps, grid: make(map[cellKey][]int)}
}

func (w *welder) key(p mgl64.Vec3) cellKey {
	sg := spatialGrid{cellSize: w.eps}
	return sg.worldToCell(p)
}

// node returns the index of the node within eps of p, creating one if needed
func (w *welder) node(p mgl64.Vec3) int {
	k := w.key(p)
	epsSqr := w.eps * w.eps
	for x := k.X - 1; x <= k.X+1; x++ {
		for y := k.Y - 1; y <= k.Y+1; y++ {
			for z := k.Z - 1; z <= k.Z+1; z++ {
				for _, idx := range w.grid[cellKey{x, y, z}] {
					if w.nodes[idx].Sub(p).LenSqr() <= epsSqr {
						return idx
					}
				}
			}
		}
	}

	idx := len(w.nodes)
	w.nodes = append(w.nodes, p)
	w.grid[k] = append(w.grid[k], idx)
	return idx
}

type edge struct {
	a, b int
}

// Chain links segments sharing endpoints (within eps) into polylines. Open chains are
// walked from their loose ends first, remaining edges form closed loops.
func Chain(segments []Segment, eps float64) []Polyline {
	if len(segments) == 0 {
		return nil
	}

	w := newWelder(eps)
	edges := make([]edge, 0, len(segments))
	seen := make(map[edge]bool, len(segments))
	for _, s := range segments {
		a, b := w.node(s.A), w.node(s.B)
		if a == b {
			continue
		}
		key := edge{min(a, b), max(a, b)}
		if seen[key] {
			// the same piece reported by triangles sharing an edge
			continue
		}
		seen[key] = true
		edges = append(edges, edge{a, b})
	}

	adjacency := make([][]int, len(w.nodes))
	for i, e := range edges {
		adjacency[e.a] = append(adjacency[e.a], i)
		adjacency[e.b] = append(adjacency[e.b], i)
	}

	used := make([]bool, len(edges))
	walk := func(start int) Polyline {
		indices := []int{start}
		current := start
		for {
			next := -1
			for _, ei := range adjacency[current] {
				if used[ei] {
					continue
				}
				used[ei] = true
				e := edges[ei]
				if e.a == current {
					next = e.b
				} else {
					next = e.a
				}
				break
			}
			if next < 0 {
				break
			}
			indices = append(indices, next)
			current = next
		}

		line := Polyline{Points: make([]mgl64.Vec3, len(indices))}
		for i, idx := range indices {
			line.Points[i] = w.nodes[idx]
		}
		line.Closed = len(indices) > 2 && indices[0] == indices[len(indices)-1]
		return line
	}

	var lines []Polyline
	for node, incident := range adjacency {
		if len(incident)%2 == 1 && hasUnused(incident, used) {
			lines = append(lines, walk(node))
		}
	}
	for node, incident := range adjacency {
		for hasUnused(incident, used) {
			lines = append(lines, walk(node))
		}
	}
	return lines
}

func hasUnused(incident []int, used []bool) bool {
	for _, ei := range incident {
		if !used[ei] {
			return true
		}
	}
	return false
}

// curveBounds returns the box around every curve point
func curveBounds(lines []Polyline) mesh.AABB {
	box := mesh.EmptyAABB()
	for _, l := range lines {
		for _, p := range l.Points {
			box = box.Extend(p)
		}
	}
	return box
}
