// Package intersect computes the intersection curves between two triangulated surfaces.
//
// The pipeline mirrors a rigid-body collision pipeline:
//   - Mesh bounds: disjoint boxes return immediately.
//   - Hull separation: GJK on the vertex sets culls pairs whose convex hulls are apart.
//   - Broad phase: triangles of the second mesh are hashed into a uniform grid over the
//     region where both meshes overlap; each triangle of the first mesh queries it.
//   - Narrow phase: every candidate triangle pair is cut along the common line of their
//     planes (Möller's interval overlap test).
//   - Chaining: the resulting segments are welded into polylines.
//
// Touching surfaces are not intersecting: corners whose distance to the other triangle's
// plane is within epsilon count as lying on it. A pair intersects when one triangle has
// corners strictly on both sides of the other's plane, and the other either does too or
// has an edge on the first plane with its third corner behind it. The second case finds
// the curve where faces of both meshes are coplanar, as with boxes offset along one axis.
// Meshes must be wound counter-clockwise seen from outside.
//
// References:
//   - Möller: "A Fast Triangle-Triangle Intersection Test" (1997)
package intersect

import (
	"fmt"
	"math"

	"github.com/spinetoolbox/motion/mesh"
)

const (
	// DefaultEpsilonScale times the smaller mean edge length of both meshes gives the
	// tolerance used when Options.Epsilon is not set.
	DefaultEpsilonScale = 1e-3

	// minEpsilon keeps the tolerance usable for meshes collapsed to a point
	minEpsilon = 1e-12

	// maxCellsPerAxis bounds the grid resolution over the overlap region
	maxCellsPerAxis = 128
)

// Options tunes the intersection engine
type Options struct {
	// Epsilon is the distance under which two points are equal, and under which a corner
	// is considered on a plane. Zero selects the default.
	Epsilon float64
}

// Result is the intersection between two meshes. Zero curves means no collision.
type Result struct {
	Curves []Polyline
	// Segments is the number of triangle pairs that produced a piece of curve
	Segments int
	// PairCount is 1 when the meshes intersect, 0 otherwise
	PairCount int
}

// Empty reports whether the meshes do not intersect
func (r Result) Empty() bool {
	return len(r.Curves) == 0
}

// Bounds returns the box around all curves
func (r Result) Bounds() mesh.AABB {
	return curveBounds(r.Curves)
}

// Epsilon returns the tolerance Intersect uses for a and b under opts
func Epsilon(a, b *mesh.Mesh, opts Options) float64 {
	if opts.Epsilon > 0 {
		return opts.Epsilon
	}
	eps := DefaultEpsilonScale * math.Min(a.MeanEdgeLength(), b.MeanEdgeLength())
	if eps < minEpsilon || math.IsNaN(eps) {
		return minEpsilon
	}
	return eps
}

func validate(m *mesh.Mesh, label string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}

// Intersect computes the intersection curves between the surfaces of a and b.
// It does not modify either mesh and may be called concurrently.
func Intersect(a, b *mesh.Mesh, opts Options) (Result, error) {
	if err := validate(a, "first mesh"); err != nil {
		return Result{}, err
	}
	if err := validate(b, "second mesh"); err != nil {
		return Result{}, err
	}

	eps := Epsilon(a, b, opts)

	region, ok := a.AABB().Expand(eps).Intersection(b.AABB().Expand(eps))
	if !ok {
		return Result{}, nil
	}
	if hullsSeparated(a, b, eps) {
		return Result{}, nil
	}

	segments := Segments(a, b, region, eps)
	curves := Chain(segments, eps)

	result := Result{Curves: curves, Segments: len(segments)}
	if len(curves) > 0 {
		result.PairCount = 1
	}
	return result, nil
}

// Segments returns the intersection segments of all triangle pairs of a and b whose
// bounding boxes meet inside region
func Segments(a, b *mesh.Mesh, region mesh.AABB, eps float64) []Segment {
	candidates := make([]int, 0, len(b.Triangles))
	boxes := make([]mesh.AABB, 0, len(b.Triangles))
	var extent float64
	for i := range b.Triangles {
		if b.IsDegenerate(i, eps) {
			continue
		}
		box := b.TriangleAABB(i).Expand(eps)
		if !box.Overlaps(region) {
			continue
		}
		candidates = append(candidates, i)
		boxes = append(boxes, box)
		size := box.Size()
		extent += math.Max(size.X(), math.Max(size.Y(), size.Z()))
	}
	if len(candidates) == 0 {
		return nil
	}

	grid := newSpatialGrid(cellSize(region, extent/float64(len(candidates))), len(candidates)*2)
	for slot, box := range boxes {
		clipped, _ := box.Intersection(region)
		grid.insert(slot, clipped)
	}
	grid.sortCells()

	var segments []Segment
	seen := make([]int, len(candidates))
	for i := range seen {
		seen[i] = -1
	}

	for i := range a.Triangles {
		if a.IsDegenerate(i, eps) {
			continue
		}
		box := a.TriangleAABB(i).Expand(eps)
		clipped, ok := box.Intersection(region)
		if !ok {
			continue
		}
		ta := a.Triangle(i)

		grid.query(clipped, seen, i, func(slot int) {
			if !box.Overlaps(boxes[slot]) {
				return
			}
			if s, ok := TriangleIntersection(ta, b.Triangle(candidates[slot]), eps); ok {
				segments = append(segments, s)
			}
		})
	}
	return segments
}

// cellSize picks the grid resolution from the mean triangle extent, coarsened so the
// region never spans more than maxCellsPerAxis cells on an axis
func cellSize(region mesh.AABB, meanExtent float64) float64 {
	size := region.Size()
	largest := math.Max(size.X(), math.Max(size.Y(), size.Z()))
	cs := math.Max(meanExtent, largest/maxCellsPerAxis)
	if cs <= 0 || math.IsNaN(cs) {
		return 1
	}
	return cs
}
