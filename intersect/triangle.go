package intersect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon is the squared sine of the angle below which two planes are treated
// as parallel
const parallelEpsilon = 1e-20

// Segment is a piece of intersection curve shared by two triangles
type Segment struct {
	A, B mgl64.Vec3
}

// plane is a unit normal and offset such that Normal·p + Offset is the signed distance of p
type plane struct {
	Normal mgl64.Vec3
	Offset float64
}

// trianglePlane returns false for zero-area triangles
func trianglePlane(t [3]mgl64.Vec3) (plane, bool) {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	length := n.Len()
	if length == 0 || math.IsNaN(length) {
		return plane{}, false
	}
	n = n.Mul(1 / length)
	return plane{Normal: n, Offset: -n.Dot(t[0])}, true
}

// signedDistances measures the corners of t against p, snapping |d| <= eps to zero
func signedDistances(p plane, t [3]mgl64.Vec3, eps float64) [3]float64 {
	var d [3]float64
	for i, v := range t {
		d[i] = p.Normal.Dot(v) + p.Offset
		if math.Abs(d[i]) <= eps {
			d[i] = 0
		}
	}
	return d
}

// crosses reports whether the distances have corners strictly on both sides.
// Corners on the plane alone mean touching, which is not an intersection.
func crosses(d [3]float64) bool {
	var pos, neg bool
	for _, v := range d {
		if v > 0 {
			pos = true
		} else if v < 0 {
			neg = true
		}
	}
	return pos && neg
}

// edgeBehind reports whether exactly one edge lies on the plane while the remaining
// corner is behind it, inside the surface the plane belongs to
func edgeBehind(d [3]float64) bool {
	zeros := 0
	var rest float64
	for _, v := range d {
		if v == 0 {
			zeros++
		} else {
			rest = v
		}
	}
	return zeros == 2 && rest < 0
}

// planeCut returns the two points where the crossing triangle t meets the plane its
// distances d were measured against
func planeCut(t [3]mgl64.Vec3, d [3]float64) (mgl64.Vec3, mgl64.Vec3) {
	var pts [2]mgl64.Vec3
	n := 0
	for i := 0; i < 3 && n < 2; i++ {
		j := (i + 1) % 3
		if d[i] == 0 {
			pts[n] = t[i]
			n++
			continue
		}
		if d[i]*d[j] < 0 {
			s := d[i] / (d[i] - d[j])
			pts[n] = t[i].Add(t[j].Sub(t[i]).Mul(s))
			n++
		}
	}
	return pts[0], pts[1]
}

// TriangleIntersection computes the segment along which two triangles interpenetrate.
//
// At least one triangle must have corners strictly on both sides of the other's plane.
// The other one must do the same, or lie edge-on against that plane and extend behind
// it, which is how surfaces cross where faces of both meshes are coplanar. Triangles are
// expected to be wound counter-clockwise seen from outside. Degenerate, coplanar and
// merely touching triangles return false, as do pairs whose shared segment is not longer
// than eps.
func TriangleIntersection(t1, t2 [3]mgl64.Vec3, eps float64) (Segment, bool) {
	p1, ok := trianglePlane(t1)
	if !ok {
		return Segment{}, false
	}
	p2, ok := trianglePlane(t2)
	if !ok {
		return Segment{}, false
	}

	d1 := signedDistances(p2, t1, eps)
	d2 := signedDistances(p1, t2, eps)
	c1, c2 := crosses(d1), crosses(d2)
	if !(c1 && (c2 || edgeBehind(d2))) && !(c2 && edgeBehind(d1)) {
		return Segment{}, false
	}

	direction := p1.Normal.Cross(p2.Normal)
	if direction.LenSqr() < parallelEpsilon {
		return Segment{}, false
	}
	direction = direction.Normalize()

	// both cuts lie on the common line of the planes, intersect their intervals
	a1, b1 := planeCut(t1, d1)
	a2, b2 := planeCut(t2, d2)

	s1, e1 := direction.Dot(a1), direction.Dot(b1)
	if s1 > e1 {
		s1, e1 = e1, s1
		a1, b1 = b1, a1
	}
	s2, e2 := direction.Dot(a2), direction.Dot(b2)
	if s2 > e2 {
		s2, e2 = e2, s2
		a2, b2 = b2, a2
	}

	start, startPoint := s1, a1
	if s2 > s1 {
		start, startPoint = s2, a2
	}
	end, endPoint := e1, b1
	if e2 < e1 {
		end, endPoint = e2, b2
	}

	if end-start <= eps {
		return Segment{}, false
	}
	return Segment{A: startPoint, B: endPoint}, true
}
