package intersect

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion/mesh"
)

// hullMaxIterations bounds the GJK loop. Running out of iterations never culls a pair.
const hullMaxIterations = 64

// simplex holds 1-4 points of the Minkowski difference A - B
type simplex struct {
	points [4]mgl64.Vec3
	count  int
}

// support returns the vertex of m furthest along direction
func support(m *mesh.Mesh, direction mgl64.Vec3) mgl64.Vec3 {
	best := m.Vertices[0]
	bestDot := best.Dot(direction)
	for _, v := range m.Vertices[1:] {
		if d := v.Dot(direction); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

func minkowskiSupport(a, b *mesh.Mesh, direction mgl64.Vec3) mgl64.Vec3 {
	return support(a, direction).Sub(support(b, direction.Mul(-1)))
}

// hullsSeparated runs GJK on the convex hulls of both vertex sets and reports true only
// when it finds a direction along which the hulls are apart by more than margin.
// Surfaces whose hulls are separated cannot intersect. A false result proves nothing.
func hullsSeparated(a, b *mesh.Mesh, margin float64) bool {
	var s simplex

	direction := b.AABB().Center().Sub(a.AABB().Center())
	if direction.LenSqr() < 1e-16 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	s.points[0] = minkowskiSupport(a, b, direction)
	s.count = 1
	direction = s.points[0].Mul(-1)

	for i := 0; i < hullMaxIterations; i++ {
		length := direction.Len()
		if length < 1e-12 {
			// origin on the simplex: hulls touch
			return false
		}

		newPoint := minkowskiSupport(a, b, direction)

		// every point of A - B lies behind the plane: the origin is out of reach
		if newPoint.Dot(direction) < -margin*length {
			return true
		}

		s.points[s.count] = newPoint
		s.count++

		if containsOrigin(&s, &direction) {
			return false
		}
	}

	return false
}

// containsOrigin reduces the simplex to its feature closest to the origin and updates the
// search direction. It returns true when the tetrahedron encloses the origin.
func containsOrigin(s *simplex, direction *mgl64.Vec3) bool {
	switch s.count {
	case 2:
		return line(s, direction)
	case 3:
		return triangle(s, direction)
	case 4:
		return tetrahedron(s, direction)
	}
	return false
}

func line(s *simplex, direction *mgl64.Vec3) bool {
	a := s.points[1]
	b := s.points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-16 {
		s.points[0] = a
		s.count = 1
		*direction = ao
		return false
	}

	if ab.Dot(ao) <= 0 {
		s.points[0] = a
		s.count = 1
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.LenSqr() < 1e-16 {
		// origin on the segment
		return true
	}

	*direction = abPerp
	return false
}

func triangle(s *simplex, direction *mgl64.Vec3) bool {
	a := s.points[2]
	b := s.points[1]
	c := s.points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	if abc.LenSqr() < 1e-16 {
		s.points[0] = b
		s.points[1] = a
		s.count = 2
		return line(s, direction)
	}

	if ab.Cross(abc).Dot(ao) > 0 {
		s.points[0] = b
		s.points[1] = a
		s.count = 2
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	if abc.Cross(ac).Dot(ao) > 0 {
		s.points[0] = c
		s.points[1] = a
		s.count = 2
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		s.points[0] = a
		s.points[1] = c
		s.points[2] = b
		*direction = abc.Mul(-1)
	}
	return false
}

func tetrahedron(s *simplex, direction *mgl64.Vec3) bool {
	a := s.points[3]
	b := s.points[2]
	c := s.points[1]
	d := s.points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	// face normals point away from the opposite vertex
	abc := ab.Cross(ac)
	if abc.Dot(ad) > 0 {
		abc = abc.Mul(-1)
	}
	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}
	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}

	if abc.LenSqr() < 1e-16 || acd.LenSqr() < 1e-16 || adb.LenSqr() < 1e-16 {
		s.points[0] = c
		s.points[1] = b
		s.points[2] = a
		s.count = 3
		return triangle(s, direction)
	}

	switch {
	case abc.Dot(ao) > 0:
		s.points[0] = c
		s.points[1] = b
		s.points[2] = a
	case acd.Dot(ao) > 0:
		s.points[0] = d
		s.points[1] = c
		s.points[2] = a
	case adb.Dot(ao) > 0:
		s.points[0] = b
		s.points[1] = d
		s.points[2] = a
	default:
		return true
	}
	s.count = 3
	return triangle(s, direction)
}
