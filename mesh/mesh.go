// Package mesh holds the immutable triangulated surfaces the collision engine works on,
// along with the rigid poses applied to them.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidMesh is returned when a mesh cannot be used as geometry
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is a named triangulated surface. Fixed meshes are excluded from transform sampling.
// A Mesh is never mutated after New, transforming it yields a new value. Meshes built
// as literals must pass Validate before use.
type Mesh struct {
	Name      string
	Vertices  []mgl64.Vec3
	Triangles [][3]int
	Fixed     bool

	aabb    AABB
	bounded bool
}

// New validates and copies the geometry into a new mesh.
func New(name string, vertices []mgl64.Vec3, triangles [][3]int, fixed bool) (*Mesh, error) {
	m := &Mesh{
		Name:      name,
		Vertices:  append([]mgl64.Vec3(nil), vertices...),
		Triangles: append([][3]int(nil), triangles...),
		Fixed:     fixed,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.computeAABB()
	return m, nil
}

// Validate checks that the mesh has triangles, that every index references a vertex and
// that every vertex is finite.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: mesh is nil", ErrInvalidMesh)
	}
	if len(m.Triangles) == 0 {
		return fmt.Errorf("%w: %q has no triangles", ErrInvalidMesh, m.Name)
	}
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: %q triangle %d references vertex %d of %d",
					ErrInvalidMesh, m.Name, i, idx, len(m.Vertices))
			}
		}
	}
	for i, v := range m.Vertices {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("%w: %q vertex %d is not finite", ErrInvalidMesh, m.Name, i)
			}
		}
	}
	return nil
}

func (m *Mesh) computeAABB() {
	m.aabb = bounds(m.Vertices)
	m.bounded = true
}

func bounds(vertices []mgl64.Vec3) AABB {
	box := EmptyAABB()
	for _, v := range vertices {
		box = box.Extend(v)
	}
	return box
}

// AABB returns the bounds of the vertices. Meshes not built by New or Transform are
// measured on every call.
func (m *Mesh) AABB() AABB {
	if !m.bounded {
		return bounds(m.Vertices)
	}
	return m.aabb
}

// Triangle returns the three corners of triangle i
func (m *Mesh) Triangle(i int) [3]mgl64.Vec3 {
	t := m.Triangles[i]
	return [3]mgl64.Vec3{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
}

// TriangleAABB returns the bounding box of triangle i
func (m *Mesh) TriangleAABB(i int) AABB {
	t := m.Triangle(i)
	return EmptyAABB().Extend(t[0]).Extend(t[1]).Extend(t[2])
}

// IsDegenerate reports whether triangle i has an area below eps²
func (m *Mesh) IsDegenerate(i int, eps float64) bool {
	t := m.Triangle(i)
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Len()*0.5 <= eps*eps
}

// MeanEdgeLength averages the length of every triangle edge
func (m *Mesh) MeanEdgeLength() float64 {
	if len(m.Triangles) == 0 {
		return 0
	}
	var total float64
	for i := range m.Triangles {
		t := m.Triangle(i)
		total += t[1].Sub(t[0]).Len() + t[2].Sub(t[1]).Len() + t[0].Sub(t[2]).Len()
	}
	return total / float64(3*len(m.Triangles))
}

// Transform returns a copy of the mesh with every vertex moved by pose.
// Triangles are shared with the receiver since neither mesh mutates them.
func (m *Mesh) Transform(pose Pose) *Mesh {
	vertices := make([]mgl64.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = pose.Apply(v)
	}

	out := &Mesh{
		Name:      m.Name,
		Vertices:  vertices,
		Triangles: m.Triangles,
		Fixed:     m.Fixed,
	}
	out.computeAABB()
	return out
}

// WithFixed returns a copy of the mesh carrying a different fixed flag
func (m *Mesh) WithFixed(fixed bool) *Mesh {
	out := *m
	out.Fixed = fixed
	return &out
}
