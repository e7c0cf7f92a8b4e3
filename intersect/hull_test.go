package intersect

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion/mesh"
)

func unitCube(name string, offset mgl64.Vec3) *mesh.Mesh {
	return mesh.Box(name, offset, offset.Add(mgl64.Vec3{1, 1, 1}), false)
}

func TestSupport(t *testing.T) {
	cube := unitCube("a", mgl64.Vec3{})

	got := support(cube, mgl64.Vec3{1, 1, 1})
	if got != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("support along {1 1 1} = %v, want {1 1 1}", got)
	}
	got = support(cube, mgl64.Vec3{-1, -1, -1})
	if got != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("support along {-1 -1 -1} = %v, want {0 0 0}", got)
	}
}

func TestHullsSeparated(t *testing.T) {
	tests := []struct {
		name   string
		offset mgl64.Vec3
		want   bool
	}{
		{"far apart on x", mgl64.Vec3{3, 0, 0}, true},
		{"far apart diagonally", mgl64.Vec3{2, 2, 2}, true},
		{"apart on two axes", mgl64.Vec3{1.2, 1.2, 0}, true},
		{"overlapping", mgl64.Vec3{0.3, 0.2, 0.1}, false},
		{"touching faces", mgl64.Vec3{1, 0, 0}, false},
		{"identical", mgl64.Vec3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := unitCube("a", mgl64.Vec3{})
			b := unitCube("b", tt.offset)
			if got := hullsSeparated(a, b, 1e-6); got != tt.want {
				t.Errorf("hullsSeparated = %v, want %v", got, tt.want)
			}
		})
	}
}
