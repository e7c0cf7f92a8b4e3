package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const poseTolerance = 1e-9

func TestIdentity(t *testing.T) {
	p := mgl64.Vec3{1, -2, 3}
	if got := Identity().Apply(p); !got.ApproxEqualThreshold(p, poseTolerance) {
		t.Errorf("Identity().Apply(%v) = %v", p, got)
	}
}

func TestHingeRotation(t *testing.T) {
	origin := mgl64.Vec3{1, 0, 0}
	pose := HingeRotation(mgl64.Vec3{0, 0, 1}, origin, math.Pi/2)

	t.Run("origin stays on the hinge", func(t *testing.T) {
		if got := pose.Apply(origin); !got.ApproxEqualThreshold(origin, poseTolerance) {
			t.Errorf("Apply(origin) = %v, want %v", got, origin)
		}
	})

	t.Run("quarter turn about the z axis", func(t *testing.T) {
		got := pose.Apply(mgl64.Vec3{2, 0, 0})
		want := mgl64.Vec3{1, 1, 0}
		if !got.ApproxEqualThreshold(want, poseTolerance) {
			t.Errorf("Apply = %v, want %v", got, want)
		}
	})

	t.Run("axis length is irrelevant", func(t *testing.T) {
		scaled := HingeRotation(mgl64.Vec3{0, 0, 7}, origin, math.Pi/2)
		got := scaled.Apply(mgl64.Vec3{2, 0, 0})
		if !got.ApproxEqualThreshold(mgl64.Vec3{1, 1, 0}, poseTolerance) {
			t.Errorf("Apply = %v", got)
		}
	})
}

func TestPoseThen(t *testing.T) {
	first := HingeRotation(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, 0.3)
	second := Translate(mgl64.Vec3{1, 2, 3})
	composed := first.Then(second)

	points := []mgl64.Vec3{{0, 0, 0}, {1, 2, 3}, {-4, 0.5, 2}}
	for _, p := range points {
		want := second.Apply(first.Apply(p))
		if got := composed.Apply(p); !got.ApproxEqualThreshold(want, poseTolerance) {
			t.Errorf("composed.Apply(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestPoseMat4(t *testing.T) {
	pose := HingeRotation(mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0, 2, 0}, 0.7)
	m := pose.Mat4()

	p := mgl64.Vec3{0.5, -1, 2}
	want := pose.Apply(p)
	got := m.Mul4x1(p.Vec4(1)).Vec3()
	if !got.ApproxEqualThreshold(want, poseTolerance) {
		t.Errorf("Mat4 * p = %v, want %v", got, want)
	}
}
