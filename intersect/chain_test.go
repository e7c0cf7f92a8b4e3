package intersect

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestChain_Empty(t *testing.T) {
	if lines := Chain(nil, 1e-6); lines != nil {
		t.Errorf("expected no polylines, got %v", lines)
	}
}

func TestChain_ClosedLoop(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}

	// mixed orientations and rounding noise below epsilon
	segments := []Segment{
		{A: a, B: b},
		{A: c, B: b.Add(mgl64.Vec3{1e-9, 0, 0})},
		{A: c.Add(mgl64.Vec3{0, -1e-9, 0}), B: a},
	}

	lines := Chain(segments, 1e-6)
	if len(lines) != 1 {
		t.Fatalf("expected 1 polyline, got %d", len(lines))
	}
	if !lines[0].Closed {
		t.Error("triangle loop should be closed")
	}
	if len(lines[0].Points) != 4 {
		t.Errorf("closed loop of 3 edges should have 4 points, got %d", len(lines[0].Points))
	}
	if got := lines[0].Length(); math.Abs(got-(2+math.Sqrt2)) > 1e-6 {
		t.Errorf("Length = %v, want %v", got, 2+math.Sqrt2)
	}
}

func TestChain_OpenPolylines(t *testing.T) {
	segments := []Segment{
		{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{2, 0, 0}},
		{A: mgl64.Vec3{0, 0, 0}, B: mgl64.Vec3{1, 0, 0}},
		{A: mgl64.Vec3{5, 5, 5}, B: mgl64.Vec3{6, 5, 5}},
	}

	lines := Chain(segments, 1e-6)
	if len(lines) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(lines))
	}

	var points int
	for _, l := range lines {
		if l.Closed {
			t.Error("open chains should not be closed")
		}
		points += len(l.Points)
	}
	if points != 5 {
		t.Errorf("expected 5 points in total, got %d", points)
	}
}

func TestChain_Duplicates(t *testing.T) {
	// the same piece reported twice, and a piece shorter than epsilon
	segments := []Segment{
		{A: mgl64.Vec3{0, 0, 0}, B: mgl64.Vec3{1, 0, 0}},
		{A: mgl64.Vec3{1, 0, 0}, B: mgl64.Vec3{0, 0, 0}},
		{A: mgl64.Vec3{3, 0, 0}, B: mgl64.Vec3{3, 0, 1e-9}},
	}

	lines := Chain(segments, 1e-6)
	if len(lines) != 1 {
		t.Fatalf("expected 1 polyline, got %d", len(lines))
	}
	if len(lines[0].Points) != 2 {
		t.Errorf("expected 2 points, got %d", len(lines[0].Points))
	}
}
