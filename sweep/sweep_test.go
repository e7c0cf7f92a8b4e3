package sweep

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func values(steps []Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.Value
	}
	return out
}

func TestSample(t *testing.T) {
	axis := mgl64.Vec3{0, 0, 1}
	origin := mgl64.Vec3{1, 0, 0}

	tests := []struct {
		name      string
		step, max float64
		want      []float64
	}{
		{"exact multiple", 10, 30, []float64{0, 10, 20, 30}},
		{"clamped last step", 10, 25, []float64{0, 10, 20, 25}},
		{"zero range", 5, 0, []float64{0}},
		{"step larger than max", 45, 30, []float64{0, 30}},
		{"fractional step", 0.1, 0.3, []float64{0, 0.1, 0.2, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := Sample(axis, origin, tt.step, tt.max)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := values(steps)
			if len(got) != len(tt.want) {
				t.Fatalf("Sample(%v, %v) = %v, want %v", tt.step, tt.max, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("step %d = %v, want %v", i, got[i], tt.want[i])
				}
				if steps[i].Index != i {
					t.Errorf("step %d has index %d", i, steps[i].Index)
				}
			}
		})
	}
}

func TestSample_Ascending(t *testing.T) {
	steps, err := Sample(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, 0.7, 33)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Value <= steps[i-1].Value {
			t.Fatalf("step %d (%v) is not after step %d (%v)", i, steps[i].Value, i-1, steps[i-1].Value)
		}
	}
	if last := steps[len(steps)-1].Value; last != 33 {
		t.Errorf("last step = %v, want 33", last)
	}
}

func TestSample_Deterministic(t *testing.T) {
	a, err := Sample(mgl64.Vec3{0, 1, 1}, mgl64.Vec3{2, 3, 4}, 3, 27)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sample(mgl64.Vec3{0, 1, 1}, mgl64.Vec3{2, 3, 4}, 3, 27)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs should produce identical samples")
	}
}

func TestSample_Poses(t *testing.T) {
	origin := mgl64.Vec3{1, 0, 0}
	steps, err := Sample(mgl64.Vec3{0, 0, 1}, origin, 90, 90)
	if err != nil {
		t.Fatal(err)
	}

	if got := steps[0].Pose.Apply(mgl64.Vec3{2, 0, 0}); !got.ApproxEqualThreshold(mgl64.Vec3{2, 0, 0}, 1e-9) {
		t.Errorf("0 degree pose moved the point to %v", got)
	}
	if got := steps[1].Pose.Apply(mgl64.Vec3{2, 0, 0}); !got.ApproxEqualThreshold(mgl64.Vec3{1, 1, 0}, 1e-9) {
		t.Errorf("90 degree pose moved the point to %v, want {1 1 0}", got)
	}
}

func TestSample_InvalidParameters(t *testing.T) {
	axis := mgl64.Vec3{0, 0, 1}

	tests := []struct {
		name      string
		axis      mgl64.Vec3
		step, max float64
	}{
		{"zero step", axis, 0, 30},
		{"negative step", axis, -10, 30},
		{"negative max", axis, 10, -1},
		{"zero axis", mgl64.Vec3{}, 10, 30},
		{"NaN step", axis, math.NaN(), 30},
		{"infinite max", axis, 10, math.Inf(1)},
		{"NaN axis", mgl64.Vec3{math.NaN(), 0, 0}, 10, 30},
		{"too many steps", axis, 1e-9, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.axis, mgl64.Vec3{}, tt.step, tt.max)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestSampleTranslation(t *testing.T) {
	steps, err := SampleTranslation(mgl64.Vec3{0, 2, 0}, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}

	got := steps[2].Pose.Apply(mgl64.Vec3{1, 1, 1})
	if !got.ApproxEqualThreshold(mgl64.Vec3{1, 2, 1}, 1e-12) {
		t.Errorf("last pose moved the point to %v, want {1 2 1}", got)
	}

	if _, err := SampleTranslation(mgl64.Vec3{}, 0.5, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero direction: expected ErrInvalidParameter, got %v", err)
	}
}

func TestHingePose(t *testing.T) {
	h := Hinge{Axis: mgl64.Vec3{0, 0, 1}, Origin: mgl64.Vec3{}}
	got := h.Pose(180).Apply(mgl64.Vec3{1, 0, 0})
	if !got.ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-9) {
		t.Errorf("180 degrees moved {1 0 0} to %v", got)
	}
}
