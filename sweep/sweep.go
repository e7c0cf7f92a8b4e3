// Package sweep produces the ordered candidate poses of a range-of-motion trajectory.
//
// A hinge sweep rotates the movable meshes about a fixed axis from 0 to a maximum angle
// at a constant step, simulating flexion or extension of a joint. A translation sweep
// does the same along a direction. Both are deterministic for identical inputs.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion/mesh"
)

// ErrInvalidParameter is returned for unusable sweep parameters
var ErrInvalidParameter = errors.New("invalid sweep parameter")

const (
	// MaxSteps bounds the number of poses a single sweep may produce.
	MaxSteps = 1 << 20

	// axisEpsilon is the squared length below which an axis is treated as zero
	axisEpsilon = 1e-24

	// stepSlack absorbs floating point error when max is an exact multiple of step
	stepSlack = 1e-9
)

// Step is one candidate pose of a sweep. Value is the angle in degrees for hinge sweeps
// and the distance for translation sweeps.
type Step struct {
	Index int
	Value float64
	Pose  mesh.Pose
}

// Hinge describes the joint axis a rotation sweep turns about
type Hinge struct {
	Axis   mgl64.Vec3
	Origin mgl64.Vec3
}

// Pose returns the hinge rotation for an angle in degrees
func (h Hinge) Pose(degrees float64) mesh.Pose {
	return mesh.HingeRotation(h.Axis, h.Origin, mgl64.DegToRad(degrees))
}

func (h Hinge) validate() error {
	if !finiteVec(h.Axis) || !finiteVec(h.Origin) {
		return fmt.Errorf("%w: hinge axis and origin must be finite", ErrInvalidParameter)
	}
	if h.Axis.LenSqr() <= axisEpsilon {
		return fmt.Errorf("%w: hinge axis has zero length", ErrInvalidParameter)
	}
	return nil
}

// Sample rotates about axis through origin from 0 to angleMax degrees every angleStep
// degrees. When angleMax is not a multiple of angleStep the last step is angleMax.
func Sample(axis, origin mgl64.Vec3, angleStep, angleMax float64) ([]Step, error) {
	hinge := Hinge{Axis: axis, Origin: origin}
	if err := hinge.validate(); err != nil {
		return nil, err
	}

	values, err := ramp(angleStep, angleMax)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(values))
	for i, angle := range values {
		steps[i] = Step{Index: i, Value: angle, Pose: hinge.Pose(angle)}
	}
	return steps, nil
}

// SampleTranslation moves along direction from 0 to distanceMax every distanceStep.
func SampleTranslation(direction mgl64.Vec3, distanceStep, distanceMax float64) ([]Step, error) {
	if !finiteVec(direction) || direction.LenSqr() <= axisEpsilon {
		return nil, fmt.Errorf("%w: translation direction has zero length", ErrInvalidParameter)
	}

	values, err := ramp(distanceStep, distanceMax)
	if err != nil {
		return nil, err
	}

	unit := direction.Normalize()
	steps := make([]Step, len(values))
	for i, d := range values {
		steps[i] = Step{Index: i, Value: d, Pose: mesh.Translate(unit.Mul(d))}
	}
	return steps, nil
}

// ramp returns 0, step, 2*step, ... up to and including max
func ramp(step, max float64) ([]float64, error) {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return nil, fmt.Errorf("%w: step must be > 0, got %v", ErrInvalidParameter, step)
	}
	if math.IsNaN(max) || math.IsInf(max, 0) || max < 0 {
		return nil, fmt.Errorf("%w: max must be >= 0, got %v", ErrInvalidParameter, max)
	}

	n := int(math.Floor(max/step + stepSlack))
	if n+1 > MaxSteps {
		return nil, fmt.Errorf("%w: %v/%v yields more than %d steps", ErrInvalidParameter, max, step, MaxSteps)
	}

	values := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		values = append(values, float64(i)*step)
	}
	last := values[len(values)-1]
	if max-last > step*stepSlack {
		values = append(values, max)
	} else {
		values[len(values)-1] = max
	}
	return values, nil
}

func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
