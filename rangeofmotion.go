package motion

import (
	"context"
	"fmt"

	"github.com/spinetoolbox/motion/sweep"
)

// SweepResult is the outcome of a range-of-motion sweep
type SweepResult struct {
	// LastFree is the last step without collision, nil when the first step collides
	LastFree *sweep.Step
	// FirstContact is the first colliding step, nil when the whole sweep is free
	FirstContact *sweep.Step
	// Report is the collision report of FirstContact, or of the last step
	Report CollisionReport
	// Evaluated is the number of steps checked
	Evaluated int
}

// Contact reports whether the sweep reached a colliding pose
func (r SweepResult) Contact() bool {
	return r.FirstContact != nil
}

// Sweep applies each step to the movable meshes in order and stops at the first step
// with a collision. ctx is checked between steps. The movable meshes are left at the
// last evaluated pose; call Reset to restore them.
func (d *Dynamics) Sweep(ctx context.Context, steps []sweep.Step) (SweepResult, error) {
	var result SweepResult
	if len(steps) == 0 {
		return result, fmt.Errorf("%w: empty sweep", sweep.ErrInvalidParameter)
	}

	for i := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		step := steps[i]
		if err := d.ApplyPose(step.Pose); err != nil {
			return result, err
		}
		report, err := d.UpdateCollisions()
		if err != nil {
			return result, fmt.Errorf("sweep step %d (%v): %w", step.Index, step.Value, err)
		}

		result.Evaluated++
		result.Report = report
		if report.TotalBoneCollisions > 0 {
			result.FirstContact = &step
			return result, nil
		}
		result.LastFree = &step
	}
	return result, nil
}

// Refine bisects the hinge angle (degrees) between a free angle lo and a colliding angle
// hi, returning the narrowed bounds. Each iteration costs one collision check. The movable
// meshes are left at the last bisected angle; apply the pose to report explicitly.
func (d *Dynamics) Refine(ctx context.Context, hinge sweep.Hinge, lo, hi float64, iterations int) (float64, float64, error) {
	for range iterations {
		if err := ctx.Err(); err != nil {
			return lo, hi, err
		}

		mid := (lo + hi) / 2
		if err := d.ApplyPose(hinge.Pose(mid)); err != nil {
			return lo, hi, err
		}
		report, err := d.UpdateCollisions()
		if err != nil {
			return lo, hi, fmt.Errorf("refine at %v: %w", mid, err)
		}
		if report.TotalBoneCollisions > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, hi, nil
}
