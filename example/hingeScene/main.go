package main

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion"
	"github.com/spinetoolbox/motion/intersect"
	"github.com/spinetoolbox/motion/mesh"
	"github.com/spinetoolbox/motion/sweep"
)

// SetupScene places two unit cubes side by side, the right one hinged on its bottom
// left edge so that a positive angle tips it onto the fixed one
func SetupScene() (*motion.Dynamics, sweep.Hinge) {
	dynamics := motion.NewDynamics(4, intersect.Options{})

	lower := mesh.Box("lower", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, true)
	upper := mesh.Box("upper", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 1, 1}, false)
	if err := dynamics.AddBones(lower, upper); err != nil {
		panic(err)
	}

	hinge := sweep.Hinge{
		Axis:   mgl64.Vec3{0, -1, 0},
		Origin: mgl64.Vec3{1, 0, 0},
	}
	return dynamics, hinge
}

func main() {
	fmt.Println("Range of motion: cube tipping about a hinge")
	fmt.Println("===========================================")

	dynamics, hinge := SetupScene()

	dynamics.Events.Subscribe(motion.COLLISION_ENTER, func(event motion.Event) {
		e := event.(motion.CollisionEnterEvent)
		fmt.Printf("  contact: %s / %s, %d curves\n", e.BoneA, e.BoneB, len(e.Result.Curves))
	})

	steps, err := sweep.Sample(hinge.Axis, hinge.Origin, 0.5, 20)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	result, err := dynamics.Sweep(ctx, steps)
	if err != nil {
		panic(err)
	}
	if !result.Contact() {
		fmt.Println("No contact")
		return
	}

	// touching at 0 degrees is not a collision, so LastFree is set
	lo, hi, err := dynamics.Refine(ctx, hinge, result.LastFree.Value, result.FirstContact.Value, 10)
	if err != nil {
		panic(err)
	}
	fmt.Printf("First contact between %.4f and %.4f degrees\n", lo, hi)
	fmt.Println(result.Report.Message())

	dynamics.Reset()
	report, err := dynamics.UpdateCollisions()
	if err != nil {
		panic(err)
	}
	fmt.Printf("After reset: %s\n", report.Message())
}
