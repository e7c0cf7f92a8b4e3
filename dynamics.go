// Package motion computes the mechanical range of motion between anatomical surface
// models by detecting where their surfaces intersect as movable models are posed
// relative to fixed ones.
package motion

import (
	"errors"
	"fmt"

	"github.com/spinetoolbox/motion/intersect"
	"github.com/spinetoolbox/motion/mesh"
)

const DEFAULT_WORKERS = 1

// ErrInvalidState is returned by operations that need at least one registered mesh
var ErrInvalidState = errors.New("invalid state")

// Dynamics owns the meshes of a range-of-motion session. It is not safe for concurrent
// use: AddBones, ApplyPose, Reset and UpdateCollisions must be serialized by the caller.
// UpdateCollisions parallelizes its pair tests internally.
type Dynamics struct {
	// Workers is the number of goroutines testing mesh pairs
	Workers int
	// Options are passed to every pair intersection
	Options intersect.Options

	Events Events

	bones    []*mesh.Mesh
	original []*mesh.Mesh
}

// NewDynamics returns an empty coordinator
func NewDynamics(workers int, opts intersect.Options) *Dynamics {
	return &Dynamics{
		Workers: workers,
		Options: opts,
		Events:  NewEvents(),
	}
}

// AddBones registers meshes. A mesh whose name is already registered replaces the
// previous one, both in the working set and in the original snapshot.
// Nothing is registered when any mesh is invalid.
func (d *Dynamics) AddBones(meshes ...*mesh.Mesh) error {
	for i, m := range meshes {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("bone %d: %w", i, err)
		}
	}

	for _, m := range meshes {
		k := d.indexOf(m.Name)
		if k == -1 {
			d.bones = append(d.bones, m)
			d.original = append(d.original, m)
			continue
		}
		d.bones[k] = m
		d.original[k] = m
	}
	return nil
}

// RemoveBone unregisters a mesh by name
func (d *Dynamics) RemoveBone(name string) bool {
	k := d.indexOf(name)
	if k == -1 {
		return false
	}
	d.bones = append(d.bones[:k], d.bones[k+1:]...)
	d.original = append(d.original[:k], d.original[k+1:]...)
	return true
}

func (d *Dynamics) indexOf(name string) int {
	for i, b := range d.original {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Bones returns the working set in registration order
func (d *Dynamics) Bones() []*mesh.Mesh {
	return append([]*mesh.Mesh(nil), d.bones...)
}

// Originals returns the untransformed snapshot in registration order
func (d *Dynamics) Originals() []*mesh.Mesh {
	return append([]*mesh.Mesh(nil), d.original...)
}

// Bone returns the working mesh registered under name
func (d *Dynamics) Bone(name string) (*mesh.Mesh, bool) {
	k := d.indexOf(name)
	if k == -1 {
		return nil, false
	}
	return d.bones[k], true
}

// ApplyPose places every movable mesh at pose relative to its original state.
// Fixed meshes keep their current geometry.
func (d *Dynamics) ApplyPose(pose mesh.Pose) error {
	if len(d.original) == 0 {
		return fmt.Errorf("%w: no bones registered", ErrInvalidState)
	}

	next := make([]*mesh.Mesh, len(d.bones))
	indices := make([]int, len(d.bones))
	for i := range indices {
		indices[i] = i
	}
	task(max(DEFAULT_WORKERS, d.Workers), indices, func(i int) {
		if d.original[i].Fixed {
			next[i] = d.bones[i]
			return
		}
		next[i] = d.original[i].Transform(pose)
	})
	d.bones = next
	return nil
}

// UpdateCollisions intersects every unordered pair of distinct meshes of the working set.
// On error the report is discarded and no event is emitted.
func (d *Dynamics) UpdateCollisions() (CollisionReport, error) {
	if len(d.bones) == 0 {
		return CollisionReport{}, fmt.Errorf("%w: no bones registered", ErrInvalidState)
	}

	pairs := allPairs(d.bones)
	results, err := IntersectPairs(pairs, d.Options, max(DEFAULT_WORKERS, d.Workers))
	if err != nil {
		return CollisionReport{}, fmt.Errorf("update collisions: %w", err)
	}

	report := CollisionReport{
		PerPair: make([]PairResult, len(pairs)),
		Tests:   len(pairs),
	}
	for i, p := range pairs {
		report.PerPair[i] = PairResult{BoneA: p.BoneA.Name, BoneB: p.BoneB.Name, Result: results[i]}
		report.TotalBoneCollisions += results[i].PairCount
	}

	d.Events.recordReport(report)
	d.Events.flush()
	return report, nil
}

// Reset discards the working set and rebuilds it from the original snapshot.
// It is a no-op when no mesh was ever added.
func (d *Dynamics) Reset() {
	if len(d.original) == 0 {
		return
	}
	d.bones = append(d.bones[:0:0], d.original...)
	d.Events.emitReset(len(d.bones))
	d.Events.flush()
}
