package mesh

import "github.com/go-gl/mathgl/mgl64"

// Pose represents a rigid transform: rotation followed by translation
type Pose struct {
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
}

// Identity returns the pose of a mesh in its loaded state
func Identity() Pose {
	return Pose{
		Rotation:    mgl64.QuatIdent(),
		Translation: mgl64.Vec3{0, 0, 0},
	}
}

// Translate returns a pure translation
func Translate(offset mgl64.Vec3) Pose {
	return Pose{Rotation: mgl64.QuatIdent(), Translation: offset}
}

// HingeRotation rotates by angle radians about the line through origin along axis.
// The axis must be non-zero, callers validate it.
func HingeRotation(axis, origin mgl64.Vec3, angle float64) Pose {
	rotation := mgl64.QuatRotate(angle, axis.Normalize())
	return Pose{
		Rotation:    rotation,
		Translation: origin.Sub(rotation.Rotate(origin)),
	}
}

// Apply transforms a point
func (p Pose) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(v).Add(p.Translation)
}

// Then returns the pose applying p first and next second
func (p Pose) Then(next Pose) Pose {
	return Pose{
		Rotation:    next.Rotation.Mul(p.Rotation).Normalize(),
		Translation: next.Rotation.Rotate(p.Translation).Add(next.Translation),
	}
}

// Mat4 returns the homogeneous matrix, for hosts that store transforms as matrices
func (p Pose) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(p.Translation.X(), p.Translation.Y(), p.Translation.Z()).Mul4(p.Rotation.Mat4())
}
