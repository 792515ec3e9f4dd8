package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Pose is a position plus an R3 axis angle orientation, the six component form UR controllers use for
// tool poses: p[x, y, z, rx, ry, rz].
type Pose struct {
	Point       r3.Vector `json:"point"`
	Orientation r3.Vector `json:"orientation"`
}

// NewPose returns a pose at the given point with the given R3 axis angle.
func NewPose(point, orientation r3.Vector) Pose {
	return Pose{Point: point, Orientation: orientation}
}

// NewZeroPose returns the pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{}
}

// PoseFromFloats builds a pose from exactly six values ordered x, y, z, rx, ry, rz.
func PoseFromFloats(vals []float64) (Pose, error) {
	if len(vals) != 6 {
		return Pose{}, errors.Errorf("a pose needs 6 values, got %d", len(vals))
	}
	return Pose{
		Point:       r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]},
		Orientation: r3.Vector{X: vals[3], Y: vals[4], Z: vals[5]},
	}, nil
}

// Floats returns the pose as x, y, z, rx, ry, rz.
func (p Pose) Floats() []float64 {
	return []float64{p.Point.X, p.Point.Y, p.Point.Z, p.Orientation.X, p.Orientation.Y, p.Orientation.Z}
}

// IsFinite returns false if any component is NaN or infinite.
func (p Pose) IsFinite() bool {
	for _, v := range p.Floats() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Transform returns the homogeneous transform of the pose using the default converter.
func (p Pose) Transform() Transform {
	return PoseToTransform(p)
}

func (p Pose) String() string {
	return fmt.Sprintf("p[%.6f, %.6f, %.6f, %.6f, %.6f, %.6f]",
		p.Point.X, p.Point.Y, p.Point.Z, p.Orientation.X, p.Orientation.Y, p.Orientation.Z)
}

// PoseToTransform converts a pose to a homogeneous transform using the default converter.
func PoseToTransform(p Pose) Transform {
	return defaultConverter.PoseToTransform(p)
}

// TransformToPose converts a homogeneous transform to a pose using the default converter.
func TransformToPose(t Transform) Pose {
	return defaultConverter.TransformToPose(t)
}

// PoseToTransform converts a pose to a homogeneous transform.
func (c AxisAngleConverter) PoseToTransform(p Pose) Transform {
	return NewTransform(c.ToRotationMatrix(p.Orientation), p.Point)
}

// TransformToPose converts a homogeneous transform to a pose.
func (c AxisAngleConverter) TransformToPose(t Transform) Pose {
	return Pose{Point: t.Point(), Orientation: c.ToAxisAngle(t.Rotation())}
}

// Compose returns the pose reached by applying b in the frame of a, which is what URScript's
// pose_trans(a, b) computes.
func Compose(a, b Pose) Pose {
	return TransformToPose(PoseToTransform(a).Mul(PoseToTransform(b)))
}

// PoseBetween returns the pose that, composed onto a, gives b.
func PoseBetween(a, b Pose) Pose {
	return TransformToPose(PoseToTransform(a).Inverse().Mul(PoseToTransform(b)))
}

// PoseAlmostEqual compares two poses through their transforms, so equivalent axis angles compare equal.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return PoseToTransform(a).AlmostEqual(PoseToTransform(b), tol)
}
