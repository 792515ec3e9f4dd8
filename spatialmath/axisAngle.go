package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// Basic explanation: Imagine a 3d cartesian grid centered at 0,0,0, and a sphere of radius 1 centered at
// that same point. An orientation can be expressed by first specifying an axis, i.e. a line from the origin
// to a point on that sphere, represented by (rx, ry, rz), and a rotation around that axis, theta.
// These four numbers can be used as-is (R4), or they can be converted to R3, where theta is multiplied by each of
// the unit sphere components to give a vector whose length is theta and whose direction is the axis.
// UR controllers speak R3: the last three components of a TCP pose are an R3 axis angle.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates an R4AA that signifies no rotation.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// R3ToR4 converts an R3 angle axis to R4. The zero vector maps to NewR4AA.
func R3ToR4(aa r3.Vector) *R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return &R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}

// ToR3 converts an R4 angle axis to R3.
func (r4 *R4AA) ToR3() r3.Vector {
	return r3.Vector{X: r4.RX * r4.Theta, Y: r4.RY * r4.Theta, Z: r4.RZ * r4.Theta}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
// An axis of zero length is left untouched.
func (r4 *R4AA) Normalize() {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0.0 {
		return
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
}

// ToQuat converts an R4 axis angle to a unit quaternion
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/angleToQuaternion/index.htm
func (r4 *R4AA) ToQuat() quat.Number {
	sinA := math.Sin(r4.Theta / 2)
	r4.Normalize()
	return quat.Number{Real: math.Cos(r4.Theta / 2), Imag: r4.RX * sinA, Jmag: r4.RY * sinA, Kmag: r4.RZ * sinA}
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (r4 *R4AA) RotationMatrix() RotationMatrix {
	return AxisAngleToRotationMatrix(r4.ToR3())
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 0, 0, 1}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}

// AxisAngleConverter converts between R3 axis angles and rotation matrices. The thresholds decide when a
// matrix is treated as singular, i.e. a rotation of 0 or 180 degrees, where the skew symmetric part of the
// matrix no longer carries the axis.
type AxisAngleConverter struct {
	// SymmetryEpsilon is the largest |m_ij - m_ji| for which a matrix is considered symmetric.
	SymmetryEpsilon float64
	// IdentityEpsilon is the tolerance on |m_ij + m_ji| and |trace - 3| for a symmetric matrix to be the identity.
	IdentityEpsilon float64
	// NormEpsilon is the smallest 2*sin(angle) used to normalize the axis of a non singular matrix; below it
	// the divisor is forced to 1.
	NormEpsilon float64
	// FallbackAxes holds the unit axis used for a 180 degree rotation whose largest pivot of (M+I)/2 is
	// smaller than SymmetryEpsilon. Index 0, 1, 2 is used when the x, y, z pivot was selected.
	FallbackAxes [3]r3.Vector
}

// NewAxisAngleConverter returns a converter with the default thresholds and fallback axes.
func NewAxisAngleConverter() AxisAngleConverter {
	h := math.Sqrt2 / 2
	return AxisAngleConverter{
		SymmetryEpsilon: 1e-2,
		IdentityEpsilon: 1e-1,
		NormEpsilon:     1e-3,
		FallbackAxes: [3]r3.Vector{
			{X: 0, Y: h, Z: h},
			{X: h, Y: 0, Z: h},
			{X: h, Y: h, Z: 0},
		},
	}
}

var defaultConverter = NewAxisAngleConverter()

// AxisAngleToRotationMatrix converts an R3 axis angle to a rotation matrix using the default converter.
func AxisAngleToRotationMatrix(aa r3.Vector) RotationMatrix {
	return defaultConverter.ToRotationMatrix(aa)
}

// RotationMatrixToAxisAngle converts a rotation matrix to an R3 axis angle using the default converter.
func RotationMatrixToAxisAngle(rm RotationMatrix) r3.Vector {
	return defaultConverter.ToAxisAngle(rm)
}

// ToRotationMatrix applies Rodrigues' rotation formula. The zero vector is the identity.
func (c AxisAngleConverter) ToRotationMatrix(aa r3.Vector) RotationMatrix {
	angle := aa.Norm()
	if angle == 0 {
		return NewIdentityRotation()
	}
	x, y, z := aa.X/angle, aa.Y/angle, aa.Z/angle

	cos := math.Cos(angle)
	sin := math.Sin(angle)
	t := 1 - cos

	return NewRotationMatrix([3][3]float64{
		{t*x*x + cos, t*x*y - z*sin, t*x*z + y*sin},
		{t*x*y + z*sin, t*y*y + cos, t*y*z - x*sin},
		{t*x*z - y*sin, t*y*z + x*sin, t*z*z + cos},
	})
}

// ToAxisAngle returns the R3 axis angle of the matrix. Symmetric matrices are either the identity, which
// returns the zero vector, or a half turn, which returns an axis of length pi.
func (c AxisAngleConverter) ToAxisAngle(rm RotationMatrix) r3.Vector {
	m := rm.Rows()

	if math.Abs(m[0][1]-m[1][0]) < c.SymmetryEpsilon &&
		math.Abs(m[0][2]-m[2][0]) < c.SymmetryEpsilon &&
		math.Abs(m[1][2]-m[2][1]) < c.SymmetryEpsilon {
		if math.Abs(m[0][1]+m[1][0]) < c.IdentityEpsilon &&
			math.Abs(m[0][2]+m[2][0]) < c.IdentityEpsilon &&
			math.Abs(m[1][2]+m[2][1]) < c.IdentityEpsilon &&
			math.Abs(rm.Trace()-3) < c.IdentityEpsilon {
			return r3.Vector{}
		}
		return c.halfTurnAxis(m).Mul(math.Pi)
	}

	skew := r3.Vector{X: m[2][1] - m[1][2], Y: m[0][2] - m[2][0], Z: m[1][0] - m[0][1]}
	norm := skew.Norm() // 2*sin(angle)
	if math.Abs(norm) < c.NormEpsilon {
		norm = 1
	}
	angle := math.Acos(math.Max(-1, math.Min(1, (rm.Trace()-1)/2)))
	return skew.Mul(angle / norm)
}

// halfTurnAxis extracts the unit axis of a 180 degree rotation from the largest diagonal term of (M+I)/2,
// using the cross terms for the remaining components.
func (c AxisAngleConverter) halfTurnAxis(m [3][3]float64) r3.Vector {
	xx := (m[0][0] + 1) / 2
	yy := (m[1][1] + 1) / 2
	zz := (m[2][2] + 1) / 2
	xy := (m[0][1] + m[1][0]) / 4
	xz := (m[0][2] + m[2][0]) / 4
	yz := (m[1][2] + m[2][1]) / 4

	switch {
	case xx > yy && xx > zz:
		if xx < c.SymmetryEpsilon {
			return c.FallbackAxes[0]
		}
		x := math.Sqrt(xx)
		return r3.Vector{X: x, Y: xy / x, Z: xz / x}
	case yy > zz:
		if yy < c.SymmetryEpsilon {
			return c.FallbackAxes[1]
		}
		y := math.Sqrt(yy)
		return r3.Vector{X: xy / y, Y: y, Z: yz / y}
	default:
		if zz < c.SymmetryEpsilon {
			return c.FallbackAxes[2]
		}
		z := math.Sqrt(zz)
		return r3.Vector{X: xz / z, Y: yz / z, Z: z}
	}
}
