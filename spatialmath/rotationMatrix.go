package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 rotation matrix. Entries are addressed row first with At(row, col).
// The engine assumes, but never checks, that it is orthonormal with determinant +1.
type RotationMatrix struct {
	mat mgl64.Mat3
}

// NewRotationMatrix creates a rotation matrix from its rows.
func NewRotationMatrix(rows [3][3]float64) RotationMatrix {
	return RotationMatrix{mgl64.Mat3FromRows(
		mgl64.Vec3(rows[0]),
		mgl64.Vec3(rows[1]),
		mgl64.Vec3(rows[2]),
	)}
}

// NewIdentityRotation returns the rotation matrix that signifies no rotation.
func NewIdentityRotation() RotationMatrix {
	return RotationMatrix{mgl64.Ident3()}
}

// At returns the value at the given row and column.
func (rm RotationMatrix) At(row, col int) float64 {
	return rm.mat.At(row, col)
}

// Row returns the given row as a vector.
func (rm RotationMatrix) Row(row int) r3.Vector {
	v := rm.mat.Row(row)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Col returns the given column as a vector.
func (rm RotationMatrix) Col(col int) r3.Vector {
	v := rm.mat.Col(col)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Rows returns a row major copy of the matrix.
func (rm RotationMatrix) Rows() [3][3]float64 {
	var rows [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rows[i][j] = rm.mat.At(i, j)
		}
	}
	return rows
}

// Mul returns rm * other.
func (rm RotationMatrix) Mul(other RotationMatrix) RotationMatrix {
	return RotationMatrix{rm.mat.Mul3(other.mat)}
}

// Transpose returns the transpose, which is the inverse of an orthonormal matrix.
func (rm RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{rm.mat.Transpose()}
}

// Det returns the determinant.
func (rm RotationMatrix) Det() float64 {
	return rm.mat.Det()
}

// Trace returns the sum of the diagonal.
func (rm RotationMatrix) Trace() float64 {
	return rm.mat.At(0, 0) + rm.mat.At(1, 1) + rm.mat.At(2, 2)
}

// RotateVector returns rm * v.
func (rm RotationMatrix) RotateVector(v r3.Vector) r3.Vector {
	out := rm.mat.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// AlmostEqual returns whether every entry is within tol of the other matrix.
func (rm RotationMatrix) AlmostEqual(other RotationMatrix, tol float64) bool {
	for i := 0; i < 9; i++ {
		if math.Abs(rm.mat[i]-other.mat[i]) > tol {
			return false
		}
	}
	return true
}

// IsOrthonormal returns whether rm^T*rm is the identity and the determinant is +1, within tol.
func (rm RotationMatrix) IsOrthonormal(tol float64) bool {
	return rm.Transpose().Mul(rm).AlmostEqual(NewIdentityRotation(), tol) && math.Abs(rm.Det()-1) <= tol
}

// AxisAngle returns the R3 axis angle of this rotation using the default converter.
func (rm RotationMatrix) AxisAngle() r3.Vector {
	return RotationMatrixToAxisAngle(rm)
}

// Quaternion returns the unit quaternion (with non-negative real part) of the rotation.
// See https://www.euclideanspace.com/maths/geometry/rotations/conversions/matrixToQuaternion/
func (rm RotationMatrix) Quaternion() quat.Number {
	m := rm.Rows()
	var q quat.Number
	switch tr := rm.Trace(); {
	case tr > 0:
		s := 0.5 / math.Sqrt(tr+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (m[2][1] - m[1][2]) * s,
			Jmag: (m[0][2] - m[2][0]) * s,
			Kmag: (m[1][0] - m[0][1]) * s,
		}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2 * math.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		q = quat.Number{
			Real: (m[2][1] - m[1][2]) / s,
			Imag: 0.25 * s,
			Jmag: (m[0][1] + m[1][0]) / s,
			Kmag: (m[0][2] + m[2][0]) / s,
		}
	case m[1][1] > m[2][2]:
		s := 2 * math.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		q = quat.Number{
			Real: (m[0][2] - m[2][0]) / s,
			Imag: (m[0][1] + m[1][0]) / s,
			Jmag: 0.25 * s,
			Kmag: (m[1][2] + m[2][1]) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		q = quat.Number{
			Real: (m[1][0] - m[0][1]) / s,
			Imag: (m[0][2] + m[2][0]) / s,
			Jmag: (m[1][2] + m[2][1]) / s,
			Kmag: 0.25 * s,
		}
	}
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return NewRotationMatrix([3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	})
}

func (rm RotationMatrix) String() string {
	m := rm.Rows()
	return fmt.Sprintf("[[%.6f %.6f %.6f] [%.6f %.6f %.6f] [%.6f %.6f %.6f]]",
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2])
}
