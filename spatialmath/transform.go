package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Transform is a 4x4 homogeneous transform: the top left 3x3 block is a rotation, the right column a
// translation and the bottom row (0, 0, 0, 1).
type Transform struct {
	mat mgl64.Mat4
}

// NewTransform builds a transform from a rotation and a translation.
func NewTransform(rot RotationMatrix, point r3.Vector) Transform {
	r := rot.Rows()
	return Transform{mgl64.Mat4FromRows(
		mgl64.Vec4{r[0][0], r[0][1], r[0][2], point.X},
		mgl64.Vec4{r[1][0], r[1][1], r[1][2], point.Y},
		mgl64.Vec4{r[2][0], r[2][1], r[2][2], point.Z},
		mgl64.Vec4{0, 0, 0, 1},
	)}
}

// NewTransformFromRows builds a transform from the first three rows of a homogeneous matrix; the bottom
// row is always (0, 0, 0, 1).
func NewTransformFromRows(rows [3][4]float64) Transform {
	return Transform{mgl64.Mat4FromRows(
		mgl64.Vec4(rows[0]),
		mgl64.Vec4(rows[1]),
		mgl64.Vec4(rows[2]),
		mgl64.Vec4{0, 0, 0, 1},
	)}
}

// NewIdentityTransform returns the transform that neither rotates nor translates.
func NewIdentityTransform() Transform {
	return Transform{mgl64.Ident4()}
}

// At returns the value at the given row and column.
func (t Transform) At(row, col int) float64 {
	return t.mat.At(row, col)
}

// Rotation returns the rotation block.
func (t Transform) Rotation() RotationMatrix {
	return RotationMatrix{t.mat.Mat3()}
}

// Point returns the translation column.
func (t Transform) Point() r3.Vector {
	return r3.Vector{X: t.mat.At(0, 3), Y: t.mat.At(1, 3), Z: t.mat.At(2, 3)}
}

// Rows returns the first three rows, row major.
func (t Transform) Rows() [3][4]float64 {
	var rows [3][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			rows[i][j] = t.mat.At(i, j)
		}
	}
	return rows
}

// Mul returns t * other, i.e. other expressed in the frame t maps into.
func (t Transform) Mul(other Transform) Transform {
	return Transform{t.mat.Mul4(other.mat)}
}

// Inverse returns the inverse of a rigid transform: [R^T, -R^T p].
func (t Transform) Inverse() Transform {
	rt := t.Rotation().Transpose()
	return NewTransform(rt, rt.RotateVector(t.Point()).Mul(-1))
}

// TransformPoint returns R*p + t.
func (t Transform) TransformPoint(p r3.Vector) r3.Vector {
	return t.Rotation().RotateVector(p).Add(t.Point())
}

// AlmostEqual returns whether every entry is within tol of the other transform.
func (t Transform) AlmostEqual(other Transform, tol float64) bool {
	for i := 0; i < 16; i++ {
		if math.Abs(t.mat[i]-other.mat[i]) > tol {
			return false
		}
	}
	return true
}

func (t Transform) String() string {
	r := t.Rows()
	return fmt.Sprintf("[[%.6f %.6f %.6f %.6f] [%.6f %.6f %.6f %.6f] [%.6f %.6f %.6f %.6f] [0 0 0 1]]",
		r[0][0], r[0][1], r[0][2], r[0][3],
		r[1][0], r[1][1], r[1][2], r[1][3],
		r[2][0], r[2][1], r[2][2], r[2][3])
}
