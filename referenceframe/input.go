// Package referenceframe defines the joint space of a six axis serial arm.
package referenceframe

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/urkin/utils"
)

// Joint indices of a JointVector, from the base to the tool flange.
const (
	Base = iota
	Shoulder
	Elbow
	Wrist1
	Wrist2
	Wrist3
)

// DoF is the number of revolute joints of the arms handled here.
const DoF = 6

// JointVector holds one angle per joint in radians.
type JointVector [DoF]float64

// JointVectorFromFloats copies exactly DoF radian values into a JointVector.
func JointVectorFromFloats(vals []float64) (JointVector, error) {
	var q JointVector
	if len(vals) != DoF {
		return q, NewIncorrectDoFError(len(vals), DoF)
	}
	copy(q[:], vals)
	return q, nil
}

// JointVectorFromDegrees converts exactly DoF degree values into a JointVector.
func JointVectorFromDegrees(degs []float64) (JointVector, error) {
	q, err := JointVectorFromFloats(degs)
	if err != nil {
		return q, err
	}
	for i := range q {
		q[i] = utils.DegToRad(q[i])
	}
	return q, nil
}

// Floats returns the angles as a slice.
func (q JointVector) Floats() []float64 {
	out := make([]float64, DoF)
	copy(out, q[:])
	return out
}

// Degrees returns the angles in degrees.
func (q JointVector) Degrees() []float64 {
	out := make([]float64, DoF)
	for i, v := range q {
		out[i] = utils.RadToDeg(v)
	}
	return out
}

// IsFinite returns false if any angle is NaN or infinite.
func (q JointVector) IsFinite() bool {
	for _, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Wrapped returns q with every angle moved into [0, 2pi).
func (q JointVector) Wrapped() JointVector {
	for i := range q {
		q[i] = utils.ModAngRad(q[i])
	}
	return q
}

// Sub returns q - other joint by joint.
func (q JointVector) Sub(other JointVector) JointVector {
	floats.Sub(q[:], other[:])
	return q
}

// Add returns q + other joint by joint.
func (q JointVector) Add(other JointVector) JointVector {
	floats.Add(q[:], other[:])
	return q
}

// SquaredDistance returns the squared euclidean distance between two joint vectors, without wrapping.
func (q JointVector) SquaredDistance(other JointVector) float64 {
	diff := q.Sub(other)
	return floats.Dot(diff[:], diff[:])
}

// AlmostEqual returns whether every joint is within tol of the other vector.
func (q JointVector) AlmostEqual(other JointVector, tol float64) bool {
	return floats.EqualApprox(q[:], other[:], tol)
}

// EquivalentTo returns whether every joint is within tol of the other vector modulo 2pi.
func (q JointVector) EquivalentTo(other JointVector, tol float64) bool {
	for i := range q {
		if math.Abs(utils.AngleDiffRad(q[i], other[i])) > tol {
			return false
		}
	}
	return true
}

// Interpolate returns the joint vector the given fraction of the way from q to other.
func (q JointVector) Interpolate(other JointVector, by float64) JointVector {
	for i := range q {
		q[i] += (other[i] - q[i]) * by
	}
	return q
}

func (q JointVector) String() string {
	parts := make([]string, DoF)
	for i, v := range q {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// JointNames are human readable names of the joints, indexed like a JointVector.
var JointNames = [DoF]string{"base", "shoulder", "elbow", "wrist1", "wrist2", "wrist3"}
