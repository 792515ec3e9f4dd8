package kinematics

import (
	"math"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
)

// Forward returns the transform of the tool flange in the base frame for the joint vector q.
// Wrist 1 only enters through the sum q2+q3+q4, so the expansion is carried on that sum.
func (s *Solver) Forward(q referenceframe.JointVector) spatialmath.Transform {
	g := s.geometry
	s1, c1 := math.Sincos(q[referenceframe.Base])
	s2, c2 := math.Sincos(q[referenceframe.Shoulder])
	s23, c23 := math.Sincos(q[referenceframe.Shoulder] + q[referenceframe.Elbow])
	s234, c234 := math.Sincos(q[referenceframe.Shoulder] + q[referenceframe.Elbow] + q[referenceframe.Wrist1])
	s5, c5 := math.Sincos(q[referenceframe.Wrist2])
	s6, c6 := math.Sincos(q[referenceframe.Wrist3])

	// projections of the wrist 2 frame shared by the first two rows
	u := s1*s5 + c1*c234*c5
	v := c5*s1*c234 - c1*s5

	return spatialmath.NewTransformFromRows([3][4]float64{
		{
			c6*u - s6*c1*s234,
			-c6*c1*s234 - s6*u,
			c5*s1 - c1*c234*s5,
			g.D5*c1*s234 + g.D4*s1 - g.D6*c1*c234*s5 + g.D6*c5*s1 + g.A2*c1*c2 + g.A3*c1*c23,
		},
		{
			c6*v - s6*s1*s234,
			-c6*s1*s234 - s6*v,
			-c1*c5 - s1*c234*s5,
			g.D5*s1*s234 - g.D4*c1 - g.D6*s1*c234*s5 - g.D6*c1*c5 + g.A2*c2*s1 + g.A3*s1*c23,
		},
		{
			c234*s6 + s234*c5*c6,
			c234*c6 - s234*c5*s6,
			-s234 * s5,
			g.D1 - g.D6*s234*s5 + g.A3*s23 + g.A2*s2 - g.D5*c234,
		},
	})
}

// ForwardPose returns the tool pose for the joint vector q.
func (s *Solver) ForwardPose(q referenceframe.JointVector) spatialmath.Pose {
	return s.converter.TransformToPose(s.Forward(q))
}
