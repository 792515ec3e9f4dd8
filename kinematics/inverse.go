package kinematics

import (
	"math"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
	"go.viam.com/urkin/utils"
)

// SolutionSet holds up to eight joint vectors in branch order: base, then wrist 2, then elbow.
type SolutionSet []referenceframe.JointVector

// Contains returns whether some member is equivalent to q modulo 2pi within tol.
func (ss SolutionSet) Contains(q referenceframe.JointVector, tol float64) bool {
	for _, sol := range ss {
		if sol.EquivalentTo(q, tol) {
			return true
		}
	}
	return false
}

// Inverse returns every joint vector that places the tool flange at t, in branch order. An unreachable
// transform yields an empty set. When wrist 2 is aligned with the base (sin q5 = 0) wrist 1 and wrist 3
// are coupled and preferredWrist3 is used verbatim as q6.
//
// Returned joints lie in [0, 2pi) with the exception of a gimbal locked q6, after which the envelope
// correction, if any, is applied.
func (s *Solver) Inverse(t spatialmath.Transform, preferredWrist3 float64) SolutionSet {
	g := s.geometry
	m := t.Rows()

	q1, ok := baseAngles(m, g)
	if !ok {
		s.logger.Debugw("wrist center out of reach of the base", "transform", t.String())
		return SolutionSet{}
	}

	solutions := make(SolutionSet, 0, 8)
	for _, base := range q1 {
		s1, c1 := math.Sincos(base)
		q5, ok := wrist2Angles(m, g, s1, c1)
		if !ok {
			s.logger.Debugw("wrist 2 cannot reach the flange", "base", base)
			continue
		}
		for _, wrist2 := range q5 {
			s5, c5 := math.Sincos(wrist2)

			wrist3 := preferredWrist3
			if math.Abs(s5) < zeroThresh {
				s.logger.Debugw("gimbal lock, using preferred wrist 3", "wrist3", preferredWrist3)
			} else {
				wrist3 = wrist3Angle(m, s1, c1, s5)
			}

			arms, ok := planarAngles(m, g, s1, c1, s5, c5, wrist3)
			if !ok {
				s.logger.Debugw("elbow triangle cannot be closed", "base", base, "wrist2", wrist2)
				continue
			}
			for _, arm := range arms {
				q := referenceframe.JointVector{base, arm[0], arm[1], arm[2], wrist2, wrist3}
				solutions = append(solutions, s.envelope.Apply(q))
			}
		}
	}
	return solutions
}

// InversePose is Inverse for a pose given as a position and an R3 axis angle.
func (s *Solver) InversePose(p spatialmath.Pose, preferredWrist3 float64) SolutionSet {
	return s.Inverse(s.converter.PoseToTransform(p), preferredWrist3)
}

// wrapAngle snaps near zero values to zero and wraps the result into [0, 2pi).
func wrapAngle(a float64) float64 {
	if math.Abs(a) < zeroThresh {
		return 0
	}
	return utils.ModAngRad(a)
}

// snappedRatio returns num/den, or +-1 when |num| and |den| agree within zeroThresh so that the inverse
// trigonometric functions stay defined.
func snappedRatio(num, den float64) float64 {
	if math.Abs(math.Abs(num)-math.Abs(den)) < zeroThresh {
		return utils.Sign(num) * utils.Sign(den)
	}
	return num / den
}

// baseAngles returns the two base angles placing the wrist 2 axis tangent to the circle of radius d4
// around the base. It reports false when the wrist center lies inside that circle.
func baseAngles(m [3][4]float64, g LinkGeometry) ([2]float64, bool) {
	a := g.D6*m[1][2] - m[1][3]
	b := g.D6*m[0][2] - m[0][3]
	switch {
	case math.Abs(a) < zeroThresh:
		return baseAnglesDegenerateA(b, g.D4)
	case math.Abs(b) < zeroThresh:
		return baseAnglesDegenerateB(a, g.D4)
	case utils.Square(g.D4) > utils.Square(a)+utils.Square(b):
		return [2]float64{}, false
	default:
		return baseAnglesGeneral(a, b, g.D4), true
	}
}

// baseAnglesDegenerateA handles a wrist center on the x axis of the base.
func baseAnglesDegenerateA(b, d4 float64) ([2]float64, bool) {
	div := snappedRatio(-d4, b)
	if math.Abs(div) > 1 {
		return [2]float64{}, false
	}
	arcsin := math.Asin(div)
	if math.Abs(arcsin) < zeroThresh {
		arcsin = 0
	}
	return [2]float64{wrapAngle(arcsin), wrapAngle(math.Pi - arcsin)}, true
}

// baseAnglesDegenerateB handles a wrist center on the y axis of the base.
func baseAnglesDegenerateB(a, d4 float64) ([2]float64, bool) {
	div := snappedRatio(d4, a)
	if math.Abs(div) > 1 {
		return [2]float64{}, false
	}
	arccos := math.Acos(div)
	return [2]float64{wrapAngle(arccos), wrapAngle(2*math.Pi - arccos)}, true
}

func baseAnglesGeneral(a, b, d4 float64) [2]float64 {
	arccos := math.Acos(d4 / math.Sqrt(a*a+b*b))
	arctan := math.Atan2(-b, a)
	return [2]float64{wrapAngle(arccos + arctan), wrapAngle(-arccos + arctan)}
}

// wrist2Angles returns the two wrist 2 angles for a base angle. It reports false when the flange is
// further than d6 from the wrist 2 plane.
func wrist2Angles(m [3][4]float64, g LinkGeometry, s1, c1 float64) ([2]float64, bool) {
	numer := m[0][3]*s1 - m[1][3]*c1 - g.D4
	div := snappedRatio(numer, g.D6)
	if math.Abs(div) > 1 {
		return [2]float64{}, false
	}
	arccos := math.Acos(div)
	return [2]float64{wrapAngle(arccos), wrapAngle(2*math.Pi - arccos)}, true
}

// wrist3Angle returns q6 for a base angle and a wrist 2 angle away from gimbal lock.
func wrist3Angle(m [3][4]float64, s1, c1, s5 float64) float64 {
	sign := utils.Sign(s5)
	return wrapAngle(math.Atan2(
		sign*-(m[0][1]*s1-m[1][1]*c1),
		sign*(m[0][0]*s1-m[1][0]*c1),
	))
}

// planarAngles solves the shoulder, elbow and wrist 1 joints, which all rotate about parallel axes, as a
// planar RRR chain. It returns the elbow down and elbow up solutions as (q2, q3, q4), and false when the
// wrist center is out of reach of the upper arm and forearm.
func planarAngles(m [3][4]float64, g LinkGeometry, s1, c1, s5, c5, q6 float64) ([2][3]float64, bool) {
	s6, c6 := math.Sincos(q6)

	x04x := -s5*(m[0][2]*c1+m[1][2]*s1) - c5*(s6*(m[0][1]*c1+m[1][1]*s1)-c6*(m[0][0]*c1+m[1][0]*s1))
	x04y := c5*(m[2][0]*c6-m[2][1]*s6) - m[2][2]*s5
	p13x := g.D5*(s6*(m[0][0]*c1+m[1][0]*s1)+c6*(m[0][1]*c1+m[1][1]*s1)) - g.D6*(m[0][2]*c1+m[1][2]*s1) +
		m[0][3]*c1 + m[1][3]*s1
	p13y := m[2][3] - g.D1 - g.D6*m[2][2] + g.D5*(m[2][1]*c6+m[2][0]*s6)

	c3 := (utils.Square(p13x) + utils.Square(p13y) - utils.Square(g.A2) - utils.Square(g.A3)) / (2 * g.A2 * g.A3)
	if utils.Float64AlmostEqual(math.Abs(c3), 1, zeroThresh) {
		c3 = utils.Sign(c3)
	} else if math.Abs(c3) > 1 || math.IsNaN(c3) {
		return [2][3]float64{}, false
	}

	arccos := math.Acos(c3)
	q3 := [2]float64{arccos, 2*math.Pi - arccos}
	// both atan2 arguments share the factor 1/|p13|^2, which is dropped so a folded arm stays defined
	s3 := math.Sin(arccos)
	a := g.A2 + g.A3*c3
	b := g.A3 * s3
	q2 := [2]float64{
		math.Atan2(a*p13y-b*p13x, a*p13x+b*p13y),
		math.Atan2(a*p13y+b*p13x, a*p13x-b*p13y),
	}

	var out [2][3]float64
	for k := range out {
		s23, c23 := math.Sincos(q2[k] + q3[k])
		q4 := math.Atan2(c23*x04y-s23*x04x, x04x*c23+x04y*s23)
		out[k] = [3]float64{wrapAngle(q2[k]), wrapAngle(q3[k]), wrapAngle(q4)}
	}
	return out, true
}
