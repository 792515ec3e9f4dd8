package kinematics

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
)

// wrapToReference moves each wrist joint of a solution down by 2pi when the matching reference joint is
// negative, so that a reference expressed in (-2pi, 0] is compared against the same turn.
func wrapToReference(solution, reference referenceframe.JointVector) referenceframe.JointVector {
	for _, i := range []int{referenceframe.Wrist1, referenceframe.Wrist2, referenceframe.Wrist3} {
		if reference[i] < 0 {
			solution[i] -= 2 * math.Pi
		}
	}
	return solution
}

type scoredSolution struct {
	q        referenceframe.JointVector
	distance float64
}

// SelectNearest returns the wrist corrected member of solutions closest to reference under the solver's
// metric. Ties go to the earliest member. An empty set returns ErrNoSelectableSolution.
func (s *Solver) SelectNearest(solutions SolutionSet, reference referenceframe.JointVector) (referenceframe.JointVector, error) {
	if len(solutions) == 0 {
		return referenceframe.JointVector{}, ErrNoSelectableSolution
	}
	scored := lo.Map(solutions, func(sol referenceframe.JointVector, _ int) scoredSolution {
		q := wrapToReference(sol, reference)
		return scoredSolution{q: q, distance: s.metric.Distance(reference, q)}
	})
	best := lo.MinBy(scored, func(a, b scoredSolution) bool {
		return a.distance < b.distance
	})
	return best.q, nil
}

// Nearest solves inverse kinematics for pose with a preferred wrist 3 of zero and returns the solution
// nearest to reference.
func (s *Solver) Nearest(pose spatialmath.Pose, reference referenceframe.JointVector) (referenceframe.JointVector, error) {
	q, err := s.SelectNearest(s.InversePose(pose, 0), reference)
	if err != nil {
		return q, errors.Wrapf(ErrUnreachablePose, "%v", pose)
	}
	return q, nil
}

// NearestTransform is Nearest for a homogeneous transform.
func (s *Solver) NearestTransform(t spatialmath.Transform, reference referenceframe.JointVector) (referenceframe.JointVector, error) {
	q, err := s.SelectNearest(s.Inverse(t, 0), reference)
	if err != nil {
		return q, errors.Wrapf(ErrUnreachablePose, "%v", t)
	}
	return q, nil
}

// SelectNearestRelative resolves a tool relative motion locally: it composes relative onto the pose the
// arm reaches at current, as URScript's pose_trans does, and returns the solution for the result nearest
// to reference.
func (s *Solver) SelectNearestRelative(
	current referenceframe.JointVector,
	relative spatialmath.Pose,
	reference referenceframe.JointVector,
) (referenceframe.JointVector, error) {
	target := s.Forward(current).Mul(s.converter.PoseToTransform(relative))
	return s.NearestTransform(target, reference)
}
