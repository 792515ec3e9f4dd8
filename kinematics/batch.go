package kinematics

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
	"go.viam.com/urkin/utils"
)

// SolveBatch selects the solution nearest to reference for every pose concurrently. Results are in the
// order of poses. The first unreachable pose, or cancellation of ctx, stops the remaining work and its
// error is returned.
func (s *Solver) SolveBatch(
	ctx context.Context,
	poses []spatialmath.Pose,
	reference referenceframe.JointVector,
) ([]referenceframe.JointVector, error) {
	results := make([]referenceframe.JointVector, len(poses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(utils.ParallelFactor)
	for i, pose := range poses {
		i, pose := i, pose
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := s.Nearest(pose, reference)
			if err != nil {
				return errors.Wrapf(err, "pose %d", i)
			}
			results[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
