package cli

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/atomic"

	"go.viam.com/urkin/kinematics"
	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/robots/universalrobots"
	"go.viam.com/urkin/spatialmath"
	"go.viam.com/urkin/utils"
)

// ForwardAction is the corresponding Action for 'forward'.
func ForwardAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	s, err := newSolver(c, logger)
	if err != nil {
		return err
	}
	q, err := jointsFromArgs(c)
	if err != nil {
		return err
	}
	pose, err := universalrobots.FormatPose(s.ForwardPose(q))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", pose)
	logger.Debugw("forward kinematics", "joints", q.String(), "transform", s.Forward(q).String())
	return nil
}

// InverseAction is the corresponding Action for 'inverse'.
func InverseAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	s, err := newSolver(c, logger)
	if err != nil {
		return err
	}
	pose, err := poseFromArgs(c)
	if err != nil {
		return err
	}
	solutions := s.InversePose(pose, c.Float64(flagWrist3))
	if len(solutions) == 0 {
		return errors.Wrapf(kinematics.ErrUnreachablePose, "%v", pose)
	}
	printf(c.App.Writer, "%s", solutionTable(solutions, c.Bool(flagDegrees)))
	return nil
}

func solutionTable(solutions kinematics.SolutionSet, degrees bool) string {
	t := table.NewWriter()
	header := table.Row{"#"}
	for _, name := range referenceframe.JointNames {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i, q := range solutions {
		vals := q.Floats()
		if degrees {
			vals = q.Degrees()
		}
		row := table.Row{fmt.Sprintf("%d", i+1)}
		for _, v := range vals {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		t.AppendRow(row)
	}
	return t.Render()
}

// NearestAction is the corresponding Action for 'nearest'.
func NearestAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	s, err := newSolver(c, logger)
	if err != nil {
		return err
	}
	pose, err := poseFromArgs(c)
	if err != nil {
		return err
	}
	reference := universalrobots.HomeJoints
	if c.IsSet(flagReference) {
		if reference, err = universalrobots.ParseJointList(c.String(flagReference)); err != nil {
			return err
		}
	}
	q, err := s.Nearest(pose, reference)
	if err != nil {
		return err
	}
	joints, err := universalrobots.FormatJointList(q)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", joints)
	return nil
}

// VerifyAction is the corresponding Action for 'verify'.
func VerifyAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	s, err := newSolver(c, logger)
	if err != nil {
		return err
	}
	samples := c.Int(flagSamples)
	if samples <= 0 {
		return errors.Errorf("--%s must be positive", flagSamples)
	}
	tolerance := c.Float64(flagTolerance)

	rng := rand.New(rand.NewSource(c.Int64(flagSeed))) //nolint:gosec
	inputs := make([]referenceframe.JointVector, samples)
	for i := range inputs {
		for j := range inputs[i] {
			inputs[i][j] = (rng.Float64()*2 - 1) * math.Pi
		}
	}

	residuals := make([]float64, samples)
	var failures atomic.Int64
	err = utils.GroupWorkParallel(
		c.Context,
		samples,
		func(numGroups int) {
			logger.Debugf("verifying %d samples in %d groups", samples, numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				q := inputs[workNum]
				target := s.Forward(q)
				best := math.Inf(1)
				for _, sol := range s.Inverse(target, q[referenceframe.Wrist3]) {
					best = math.Min(best, transformResidual(target, s.Forward(sol)))
				}
				residuals[workNum] = best
				if best > tolerance {
					failures.Inc()
					logger.Debugw("round trip failed", "joints", q.String(), "residual", best)
				}
			}, nil
		},
	)
	if err != nil {
		return err
	}

	finite := make([]float64, 0, samples)
	for _, r := range residuals {
		if !math.IsInf(r, 1) {
			finite = append(finite, r)
		}
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"samples", "failures", "mean residual", "p99 residual", "max residual"})
	row := table.Row{samples, failures.Load()}
	if len(finite) == 0 {
		row = append(row, "-", "-", "-")
	} else {
		mean, err := stats.Mean(finite)
		if err != nil {
			return err
		}
		p99, err := stats.Percentile(finite, 99)
		if err != nil {
			return err
		}
		maxResidual, err := stats.Max(finite)
		if err != nil {
			return err
		}
		row = append(row, fmt.Sprintf("%.3g", mean), fmt.Sprintf("%.3g", p99), fmt.Sprintf("%.3g", maxResidual))
	}
	t.AppendRow(row)
	printf(c.App.Writer, "%s", t.Render())

	if n := failures.Load(); n > 0 {
		return errors.Errorf("%d of %d samples failed the round trip", n, samples)
	}
	return nil
}

// transformResidual is the largest absolute element difference between two transforms.
func transformResidual(a, b spatialmath.Transform) float64 {
	ar, br := a.Rows(), b.Rows()
	var worst float64
	for i := range ar {
		for j := range ar[i] {
			worst = math.Max(worst, math.Abs(ar[i][j]-br[i][j]))
		}
	}
	return worst
}

// ModelsAction is the corresponding Action for 'models'.
func ModelsAction(c *cli.Context) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"model", "d1", "a2", "a3", "d4", "d5", "d6", "reach"})
	for _, model := range kinematics.RegisteredModels() {
		g, ok := kinematics.LookupGeometry(model)
		if !ok {
			continue
		}
		t.AppendRow(table.Row{model, g.D1, g.A2, g.A3, g.D4, g.D5, g.D6, fmt.Sprintf("%.4f", g.Reach())})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}
