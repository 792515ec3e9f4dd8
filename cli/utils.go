package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/urkin/kinematics"
	"go.viam.com/urkin/logging"
	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/robots/universalrobots"
	"go.viam.com/urkin/spatialmath"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newLogger returns the command logger and a func closing its log file, if any.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewBlankLogger("urkin")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if !c.Bool(flagDebug) {
		logger.SetLevel(logging.INFO)
	}
	closeLog := func() {}
	if path := c.String(flagLogFile); path != "" {
		file := logging.NewFileAppender(path)
		logger.AddAppender(file)
		closeLog = func() {
			if err := file.Close(); err != nil {
				printf(c.App.ErrWriter, "failed to close log file: %v", err)
			}
		}
	}
	return logger, closeLog
}

func newSolver(c *cli.Context, logger logging.Logger) (*kinematics.Solver, error) {
	cfg := &kinematics.Config{Model: c.String(flagModel)}
	if path := c.String(flagConfig); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "could not read solver config")
		}
		if cfg, err = kinematics.ParseConfig(data); err != nil {
			return nil, err
		}
	}
	if c.Bool(flagNoEnvelope) {
		cfg.Envelope = nil
		cfg.DisableEnvelope = true
	}
	logger.Debugw("building solver", "model", cfg.Model, "config", c.String(flagConfig))
	return kinematics.NewSolverFromConfig(cfg, logger)
}

// floatArgs returns the six values of either a single list literal or six separate arguments. Negative
// separate values must follow "--" so they are not taken for flags.
func floatArgs(c *cli.Context, parseLiteral func(string) ([]float64, error)) ([]float64, error) {
	args := c.Args().Slice()
	switch len(args) {
	case 1:
		return parseLiteral(args[0])
	case referenceframe.DoF:
		vals := make([]float64, 0, len(args))
		for i, arg := range args {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %d", i)
			}
			vals = append(vals, v)
		}
		return vals, nil
	default:
		return nil, errors.Errorf("expected a literal or %d values, got %d arguments", referenceframe.DoF, len(args))
	}
}

func jointsFromArgs(c *cli.Context) (referenceframe.JointVector, error) {
	vals, err := floatArgs(c, func(s string) ([]float64, error) {
		q, err := universalrobots.ParseJointList(s)
		return q.Floats(), err
	})
	if err != nil {
		return referenceframe.JointVector{}, err
	}
	if c.Bool(flagDegrees) {
		return referenceframe.JointVectorFromDegrees(vals)
	}
	return referenceframe.JointVectorFromFloats(vals)
}

func poseFromArgs(c *cli.Context) (spatialmath.Pose, error) {
	vals, err := floatArgs(c, func(s string) ([]float64, error) {
		p, err := universalrobots.ParsePose(s)
		return p.Floats(), err
	})
	if err != nil {
		return spatialmath.Pose{}, err
	}
	return spatialmath.PoseFromFloats(vals)
}

// moveParams overrides defaults with whichever move flags were given.
func moveParams(c *cli.Context, defaults universalrobots.MoveParams) universalrobots.MoveParams {
	params := defaults
	if c.IsSet(flagAcceleration) {
		params.Acceleration = c.Float64(flagAcceleration)
	}
	if c.IsSet(flagVelocity) {
		params.Velocity = c.Float64(flagVelocity)
	}
	if c.IsSet(flagTime) {
		params.Time = c.Float64(flagTime)
	}
	if c.IsSet(flagBlendRadius) {
		params.BlendRadius = c.Float64(flagBlendRadius)
	}
	return params
}
