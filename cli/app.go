// Package cli contains the urkin command, a front end to the closed form kinematics of UR arms.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Global flags.
	flagModel      = "model"
	flagConfig     = "config"
	flagNoEnvelope = "no-envelope"
	flagDebug      = "debug"
	flagLogFile    = "log-file"

	// Command flags.
	flagDegrees      = "degrees"
	flagReference    = "reference"
	flagWrist3       = "preferred-wrist3"
	flagSamples      = "samples"
	flagSeed         = "seed"
	flagTolerance    = "tolerance"
	flagAcceleration = "acceleration"
	flagVelocity     = "velocity"
	flagTime         = "time"
	flagBlendRadius  = "blend-radius"
	flagLinear       = "linear"
)

func moveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:    flagAcceleration,
			Aliases: []string{"a"},
			Usage:   "joint acceleration in rad/s^2, or tool acceleration in m/s^2 for linear moves",
		},
		&cli.Float64Flag{
			Name:    flagVelocity,
			Aliases: []string{"v"},
			Usage:   "joint speed in rad/s, or tool speed in m/s for linear moves",
		},
		&cli.Float64Flag{
			Name:  flagTime,
			Usage: "move duration in seconds, overriding acceleration and velocity",
		},
		&cli.Float64Flag{
			Name:  flagBlendRadius,
			Usage: "blend radius in meters",
		},
	}
}

// NewApp returns the urkin app with Writer set to out and ErrWriter set to errOut. Log output goes to
// errOut so that results on out can be piped.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "urkin",
		Usage:           "solve forward and inverse kinematics for Universal Robots arms",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagModel,
				Aliases: []string{"m"},
				Value:   "ur5",
				Usage:   "registered arm model to solve for",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load a solver config from JSON `FILE`, overriding --model",
			},
			&cli.BoolFlag{
				Name:  flagNoEnvelope,
				Usage: "leave every inverse kinematics joint in [0, 2pi)",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to a size rotated `FILE`",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "forward",
				Usage:     "print the tool pose of joint positions",
				ArgsUsage: "<j0 ... j5 | [j0,...,j5]>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagDegrees, Usage: "joints are given in degrees"},
				},
				Action: ForwardAction,
			},
			{
				Name:      "inverse",
				Usage:     "list every joint solution of a tool pose",
				ArgsUsage: "<x y z rx ry rz | p[x,y,z,rx,ry,rz]>",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagWrist3, Usage: "wrist 3 angle used when the wrist is in gimbal lock"},
					&cli.BoolFlag{Name: flagDegrees, Usage: "print joints in degrees"},
				},
				Action: InverseAction,
			},
			{
				Name:      "nearest",
				Usage:     "print the solution of a tool pose nearest to reference joints",
				ArgsUsage: "<x y z rx ry rz | p[x,y,z,rx,ry,rz]>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagReference,
						Usage: "reference joints as [j0,...,j5], defaults to the home position",
					},
				},
				Action: NearestAction,
			},
			{
				Name:            "script",
				Usage:           "print URScript commands",
				HideHelpCommand: true,
				Subcommands: []*cli.Command{
					{
						Name:      "movej",
						Usage:     "move to joint positions",
						ArgsUsage: "<j0 ... j5 | [j0,...,j5]>",
						Flags:     moveFlags(),
						Action:    ScriptMoveJAction,
					},
					{
						Name:      "movel",
						Usage:     "move the tool linearly to a base frame pose",
						ArgsUsage: "<x y z rx ry rz | p[x,y,z,rx,ry,rz]>",
						Flags:     moveFlags(),
						Action:    ScriptMoveLAction,
					},
					{
						Name:      "relative",
						Usage:     "move by a pose expressed in the current tool frame",
						ArgsUsage: "<x y z rx ry rz | p[x,y,z,rx,ry,rz]>",
						Flags: append([]cli.Flag{
							&cli.BoolFlag{Name: flagLinear, Usage: "move the tool linearly"},
						}, moveFlags()...),
						Action: ScriptRelativeAction,
					},
					{
						Name:   "home",
						Usage:  "move to the home position",
						Flags:  moveFlags(),
						Action: ScriptHomeAction,
					},
					{
						Name:  "stop",
						Usage: "decelerate to a stop",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: flagLinear, Usage: "decelerate the tool instead of the joints"},
							&cli.Float64Flag{Name: flagAcceleration, Aliases: []string{"a"}, Usage: "deceleration"},
						},
						Action: ScriptStopAction,
					},
					{
						Name:   "teach",
						Usage:  "enter freedrive",
						Action: ScriptTeachAction,
					},
				},
			},
			{
				Name:  "verify",
				Usage: "check forward and inverse kinematics against each other on random joint positions",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagSamples, Value: 10000, Usage: "number of random joint positions"},
					&cli.Int64Flag{Name: flagSeed, Value: 1, Usage: "random seed"},
					&cli.Float64Flag{Name: flagTolerance, Value: 1e-6, Usage: "largest accepted transform difference"},
				},
				Action: VerifyAction,
			},
			{
				Name:   "models",
				Usage:  "list the registered arm models",
				Action: ModelsAction,
			},
		},
	}
}
