package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/urkin/robots/universalrobots"
)

func writeScript(w io.Writer, script string, err error) error {
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, script)
	return err
}

// ScriptMoveJAction is the corresponding Action for 'script movej'.
func ScriptMoveJAction(c *cli.Context) error {
	q, err := jointsFromArgs(c)
	if err != nil {
		return err
	}
	script, err := universalrobots.MoveJ(q, moveParams(c, universalrobots.DefaultJointMoveParams()))
	return writeScript(c.App.Writer, script, err)
}

// ScriptMoveLAction is the corresponding Action for 'script movel'.
func ScriptMoveLAction(c *cli.Context) error {
	pose, err := poseFromArgs(c)
	if err != nil {
		return err
	}
	script, err := universalrobots.MoveL(pose, moveParams(c, universalrobots.DefaultLinearMoveParams()))
	return writeScript(c.App.Writer, script, err)
}

// ScriptRelativeAction is the corresponding Action for 'script relative'.
func ScriptRelativeAction(c *cli.Context) error {
	pose, err := poseFromArgs(c)
	if err != nil {
		return err
	}
	params := moveParams(c, universalrobots.DefaultLinearMoveParams())
	move := universalrobots.MoveJRelative
	if c.Bool(flagLinear) {
		move = universalrobots.MoveLRelative
	}
	script, err := move(pose, params)
	return writeScript(c.App.Writer, script, err)
}

// ScriptHomeAction is the corresponding Action for 'script home'.
func ScriptHomeAction(c *cli.Context) error {
	script, err := universalrobots.Home(moveParams(c, universalrobots.DefaultHomeParams()))
	return writeScript(c.App.Writer, script, err)
}

// ScriptStopAction is the corresponding Action for 'script stop'.
func ScriptStopAction(c *cli.Context) error {
	stop, a := universalrobots.StopJ, universalrobots.DefaultStopJAcceleration
	if c.Bool(flagLinear) {
		stop, a = universalrobots.StopL, universalrobots.DefaultStopLAcceleration
	}
	if c.IsSet(flagAcceleration) {
		a = c.Float64(flagAcceleration)
	}
	script, err := stop(a)
	return writeScript(c.App.Writer, script, err)
}

// ScriptTeachAction is the corresponding Action for 'script teach'.
func ScriptTeachAction(c *cli.Context) error {
	return writeScript(c.App.Writer, universalrobots.TeachModeProgram(), nil)
}
