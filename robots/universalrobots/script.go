package universalrobots

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
)

// ErrNonFinite is returned when a script argument is NaN or infinite.
var ErrNonFinite = errors.New("URScript arguments must be finite")

// HomeJoints is the stretched upright configuration the arm returns to on Home.
var HomeJoints = referenceframe.JointVector{0, -1.5708, 0, -1.5708, 0, 0}

// Every command returned by this file is terminated with a newline so it can be written to the
// controller's script port as is.

// MoveParams are the trailing arguments of movej, movel and servoc. A positive Time overrides the
// acceleration and velocity.
type MoveParams struct {
	Acceleration float64 `json:"a"`
	Velocity     float64 `json:"v"`
	Time         float64 `json:"t"`
	BlendRadius  float64 `json:"r"`
}

// DefaultJointMoveParams are used for absolute joint space moves.
func DefaultJointMoveParams() MoveParams {
	return MoveParams{Acceleration: 3, Velocity: 0.1}
}

// DefaultLinearMoveParams are used for linear, relative and delta moves.
func DefaultLinearMoveParams() MoveParams {
	return MoveParams{Acceleration: 1.2, Velocity: 0.1}
}

// DefaultHomeParams are used by Home.
func DefaultHomeParams() MoveParams {
	return MoveParams{Acceleration: 1, Velocity: 0.5}
}

func (p MoveParams) validate() error {
	if err := checkFinite("move parameters", p.Acceleration, p.Velocity, p.Time, p.BlendRadius); err != nil {
		return err
	}
	if p.Acceleration <= 0 || p.Velocity <= 0 {
		return errors.Errorf("acceleration and velocity must be positive, got a=%v v=%v", p.Acceleration, p.Velocity)
	}
	if p.Time < 0 || p.BlendRadius < 0 {
		return errors.Errorf("time and blend radius cannot be negative, got t=%v r=%v", p.Time, p.BlendRadius)
	}
	return nil
}

func (p MoveParams) String() string {
	return fmt.Sprintf("a=%s, v=%s, t=%s, r=%s",
		formatFloat(p.Acceleration), formatFloat(p.Velocity), formatFloat(p.Time), formatFloat(p.BlendRadius))
}

// ServoParams are the trailing arguments of servoj.
type ServoParams struct {
	Time          float64 `json:"t"`
	LookaheadTime float64 `json:"lookahead_time"`
	Gain          float64 `json:"gain"`
}

// DefaultServoParams returns the default lookahead and gain with the given blocking time.
func DefaultServoParams(t float64) ServoParams {
	return ServoParams{Time: t, LookaheadTime: 0.1, Gain: 300}
}

func (p ServoParams) validate() error {
	if err := checkFinite("servo parameters", p.Time, p.LookaheadTime, p.Gain); err != nil {
		return err
	}
	if p.Time <= 0 {
		return errors.Errorf("servo time must be positive, got %v", p.Time)
	}
	if p.LookaheadTime < 0.03 || p.LookaheadTime > 0.2 {
		return errors.Errorf("lookahead time must be within [0.03, 0.2], got %v", p.LookaheadTime)
	}
	if p.Gain < 100 || p.Gain > 2000 {
		return errors.Errorf("gain must be within [100, 2000], got %v", p.Gain)
	}
	return nil
}

func (p ServoParams) String() string {
	return fmt.Sprintf("t=%s, lookahead_time=%s, gain=%s",
		formatFloat(p.Time), formatFloat(p.LookaheadTime), formatFloat(p.Gain))
}

// SpeedParams are the trailing arguments of speedj and speedl. Time is how long the function runs
// before returning.
type SpeedParams struct {
	Acceleration float64 `json:"a"`
	Time         float64 `json:"t"`
}

// DefaultSpeedParams are used for joint and tool speed commands.
func DefaultSpeedParams() SpeedParams {
	return SpeedParams{Acceleration: 2, Time: 20}
}

func (p SpeedParams) validate() error {
	if err := checkFinite("speed parameters", p.Acceleration, p.Time); err != nil {
		return err
	}
	if p.Acceleration <= 0 || p.Time < 0 {
		return errors.Errorf("acceleration must be positive and time non-negative, got a=%v t=%v", p.Acceleration, p.Time)
	}
	return nil
}

func (p SpeedParams) String() string {
	return fmt.Sprintf("a=%s, t=%s", formatFloat(p.Acceleration), formatFloat(p.Time))
}

// MoveJ moves to joint positions, interpolating in joint space.
func MoveJ(q referenceframe.JointVector, params MoveParams) (string, error) {
	joints, err := FormatJointList(q)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return line("movej(%s, %s)", joints, params), nil
}

// MoveJToPose moves to a base frame tool pose, interpolating in joint space. The controller picks the
// inverse kinematics solution.
func MoveJToPose(p spatialmath.Pose, params MoveParams) (string, error) {
	return poseCommand("movej", p, params)
}

// MoveL moves the tool linearly to a base frame pose.
func MoveL(p spatialmath.Pose, params MoveParams) (string, error) {
	return poseCommand("movel", p, params)
}

// ServoC moves the tool in a circular blend towards a base frame pose. Time is not an argument of servoc
// and is ignored.
func ServoC(p spatialmath.Pose, params MoveParams) (string, error) {
	pose, err := FormatPose(p)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return line("servoc(%s, a=%s, v=%s, r=%s)",
		pose, formatFloat(params.Acceleration), formatFloat(params.Velocity), formatFloat(params.BlendRadius)), nil
}

func poseCommand(fn string, p spatialmath.Pose, params MoveParams) (string, error) {
	pose, err := FormatPose(p)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return line("%s(%s, %s)", fn, pose, params), nil
}

// MoveJRelative moves by a pose expressed in the current tool frame, interpolating in joint space.
func MoveJRelative(relative spatialmath.Pose, params MoveParams) (string, error) {
	return relativeProgram("movej", relative, params)
}

// MoveLRelative moves the tool linearly by a pose expressed in the current tool frame.
func MoveLRelative(relative spatialmath.Pose, params MoveParams) (string, error) {
	return relativeProgram("movel", relative, params)
}

func relativeProgram(fn string, relative spatialmath.Pose, params MoveParams) (string, error) {
	pose, err := FormatPose(relative)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return NewProgram("f").
		Add("wp1=get_actual_tcp_pose()").
		Addf("%s(pose_trans(wp1,%s), %s)", fn, pose, params).
		String(), nil
}

// MoveJDelta offsets every joint from its current position by delta radians.
func MoveJDelta(delta referenceframe.JointVector, params MoveParams) (string, error) {
	if err := checkFinite("joint delta", delta[:]...); err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	prog := NewProgram("f").Add("b1=get_actual_joint_positions()")
	for i, d := range delta {
		prog.Addf("b1[%d]=b1[%d]+%s", i, i, formatFloat(d))
	}
	return prog.Addf("movej(b1, %s)", params).String(), nil
}

// ServoJ servos to joint positions, blocking for params.Time.
func ServoJ(q referenceframe.JointVector, params ServoParams) (string, error) {
	joints, err := FormatJointList(q)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return line("servoj(%s, %s)", joints, params), nil
}

// ServoJRelative servos to a pose expressed in the current tool frame, letting the controller resolve
// joints nearest to the current ones.
func ServoJRelative(relative spatialmath.Pose, params ServoParams) (string, error) {
	pose, err := FormatPose(relative)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return NewProgram("f").
		Add("wp1=get_actual_tcp_pose()").
		Add("q0=get_actual_joint_positions()").
		Addf("servoj(get_inverse_kin(pose_trans(wp1,%s),q0), %s)", pose, params).
		String(), nil
}

// SpeedJ accelerates every joint to the given speed in rad/s.
func SpeedJ(speeds referenceframe.JointVector, params SpeedParams) (string, error) {
	joints, err := FormatJointList(speeds)
	if err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return line("speedj(%s, %s)", joints, params), nil
}

// SpeedL accelerates the tool to a base frame linear speed in m/s and angular speed in rad/s.
func SpeedL(linear, angular r3.Vector, params SpeedParams) (string, error) {
	vals := []float64{linear.X, linear.Y, linear.Z, angular.X, angular.Y, angular.Z}
	if err := checkFinite("tool speed", vals...); err != nil {
		return "", err
	}
	if err := params.validate(); err != nil {
		return "", err
	}
	return line("speedl(%s, %s)", formatList(vals), params), nil
}

// StopJ decelerates joint speeds to zero with the given joint acceleration in rad/s^2.
func StopJ(a float64) (string, error) {
	return stopCommand("stopj", a)
}

// StopL decelerates the tool speed to zero with the given tool acceleration in m/s^2.
func StopL(a float64) (string, error) {
	return stopCommand("stopl", a)
}

// DefaultStopJAcceleration and DefaultStopLAcceleration are the usual decelerations for StopJ and StopL.
const (
	DefaultStopJAcceleration = 0.2
	DefaultStopLAcceleration = 2.0
)

func stopCommand(fn string, a float64) (string, error) {
	if err := checkFinite(fn, a); err != nil {
		return "", err
	}
	if a <= 0 {
		return "", errors.Errorf("%s acceleration must be positive, got %v", fn, a)
	}
	return line("%s(%s)", fn, formatFloat(a)), nil
}

// Home moves to HomeJoints.
func Home(params MoveParams) (string, error) {
	return MoveJ(HomeJoints, params)
}

// SetTCP sets the tool center point relative to the flange.
func SetTCP(tcp spatialmath.Pose) (string, error) {
	pose, err := FormatPose(tcp)
	if err != nil {
		return "", err
	}
	return line("set_tcp(%s)", pose), nil
}

var textMsgEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", " ", "\n", " ")

// TextMsg writes msg to the controller log.
func TextMsg(msg string) string {
	return line(`textmsg("%s")`, textMsgEscaper.Replace(msg))
}

// TeachModeProgram keeps the arm in freedrive until EndTeachMode is sent.
func TeachModeProgram() string {
	return "def teach():\n" +
		"\twhile(True):\n" +
		"\t\tteach_mode()\n" +
		"\t\tsleep(0.01)\n" +
		"\tend\n" +
		"end\n" +
		"teach()\n"
}

// EndTeachMode leaves freedrive.
func EndTeachMode() string {
	return "end_teach_mode()\n"
}

// PowerDown shuts the robot and controller off.
func PowerDown() string {
	return "powerdown()\n"
}

// SetDigitalOut sets one of the eight standard digital outputs of the control box.
func SetDigitalOut(n int, on bool) (string, error) {
	if n < 0 || n > 7 {
		return "", errors.Errorf("standard digital output must be within [0, 7], got %d", n)
	}
	state := "False"
	if on {
		state = "True"
	}
	return line("set_standard_digital_out(%d,%s)", n, state), nil
}

// AnalogDomain selects what a standard analog output drives.
type AnalogDomain int

// The analog output domains, numbered as the controller expects them.
const (
	AnalogCurrent AnalogDomain = iota
	AnalogVoltage
)

// SetAnalogOut sets one of the two standard analog outputs to a fraction of its range.
func SetAnalogOut(n int, domain AnalogDomain, fraction float64) (string, error) {
	if n < 0 || n > 1 {
		return "", errors.Errorf("standard analog output must be 0 or 1, got %d", n)
	}
	if domain != AnalogCurrent && domain != AnalogVoltage {
		return "", errors.Errorf("unknown analog domain %d", domain)
	}
	if err := checkFinite("analog output", fraction); err != nil {
		return "", err
	}
	if fraction < 0 || fraction > 1 {
		return "", errors.Errorf("analog output must be within [0, 1], got %v", fraction)
	}
	return NewProgram("f").
		Addf("set_analog_outputdomain(%d,%d)", n, domain).
		Addf("set_standard_analog_out(%d,%s)", n, formatFloat(fraction)).
		String(), nil
}

// Program is a URScript function definition. The controller runs it as soon as the whole definition
// has been received.
type Program struct {
	name  string
	lines []string
}

// NewProgram starts an empty program.
func NewProgram(name string) *Program {
	return &Program{name: name}
}

// Add appends a statement.
func (p *Program) Add(statement string) *Program {
	p.lines = append(p.lines, statement)
	return p
}

// Addf appends a formatted statement.
func (p *Program) Addf(format string, args ...interface{}) *Program {
	return p.Add(fmt.Sprintf(format, args...))
}

func (p *Program) String() string {
	var sb strings.Builder
	sb.WriteString("def " + p.name + "():\n")
	for _, l := range p.lines {
		sb.WriteString(l + "\n")
	}
	sb.WriteString("end\n")
	return sb.String()
}

func line(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...) + "\n"
}

func checkFinite(what string, vals ...float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrNonFinite, "%s[%d] is %v", what, i, v)
		}
	}
	return nil
}

// formatFloat prints the shortest decimal that parses back to exactly v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatList(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
