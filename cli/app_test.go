package cli

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/urkin/kinematics"
	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/robots/universalrobots"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"urkin"}, args...))
	return out.String(), errOut.String(), err
}

func TestForwardAction(t *testing.T) {
	out, errOut, err := run(t, "forward", "[0,-1.5707963267948966,0,-1.5707963267948966,0,0]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)
	pose, err := universalrobots.ParsePose(strings.TrimSpace(out))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pose.Point.Y, test.ShouldAlmostEqual, -0.19145, 1e-9)
	test.That(t, pose.Point.Z, test.ShouldAlmostEqual, 1.001059, 1e-9)
	test.That(t, pose.Orientation.Norm(), test.ShouldAlmostEqual, math.Pi, 1e-9)

	degOut, _, err := run(t, "forward", "--degrees", "--", "0", "-90", "0", "-90", "0", "0")
	test.That(t, err, test.ShouldBeNil)
	degPose, err := universalrobots.ParsePose(strings.TrimSpace(degOut))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, degPose.Point.Sub(pose.Point).Norm(), test.ShouldBeLessThan, 1e-9)

	_, _, err = run(t, "forward", "[1,2,3]")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = run(t, "--model", "ur20", "forward", "[0,0,0,0,0,0]")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInverseAndNearestActions(t *testing.T) {
	q := referenceframe.JointVector{0.3, -1.2, 1.1, -0.7, 1.3, 0.4}
	joints, err := universalrobots.FormatJointList(q)
	test.That(t, err, test.ShouldBeNil)
	out, _, err := run(t, "forward", joints)
	test.That(t, err, test.ShouldBeNil)
	pose := strings.TrimSpace(out)

	out, _, err = run(t, "inverse", pose)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "WRIST3")
	test.That(t, out, test.ShouldContainSubstring, "| 1 |")

	out, _, err = run(t, "nearest", "--reference", joints, pose)
	test.That(t, err, test.ShouldBeNil)
	got, err := universalrobots.ParseJointList(strings.TrimSpace(out))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.AlmostEqual(q, 1e-6), test.ShouldBeTrue)

	_, _, err = run(t, "inverse", "p[5,0,0,0,0,0]")
	test.That(t, errors.Is(err, kinematics.ErrUnreachablePose), test.ShouldBeTrue)
	_, _, err = run(t, "nearest", "p[5,0,0,0,0,0]")
	test.That(t, errors.Is(err, kinematics.ErrUnreachablePose), test.ShouldBeTrue)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.json")
	err := os.WriteFile(path, []byte(`{"model": "ur5", "disable_envelope": true}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	out, _, err := run(t, "--config", path, "nearest", "--reference", "[0,0,0,0,0,0]",
		"p[0,-0.19145,1.001059,0,2.221441469079183,-2.221441469079183]")
	test.That(t, err, test.ShouldBeNil)
	q, err := universalrobots.ParseJointList(strings.TrimSpace(out))
	test.That(t, err, test.ShouldBeNil)
	// without the envelope the shoulder stays in [0, 2pi)
	test.That(t, q[referenceframe.Shoulder], test.ShouldBeGreaterThanOrEqualTo, 0.0)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "models")
	test.That(t, err, test.ShouldBeNil)
	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "forward", "[0,0,0,0,0,0]")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestScriptActions(t *testing.T) {
	out, _, err := run(t, "script", "movej", "[0,-1.5,0,0,0,0]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "movej([0,-1.5,0,0,0,0], a=3, v=0.1, t=0, r=0)\n")

	out, _, err = run(t, "script", "movej", "-a", "1", "--velocity", "0.2", "[0,-1.5,0,0,0,0]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "movej([0,-1.5,0,0,0,0], a=1, v=0.2, t=0, r=0)\n")

	out, _, err = run(t, "script", "movel", "p[0.1,0.2,0.3,0,3.14,0]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "movel(p[0.1,0.2,0.3,0,3.14,0], a=1.2, v=0.1, t=0, r=0)\n")

	out, _, err = run(t, "script", "relative", "--linear", "p[0,0,0.02,0,0,0]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "movel(pose_trans(wp1,p[0,0,0.02,0,0,0])")

	out, _, err = run(t, "script", "home")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "movej([0,-1.5708,0,-1.5708,0,0], a=1, v=0.5, t=0, r=0)\n")

	out, _, err = run(t, "script", "stop")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "stopj(0.2)\n")
	out, _, err = run(t, "script", "stop", "--linear", "-a", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "stopl(3)\n")

	out, _, err = run(t, "script", "teach")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, universalrobots.TeachModeProgram())

	_, _, err = run(t, "script", "movej", "-v", "0", "[0,0,0,0,0,0]")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVerifyAction(t *testing.T) {
	out, _, err := run(t, "verify", "--samples", "200")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "200")
	test.That(t, out, test.ShouldContainSubstring, "MAX RESIDUAL")

	_, _, err = run(t, "verify", "--samples", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestModelsAction(t *testing.T) {
	out, _, err := run(t, "models")
	test.That(t, err, test.ShouldBeNil)
	for _, model := range universalrobots.Models {
		test.That(t, out, test.ShouldContainSubstring, model)
	}
	test.That(t, out, test.ShouldContainSubstring, "0.089159")
}

func TestDebugLogging(t *testing.T) {
	_, errOut, err := run(t, "--debug", "forward", "[0,0,0,0,0,0]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "forward kinematics")
	test.That(t, errOut, test.ShouldContainSubstring, "DEBUG")

	logFile := filepath.Join(t.TempDir(), "urkin.log")
	_, _, err = run(t, "--debug", "--log-file", logFile, "forward", "[0,0,0,0,0,0]")
	test.That(t, err, test.ShouldBeNil)
	data, err := os.ReadFile(logFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "forward kinematics")
}
