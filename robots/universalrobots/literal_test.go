package universalrobots

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/spatialmath"
)

func TestParseJointList(t *testing.T) {
	q, err := ParseJointList(" [0.1, -1.5708,0,3.14159 , 2e-3,-0] ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, referenceframe.JointVector{0.1, -1.5708, 0, 3.14159, 0.002, 0})

	_, err = ParseJointList("[1,2,3]")
	test.That(t, err, test.ShouldBeError, "number of inputs does not match frame DoF, expected 6 but got 3")
	_, err = ParseJointList("[]")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseJointList("1,2,3,4,5,6")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseJointList("[1,2,x,4,5,6]")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "element 2")
}

func TestParsePose(t *testing.T) {
	p, err := ParsePose("p[0.1,-0.2,0.3,0,3.14,0.5]")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldResemble, testPose)

	_, err = ParsePose("[0.1,-0.2,0.3,0,3.14,0.5]")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParsePose("p[0.1,-0.2,0.3]")
	test.That(t, err, test.ShouldBeError, "a pose needs 6 values, got 3")
}

func TestLiteralRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		var q referenceframe.JointVector
		for j := range q {
			q[j] = (rng.Float64() - 0.5) * 4 * math.Pi
		}
		s, err := FormatJointList(q)
		test.That(t, err, test.ShouldBeNil)
		parsed, err := ParseJointList(s)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldResemble, q)

		p := spatialmath.NewPose(
			r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64() * 1e-7},
			r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64() * 1e5, Z: rng.NormFloat64()},
		)
		s, err = FormatPose(p)
		test.That(t, err, test.ShouldBeNil)
		parsedPose, err := ParsePose(s)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsedPose, test.ShouldResemble, p)
	}
}
