package universalrobots

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"

	"go.viam.com/urkin/kinematics"
	"go.viam.com/urkin/logging"
	"go.viam.com/urkin/referenceframe"
)

func TestModels(t *testing.T) {
	test.That(t, Models, test.ShouldResemble, []string{"ur10", "ur3", "ur5", "ur5e"})
	for _, model := range Models {
		_, ok := kinematics.LookupGeometry(model)
		test.That(t, ok, test.ShouldBeTrue)
	}

	g, ok := kinematics.LookupGeometry("ur5")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, g, test.ShouldResemble, kinematics.LinkGeometry{
		D1: 0.089159, A2: -0.425, A3: -0.39225, D4: 0.10915, D5: 0.09465, D6: 0.0823,
	})
}

func TestMakeSolver(t *testing.T) {
	logger := logging.NewTestLogger(t)
	q := referenceframe.JointVector{0.3, -1.2, 1.1, -0.7, 1.3, 0.4}
	for _, model := range Models {
		t.Run(model, func(t *testing.T) {
			s, err := MakeSolver(model, logger)
			test.That(t, err, test.ShouldBeNil)
			got, err := s.NearestTransform(s.Forward(q), q)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, cmp.Equal(got, q, cmpopts.EquateApprox(0, 1e-6)), test.ShouldBeTrue)
		})
	}

	_, err := MakeSolver("ur20", logger)
	test.That(t, err, test.ShouldNotBeNil)
}
