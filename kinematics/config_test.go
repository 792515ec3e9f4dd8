package kinematics

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/urkin/logging"
)

func init() {
	RegisterGeometry("test-ur5", ur5Geometry)
}

func TestRegistry(t *testing.T) {
	g, ok := LookupGeometry("test-ur5")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, g, test.ShouldResemble, ur5Geometry)
	test.That(t, RegisteredModels(), test.ShouldContain, "test-ur5")

	_, ok = LookupGeometry("nope")
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, func() { RegisterGeometry("test-ur5", ur5Geometry) }, test.ShouldPanic)
	test.That(t, func() { RegisterGeometry("test-bad", LinkGeometry{}) }, test.ShouldPanic)
}

func TestGeometryValidate(t *testing.T) {
	test.That(t, ur5Geometry.Validate("geometry"), test.ShouldBeNil)
	test.That(t, ur5Geometry.Reach(), test.ShouldAlmostEqual, 0.81725)

	bad := ur5Geometry
	bad.A2 = 0
	err := bad.Validate("geometry")
	test.That(t, errors.Is(err, ErrInvalidGeometry), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "geometry.a2 must be non-zero")

	bad = ur5Geometry
	bad.D1 = math.NaN()
	bad.D6 = 0
	err = bad.Validate("")
	test.That(t, err.Error(), test.ShouldContainSubstring, "d1 is not finite")
	test.That(t, err.Error(), test.ShouldContainSubstring, "d6 must be non-zero")

	_, err = NewSolver(bad, nil)
	test.That(t, errors.Is(err, ErrInvalidGeometry), test.ShouldBeTrue)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Validate("arm")
	test.That(t, err, test.ShouldBeError, `error validating "arm": "model" is required`)

	cfg = &Config{Model: "test-ur5"}
	deps, err := cfg.Validate("arm")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, deps, test.ShouldResemble, []string{"test-ur5"})

	cfg = &Config{Model: "unknown"}
	_, err = cfg.Validate("arm")
	test.That(t, err, test.ShouldBeError, `error validating "arm": unknown model "unknown"`)

	// an explicit geometry stands in for an unregistered model
	g := ur5Geometry
	cfg = &Config{Model: "custom", Geometry: &g}
	_, err = cfg.Validate("arm")
	test.That(t, err, test.ShouldBeNil)

	cfg = &Config{Geometry: &g, Envelope: DefaultEnvelope(), DisableEnvelope: true}
	_, err = cfg.Validate("arm")
	test.That(t, err.Error(), test.ShouldContainSubstring, "envelope_degs cannot be set when disable_envelope is true")

	cfg = &Config{Geometry: &g, Envelope: &Envelope{Base: -1}}
	_, err = cfg.Validate("arm")
	test.That(t, err.Error(), test.ShouldContainSubstring, "arm.envelope_degs.base must be within [0, 360] degrees")
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"model": "test-ur5", "envelope_degs": {"base": 300, "shoulder": 10, "elbow": 160}}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Model, test.ShouldEqual, "test-ur5")
	test.That(t, cfg.Envelope, test.ShouldResemble, &Envelope{Base: 300, Shoulder: 10, Elbow: 160})

	cfg, err = ParseConfig([]byte(`{"geometry": {"d1": 0.1, "a2": -0.4, "a3": -0.4, "d4": 0.1, "d5": 0.1, "d6": 0.1}}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Geometry, test.ShouldResemble, &LinkGeometry{D1: 0.1, A2: -0.4, A3: -0.4, D4: 0.1, D5: 0.1, D6: 0.1})

	_, err = ParseConfig([]byte(`{"model": `))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseConfig([]byte(`{}`))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConfigFromAttributes(t *testing.T) {
	cfg, err := ConfigFromAttributes(map[string]interface{}{
		"model":            "test-ur5",
		"disable_envelope": true,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, &Config{Model: "test-ur5", DisableEnvelope: true})

	cfg, err = ConfigFromAttributes(map[string]interface{}{
		"geometry": map[string]interface{}{"d1": 0.1, "a2": -0.4, "a3": "-0.4", "d4": 0.1, "d5": 0.1, "d6": 0.1},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Geometry.A3, test.ShouldEqual, -0.4)

	_, err = ConfigFromAttributes(map[string]interface{}{"model": "test-ur5", "speed": 3})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ConfigFromAttributes("test-ur5")
	test.That(t, err, test.ShouldBeError, "expected map[string]interface {} but got string")
}

func TestNewSolverFromConfig(t *testing.T) {
	logger := logging.NewTestLogger(t)

	s, err := NewSolverFromConfig(&Config{Model: "test-ur5"}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Geometry(), test.ShouldResemble, ur5Geometry)
	test.That(t, s.Envelope(), test.ShouldResemble, DefaultEnvelope())

	s, err = NewSolverFromConfig(&Config{Model: "test-ur5", DisableEnvelope: true}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Envelope(), test.ShouldBeNil)

	custom := &Envelope{Base: 300, Shoulder: 10, Elbow: 160}
	s, err = NewSolverFromConfig(&Config{Model: "test-ur5", Envelope: custom}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Envelope(), test.ShouldResemble, custom)

	g := ur5Geometry
	g.D1 = 0.2
	s, err = NewSolverFromConfig(&Config{Model: "test-ur5", Geometry: &g}, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Geometry().D1, test.ShouldEqual, 0.2)

	_, err = NewSolverFromConfig(&Config{Model: "unknown"}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
