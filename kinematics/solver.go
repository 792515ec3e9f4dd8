package kinematics

import (
	"github.com/pkg/errors"

	"go.viam.com/urkin/logging"
	"go.viam.com/urkin/spatialmath"
)

// zeroThresh is the tolerance under which the solver treats a quantity as zero or snaps it to a boundary.
const zeroThresh = 1e-8

// Solver computes closed form kinematics for one link geometry. It holds no mutable state and is safe for
// concurrent use.
type Solver struct {
	geometry  LinkGeometry
	envelope  *Envelope
	converter spatialmath.AxisAngleConverter
	metric    Metric
	logger    logging.Logger
}

// Option customizes a Solver at construction.
type Option func(*Solver)

// WithEnvelope sets the operating envelope applied to inverse kinematics solutions. A nil envelope
// disables the correction, leaving every joint in [0, 2pi).
func WithEnvelope(envelope *Envelope) Option {
	return func(s *Solver) {
		if envelope == nil {
			s.envelope = nil
			return
		}
		e := *envelope
		s.envelope = &e
	}
}

// WithAxisAngleConverter sets the converter used by the pose based entry points.
func WithAxisAngleConverter(converter spatialmath.AxisAngleConverter) Option {
	return func(s *Solver) {
		s.converter = converter
	}
}

// WithMetric sets the joint space metric used to select the nearest solution.
func WithMetric(metric Metric) Option {
	return func(s *Solver) {
		s.metric = metric
	}
}

// NewSolver returns a solver for the given geometry. Unless overridden by options it applies
// DefaultEnvelope, the default axis angle converter and the squared norm metric.
func NewSolver(geometry LinkGeometry, logger logging.Logger, opts ...Option) (*Solver, error) {
	if err := geometry.Validate("geometry"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("kinematics")
	}
	s := &Solver{
		geometry:  geometry,
		envelope:  DefaultEnvelope(),
		converter: spatialmath.NewAxisAngleConverter(),
		metric:    NewSquaredNormMetric(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metric == nil {
		return nil, errors.New("solver metric cannot be nil")
	}
	return s, nil
}

// Geometry returns the link geometry the solver was built with.
func (s *Solver) Geometry() LinkGeometry {
	return s.geometry
}

// Envelope returns a copy of the operating envelope, or nil when it is disabled.
func (s *Solver) Envelope() *Envelope {
	if s.envelope == nil {
		return nil
	}
	e := *s.envelope
	return &e
}
