package kinematics

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/urkin/referenceframe"
	"go.viam.com/urkin/utils"
)

// Envelope moves solutions into the operating range a controller expects: once the base, shoulder or
// elbow angle (in [0, 2pi) after solving) exceeds its threshold, 2pi is subtracted from it.
// Thresholds are in degrees.
type Envelope struct {
	Base     float64 `json:"base"`
	Shoulder float64 `json:"shoulder"`
	Elbow    float64 `json:"elbow"`
}

// DefaultEnvelope returns the thresholds used with UR5 controllers: 295, 5 and 150 degrees.
func DefaultEnvelope() *Envelope {
	return &Envelope{Base: 295, Shoulder: 5, Elbow: 150}
}

// Validate checks that every threshold lies in [0, 360].
func (e *Envelope) Validate(path string) error {
	names := [3]string{"base", "shoulder", "elbow"}
	for i, v := range [3]float64{e.Base, e.Shoulder, e.Elbow} {
		if math.IsNaN(v) || v < 0 || v > 360 {
			return errors.Errorf("%s must be within [0, 360] degrees, got %v", fieldPath(path, names[i]), v)
		}
	}
	return nil
}

// Apply returns q with the envelope correction applied. A nil envelope leaves q untouched.
func (e *Envelope) Apply(q referenceframe.JointVector) referenceframe.JointVector {
	if e == nil {
		return q
	}
	limits := [3]float64{e.Base, e.Shoulder, e.Elbow}
	for i, limit := range limits {
		if q[i] > utils.DegToRad(limit) {
			q[i] -= 2 * math.Pi
		}
	}
	return q
}
