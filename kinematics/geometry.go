// Package kinematics implements closed form forward and inverse kinematics for six axis arms with the
// Universal Robots joint layout.
package kinematics

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// LinkGeometry holds the Denavit-Hartenberg parameters of a UR style arm: d1 is the base height, a2 and a3
// the upper arm and forearm lengths (negative by UR convention), d4 d5 d6 the wrist offsets.
// All lengths share one unit, which is the unit poses are expressed in.
type LinkGeometry struct {
	D1 float64 `json:"d1"`
	A2 float64 `json:"a2"`
	A3 float64 `json:"a3"`
	D4 float64 `json:"d4"`
	D5 float64 `json:"d5"`
	D6 float64 `json:"d6"`
}

// Validate checks that every parameter is finite and that the lengths the solver divides by are non zero.
func (g LinkGeometry) Validate(path string) error {
	params := []struct {
		name    string
		value   float64
		divisor bool
	}{
		{"d1", g.D1, false},
		{"a2", g.A2, true},
		{"a3", g.A3, true},
		{"d4", g.D4, false},
		{"d5", g.D5, false},
		{"d6", g.D6, true},
	}
	var err error
	for _, p := range params {
		switch {
		case math.IsNaN(p.value) || math.IsInf(p.value, 0):
			err = multierr.Append(err, errors.Wrapf(ErrInvalidGeometry, "%s is not finite", fieldPath(path, p.name)))
		case p.divisor && p.value == 0:
			err = multierr.Append(err, errors.Wrapf(ErrInvalidGeometry, "%s must be non-zero", fieldPath(path, p.name)))
		}
	}
	return err
}

// Reach returns the largest distance from the shoulder axis the wrist center can be placed at.
func (g LinkGeometry) Reach() float64 {
	return math.Abs(g.A2) + math.Abs(g.A3)
}
