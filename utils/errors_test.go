package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestConfigValidationErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("kinematics.geometry", "d6")
	test.That(t, err.Error(), test.ShouldEqual, `error validating "kinematics.geometry": "d6" is required`)

	err = NewConfigValidationError("", errors.New("bad"))
	test.That(t, err.Error(), test.ShouldEqual, "error validating config: bad")
}

func TestNewUnexpectedTypeError(t *testing.T) {
	err := NewUnexpectedTypeError[float64]("1.0")
	test.That(t, err.Error(), test.ShouldEqual, "expected float64 but got string")
}
