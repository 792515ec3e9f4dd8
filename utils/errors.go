package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns an error specifying that there was an error validating a config
// at the given dotted path.
func NewConfigValidationError(path string, err error) error {
	if path == "" {
		return errors.Wrap(err, "error validating config")
	}
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns an error specifying that a required field is missing.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError[ExpectedT any](actual interface{}) error {
	return errors.Errorf("expected %T but got %T", *new(ExpectedT), actual)
}
