package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestAssertType(t *testing.T) {
	one := 1
	_, err := AssertType[string](one)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldEqual, NewUnexpectedTypeError[string](one).Error())

	asserted, err := AssertType[float64](2.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, asserted, test.ShouldEqual, 2.5)
}
