// Package validation provides common validation utilities for the lazyflow library.
package validation

import (
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return lferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that an integer value is non-negative (>= 0).
// Returns a ValidationError if the value is negative.
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return lferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNonZero validates that an integer value is not zero.
func ValidateNonZero(module, field string, value int) error {
	if value == 0 {
		return lferrors.NewValidationError(module, field, value, "must not be zero").
			WithHint("use a positive or negative " + field)
	}
	return nil
}

// ValidateOrdered validates that lo <= hi for an inclusive interval.
func ValidateOrdered(module, field string, lo, hi int) error {
	if lo > hi {
		return lferrors.NewValidationError(module, field, [2]int{lo, hi}, "lower bound exceeds upper bound").
			WithHint("swap the bounds")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return lferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return lferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
