// Package validation provides common validation utilities for arguments
// passed to stream combinators, sources and their configuration.
//
// Every helper returns a *errors.ValidationError, which unwraps to
// errors.ErrInvalidConfiguration.
package validation
