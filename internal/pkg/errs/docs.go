// Package errs provides standardized error types shared across the application.
// It implements a consistent pattern for error creation, formatting, and unwrapping.
//
// The package includes error types for common scenarios:
//   - ObjectNotFoundError: a requested object cannot be found
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed range
//   - ValueIsRequiredError: a required value is missing
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Domain packages declare their own business error types (invalid status
// transition, insufficient stock) following the same shape, so callers can
// classify any failure with errors.Is against a sentinel.
package errs
