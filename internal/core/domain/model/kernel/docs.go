// Package kernel contains shared value objects used across all domain models.
// It currently provides the UUID value object, which wraps github.com/google/uuid
// to guarantee that identifiers are always constructed and validated explicitly.
package kernel
