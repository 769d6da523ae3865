// Package ports defines repository interfaces for the order domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their line items and full status history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// New status history entries are appended; existing entries are never
	// rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its line items and status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order like Get, but locks its row for the
	// rest of the transaction. Status changes load through this method so
	// two concurrent updates cannot both validate against the same current
	// status; the second waits and sees the first one's result.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWaitingForPaymentSince retrieves orders still waiting for payment
	// that were placed at or before the given cutoff. Used by the stale
	// payment job to find orders whose payment never arrived.
	GetAllWaitingForPaymentSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
