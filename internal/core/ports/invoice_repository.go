package ports

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/invoice"
	"orderflow/internal/core/domain/model/kernel"
)

// ErrAllocationConflict indicates that a sequence allocation lost a race with
// a concurrent transaction (deadlock or serialization failure). The operation
// is safe to retry on a fresh transaction.
var ErrAllocationConflict = errors.New("invoice sequence allocation conflict")

// InvoiceRepository defines the persistence contract for invoices and the
// shared invoice number sequence.
//
// AllocateNextSequence and CommitSequence must run inside one transaction:
// the allocation takes a row lock on the counter, which serializes concurrent
// allocators, and the commit only becomes visible together with the invoice
// itself. A rolled-back transaction releases the lock without advancing the
// counter, so the sequence stays gap-free.
type InvoiceRepository interface {
	// Add persists a new invoice.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// GetByOrderID retrieves the invoice issued for the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)

	// AllocateNextSequence locks the counter row and returns the next
	// sequence value (last committed value plus one, starting at 1). The
	// counter itself is not advanced until CommitSequence.
	// Returns ErrAllocationConflict on a transient lock conflict.
	AllocateNextSequence(ctx context.Context) (int64, error)

	// CommitSequence records the given value as the last used sequence.
	// Must be called in the same transaction as AllocateNextSequence.
	CommitSequence(ctx context.Context, sequence int64) error
}
