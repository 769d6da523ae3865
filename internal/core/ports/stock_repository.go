package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for stock aggregates.
//
// Reservation flows must load records through GetForUpdate so that the
// check-then-decrement performed by the StockLedger is covered by row locks
// for the whole transaction. Two concurrent reservations of the same item
// serialize on those locks; the loser re-reads the already decremented
// quantity and fails its own availability check instead of overselling.
type StockRepository interface {
	// Add persists a new stock record.
	Add(ctx context.Context, aggregate *stock.Stock) error

	// Update persists the current available quantity of a stock record.
	Update(ctx context.Context, aggregate *stock.Stock) error

	// Get retrieves a single stock record without locking it.
	Get(ctx context.Context, itemID kernel.UUID) (*stock.Stock, error)

	// GetForUpdate retrieves the stock records for the given items under
	// SELECT ... FOR UPDATE row locks, held until the transaction ends.
	// Rows are locked in item ID order to keep concurrent reservations
	// deadlock-free. Missing items are simply absent from the result;
	// callers decide whether absence is an error.
	GetForUpdate(ctx context.Context, itemIDs []kernel.UUID) ([]*stock.Stock, error)
}
