package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCheckStockAvailabilityQueryIsNotConstructed = errors.New(
		"CheckStockAvailabilityQuery must be created via NewCheckStockAvailabilityQuery constructor",
	)
	ErrCheckItemsAreRequired = errors.New("at least one line item is required")
)

// CheckStockAvailabilityQuery asks whether every given line item could be
// reserved right now. This is a non-binding read: it takes no locks, so a
// positive answer can still be invalidated by a concurrent checkout. The
// authoritative check happens inside the order placement transaction.
type CheckStockAvailabilityQuery struct {
	items []order.LineItem

	guard guard.ConstructorGuard
}

// NewCheckStockAvailabilityQuery creates an availability check for the given
// line items. At least one item is required.
func NewCheckStockAvailabilityQuery(items []order.LineItem) (CheckStockAvailabilityQuery, error) {
	if len(items) == 0 {
		return CheckStockAvailabilityQuery{}, ErrCheckItemsAreRequired
	}

	query := CheckStockAvailabilityQuery{
		items: make([]order.LineItem, len(items)),
		guard: guard.NewConstructorGuard(),
	}
	copy(query.items, items)

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCheckStockAvailabilityQueryIsNotConstructed if validation fails.
func (q CheckStockAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckStockAvailabilityQueryIsNotConstructed)
}

// Items returns the line items to check.
func (q CheckStockAvailabilityQuery) Items() []order.LineItem {
	items := make([]order.LineItem, len(q.items))
	copy(items, q.items)
	return items
}

// UnavailableItem describes one line item that cannot be fulfilled.
// A missing stock record is reported with Available = 0.
type UnavailableItem struct {
	ItemID    kernel.UUID
	Requested int
	Available int
}

// CheckStockAvailabilityQueryResponse is the result of an availability check.
// Available is true only when every requested item can be fulfilled.
type CheckStockAvailabilityQueryResponse struct {
	Available   bool
	Unavailable []UnavailableItem
}
