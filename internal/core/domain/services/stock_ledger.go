package services

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/pkg/errs"
)

// StockLedger is a domain service that applies an order's reservation across
// the stock records of its line items as one all-or-nothing unit.
//
// The ledger operates on aggregates the caller has already loaded under row
// locks; it does not touch persistence itself. Reserve verifies every item
// before decrementing any, so a failure leaves all records unchanged, and the
// surrounding transaction guarantees the same at the database level.
//
// Business rules:
//   - every line item must have a matching stock record
//   - every item's available quantity must cover the requested quantity,
//     with quantities summed when an item appears on several line items
//   - a single shortfall or missing item fails the whole reservation
type StockLedger struct{}

// NewStockLedger creates a new StockLedger instance.
func NewStockLedger() StockLedger {
	return StockLedger{}
}

// CheckAvailability reports whether every line item can be reserved from the
// given stock records. Any missing item or shortfall fails the whole check.
func (l StockLedger) CheckAvailability(stocks []*stock.Stock, items []order.LineItem) bool {
	index := indexByItemID(stocks)
	itemIDs, totals := totalByItemID(items)

	for _, itemID := range itemIDs {
		s, ok := index[itemID]
		if !ok || !s.CanReserve(totals[itemID]) {
			return false
		}
	}

	return true
}

// Reserve decrements every item's stock by the requested quantity, or fails
// without touching any record.
//
// Returns an ObjectNotFoundError for a line item without stock record (a
// data-integrity problem rather than an ordinary business condition) and an
// InsufficientStockError for a shortfall.
func (l StockLedger) Reserve(stocks []*stock.Stock, items []order.LineItem) error {
	index := indexByItemID(stocks)
	itemIDs, totals := totalByItemID(items)

	// verify everything first so a late failure cannot leave earlier
	// records decremented
	for _, itemID := range itemIDs {
		s, ok := index[itemID]
		if !ok {
			return errs.NewObjectNotFoundError("itemId", itemID.String())
		}
		if !s.CanReserve(totals[itemID]) {
			return &stock.InsufficientStockError{
				ItemID:    itemID,
				Available: s.AvailableQty(),
				Requested: totals[itemID],
			}
		}
	}

	for _, itemID := range itemIDs {
		if err := index[itemID].Reserve(totals[itemID]); err != nil {
			return err
		}
	}

	return nil
}

// totalByItemID sums the requested quantity per item, in the order items
// first appear. An item split across several line items is checked and
// reserved as one combined demand against its single stock record.
func totalByItemID(items []order.LineItem) ([]kernel.UUID, map[kernel.UUID]int) {
	itemIDs := make([]kernel.UUID, 0, len(items))
	totals := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		if _, ok := totals[item.ItemID()]; !ok {
			itemIDs = append(itemIDs, item.ItemID())
		}
		totals[item.ItemID()] += item.Quantity()
	}
	return itemIDs, totals
}

func indexByItemID(stocks []*stock.Stock) map[kernel.UUID]*stock.Stock {
	index := make(map[kernel.UUID]*stock.Stock, len(stocks))
	for _, s := range stocks {
		index[s.ItemID()] = s
	}
	return index
}
