// Package stock provides the inventory aggregate for sellable items.
//
// A Stock record pairs an item identifier with its available quantity.
// Order creation reserves quantity through Reserve, which enforces that the
// quantity never goes negative; the all-or-nothing semantics across a whole
// order's line items are coordinated by the stock ledger domain service and
// the surrounding database transaction.
package stock
