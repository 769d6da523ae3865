// Package services contains stateless domain services that coordinate logic
// across multiple aggregates. The StockLedger applies an order's reservation
// over the stock records of all its line items as one all-or-nothing unit.
package services
