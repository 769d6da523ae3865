// Package queries contains read-only operations against the database.
// Implements the Query side of the CQRS architecture: handlers read
// denormalized rows directly over SQL, bypassing the aggregates.
package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetAvailableStockQueryIsNotConstructed = errors.New(
	"GetAvailableStockQuery must be created via NewGetAvailableStockQuery constructor",
)

// GetAvailableStockQuery retrieves every item that currently has stock
// available for reservation. Items whose quantity dropped to zero are
// excluded.
type GetAvailableStockQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableStockQuery creates a query to retrieve sellable stock.
// This is a parameterless query.
func NewGetAvailableStockQuery() GetAvailableStockQuery {
	return GetAvailableStockQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableStockQueryIsNotConstructed if validation fails.
func (q GetAvailableStockQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableStockQueryIsNotConstructed)
}

// GetAvailableStockQueryResponse represents one item's stock position.
type GetAvailableStockQueryResponse struct {
	ItemID       kernel.UUID
	Name         string
	AvailableQty int
}
