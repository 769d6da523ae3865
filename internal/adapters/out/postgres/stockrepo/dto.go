// Package stockrepo provides data transfer objects and mapping functions for
// stock persistence.
package stockrepo

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// StockDTO represents the database structure for persisting stock records.
// One row per sellable item.
type StockDTO struct {
	ItemID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	AvailableQty int
}

// TableName specifies the database table name for stock records.
func (StockDTO) TableName() string {
	return "stocks"
}

// fromDomain converts a stock domain aggregate to its database representation.
func fromDomain(aggregate *stock.Stock) StockDTO {
	return StockDTO{
		ItemID:       aggregate.ItemID().Bytes(),
		Name:         aggregate.Name(),
		AvailableQty: aggregate.AvailableQty(),
	}
}

// toDomain converts a database DTO to a stock domain aggregate.
func toDomain(dto StockDTO) (*stock.Stock, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	return stock.RestoreStock(itemID, dto.Name, dto.AvailableQty)
}
