package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableStockQueryHandler reads sellable stock straight from the
// stocks table. Quantities reflect committed reservations only; rows locked
// by in-flight checkouts are not awaited.
type GetAvailableStockQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableStockQueryHandler creates a handler for available stock queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableStockQueryHandler(db *gorm.DB) GetAvailableStockQueryHandler {
	return GetAvailableStockQueryHandler{db: db}
}

// Handle executes the query to retrieve all items with stock available.
// Results are sorted by item name for consistent output.
func (h GetAvailableStockQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableStockQuery,
) ([]GetAvailableStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stocks := make([]GetAvailableStockQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			item_id,
			name,
			available_qty
		FROM stocks
		WHERE available_qty > 0
		ORDER BY name, item_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stockResp GetAvailableStockQueryResponse
		var itemID uuid.UUID

		if err = rows.Scan(&itemID, &stockResp.Name, &stockResp.AvailableQty); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return nil, idErr
		}
		stockResp.ItemID = id

		stocks = append(stocks, stockResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stocks, nil
}
