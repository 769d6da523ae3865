package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckStockAvailabilityQueryHandler compares requested quantities against
// the stocks table without taking locks.
type CheckStockAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewCheckStockAvailabilityQueryHandler creates a handler for availability checks.
// Requires a GORM database connection for query execution.
func NewCheckStockAvailabilityQueryHandler(db *gorm.DB) CheckStockAvailabilityQueryHandler {
	return CheckStockAvailabilityQueryHandler{db: db}
}

// Handle executes the availability check. Every item that is missing or short
// is reported in the response; the overall answer is positive only when the
// unavailable list is empty.
func (h CheckStockAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckStockAvailabilityQuery,
) (CheckStockAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckStockAvailabilityQueryResponse{}, err
	}

	items := query.Items()
	itemIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ItemID().Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			item_id,
			available_qty
		FROM stocks
		WHERE item_id IN ?
	`, itemIDs).Rows()
	if err != nil {
		return CheckStockAvailabilityQueryResponse{}, err
	}
	defer rows.Close()

	available := make(map[kernel.UUID]int, len(items))
	for rows.Next() {
		var itemID uuid.UUID
		var qty int

		if err = rows.Scan(&itemID, &qty); err != nil {
			return CheckStockAvailabilityQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return CheckStockAvailabilityQueryResponse{}, idErr
		}
		available[id] = qty
	}

	if err = rows.Err(); err != nil {
		return CheckStockAvailabilityQueryResponse{}, err
	}

	response := CheckStockAvailabilityQueryResponse{Available: true}
	for _, item := range items {
		qty := available[item.ItemID()]
		if qty < item.Quantity() {
			response.Available = false
			response.Unavailable = append(response.Unavailable, UnavailableItem{
				ItemID:    item.ItemID(),
				Requested: item.Quantity(),
				Available: qty,
			})
		}
	}

	return response, nil
}
