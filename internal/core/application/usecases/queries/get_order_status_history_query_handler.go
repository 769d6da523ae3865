package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusHistoryQueryHandler reads an order's status trail from the
// order_status_updates table.
type GetOrderStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusHistoryQueryHandler creates a handler for status history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusHistoryQueryHandler(db *gorm.DB) GetOrderStatusHistoryQueryHandler {
	return GetOrderStatusHistoryQueryHandler{db: db}
}

// Handle executes the query. Every persisted order has at least one history
// entry, so an empty result means the order does not exist and is reported
// as an object-not-found error.
func (h GetOrderStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusHistoryQuery,
) ([]GetOrderStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			recorded_at
		FROM order_status_updates
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]GetOrderStatusHistoryQueryResponse, 0)
	for rows.Next() {
		var entry GetOrderStatusHistoryQueryResponse
		var status int

		if err = rows.Scan(&status, &entry.RecordedAt); err != nil {
			return nil, err
		}

		entry.Status = order.Status(status)
		if err = entry.Status.Validate(); err != nil {
			return nil, err
		}

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	return history, nil
}
