// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Orders span three tables: the order row itself, its line
// items, and the append-only status history.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryMethod int       `gorm:"type:smallint"`
	Status         int       `gorm:"type:smallint;index"`
	PlacedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one ordered position of an order.
type LineItemDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity int
}

// TableName specifies the database table name for order line items.
func (LineItemDTO) TableName() string {
	return "order_items"
}

// StatusUpdateDTO is one entry of an order's status trail. Rows are
// append-only; the auto-incremented ID preserves the recording order.
type StatusUpdateDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     int       `gorm:"type:smallint"`
	RecordedAt time.Time
}

// TableName specifies the database table name for order status updates.
func (StatusUpdateDTO) TableName() string {
	return "order_status_updates"
}

// fromDomain converts an order domain aggregate to its database rows.
func fromDomain(aggregate *order.Order) (OrderDTO, []LineItemDTO) {
	items := aggregate.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			OrderID:  aggregate.ID().Bytes(),
			ItemID:   item.ItemID().Bytes(),
			Quantity: item.Quantity(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		DeliveryMethod: int(aggregate.DeliveryMethod()),
		Status:         int(aggregate.Status()),
		PlacedAt:       aggregate.PlacedAt(),
	}, itemDTOs
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate including the status history using
// RestoreOrder.
func toDomain(dto OrderDTO, itemDTOs []LineItemDTO, updateDTOs []StatusUpdateDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(itemID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.Status, 0, len(updateDTOs))
	for _, updateDTO := range updateDTOs {
		status := order.Status(updateDTO.Status)
		if statusErr := status.Validate(); statusErr != nil {
			return nil, statusErr
		}
		history = append(history, status)
	}

	return order.RestoreOrder(
		id,
		order.DeliveryMethod(dto.DeliveryMethod),
		items,
		order.Status(dto.Status),
		history,
		dto.PlacedAt,
	)
}
