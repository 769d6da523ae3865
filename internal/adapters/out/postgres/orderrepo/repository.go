package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items and initial status history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, itemDTOs := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&itemDTOs).Error; err != nil {
		return err
	}

	if err := r.appendStatusUpdates(ctx, aggregate, 0); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Line items are immutable after placement;
// only the order row is updated and new status history entries are appended.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	var recorded int64
	if err := r.db.WithContext(ctx).
		Model(&StatusUpdateDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&recorded).Error; err != nil {
		return err
	}

	if err := r.appendStatusUpdates(ctx, aggregate, int(recorded)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, with its line items and status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.loadAggregate(ctx, dto)
}

// GetForUpdate retrieves an order like Get, but takes a row lock on the
// order so concurrent status changes on the same order serialize.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.loadAggregate(ctx, dto)
}

// GetAllWaitingForPaymentSince retrieves orders still waiting for payment
// that were placed at or before the cutoff.
func (r *GormOrderRepository) GetAllWaitingForPaymentSince(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND placed_at <= ?", int(order.StatusWaitingForPayment), cutoff).
		Order("placed_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.loadAggregate(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) loadAggregate(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var itemDTOs []LineItemDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("item_id").
		Find(&itemDTOs).Error; err != nil {
		return nil, err
	}

	var updateDTOs []StatusUpdateDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("id").
		Find(&updateDTOs).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, itemDTOs, updateDTOs)
}

// appendStatusUpdates inserts the history entries past the already recorded
// count, preserving the trail as append-only.
func (r *GormOrderRepository) appendStatusUpdates(ctx context.Context, aggregate *order.Order, recorded int) error {
	history := aggregate.History()
	if recorded >= len(history) {
		return nil
	}

	now := time.Now().UTC()
	updateDTOs := make([]StatusUpdateDTO, 0, len(history)-recorded)
	for _, status := range history[recorded:] {
		updateDTOs = append(updateDTOs, StatusUpdateDTO{
			OrderID:    aggregate.ID().Bytes(),
			Status:     int(status),
			RecordedAt: now,
		})
	}

	return r.db.WithContext(ctx).Create(&updateDTOs).Error
}
