package stockrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock record to the database.
func (r *GormStockRepository) Add(ctx context.Context, aggregate *stock.Stock) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ItemID(), aggregate)
	return nil
}

// Update saves the current available quantity of a stock record.
func (r *GormStockRepository) Update(ctx context.Context, aggregate *stock.Stock) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&StockDTO{}).
		Where("item_id = ?", dto.ItemID).
		Select("name", "available_qty").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ItemID(), aggregate)
	return nil
}

// Get retrieves a stock record by item ID without locking it.
func (r *GormStockRepository) Get(ctx context.Context, itemID kernel.UUID) (*stock.Stock, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dto StockDTO
	if err := r.db.WithContext(ctx).First(&dto, "item_id = ?", itemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock", itemID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves stock records under SELECT ... FOR UPDATE row locks,
// held until the surrounding transaction ends. Rows are locked in item ID
// order so concurrent reservations acquire locks in the same sequence and
// cannot deadlock each other. Missing items are absent from the result.
func (r *GormStockRepository) GetForUpdate(
	ctx context.Context, itemIDs []kernel.UUID,
) ([]*stock.Stock, error) {
	ids := make([]uuid.UUID, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		if err := itemID.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, itemID.Bytes())
	}

	var dtos []StockDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id IN ?", ids).
		Order("item_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	stocks := make([]*stock.Stock, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, aggregate)
	}

	return stocks, nil
}
