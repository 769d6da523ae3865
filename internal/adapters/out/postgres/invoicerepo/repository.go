package invoicerepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/invoice"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counterRowID is the primary key of the only invoice_sequence row.
const counterRowID = 1

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invoice to the database.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return classifyConflict(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrderID retrieves the invoice issued for the given order.
func (r *GormInvoiceRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AllocateNextSequence locks the counter row and returns the next sequence
// value. An absent counter row means nothing has been issued yet, so the
// first allocation returns 1. The counter is not advanced here; the caller
// commits the value via CommitSequence in the same transaction, and a
// rollback releases the lock without consuming the number.
func (r *GormInvoiceRepository) AllocateNextSequence(ctx context.Context) (int64, error) {
	var dto SequenceDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", counterRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, classifyConflict(err)
	}

	return dto.LastSequence + 1, nil
}

// CommitSequence records the given value as the last used sequence,
// creating the counter row on first use.
func (r *GormInvoiceRepository) CommitSequence(ctx context.Context, sequence int64) error {
	dto := SequenceDTO{ID: counterRowID, LastSequence: sequence}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_sequence"}),
		}).
		Create(&dto).Error
	return classifyConflict(err)
}

// classifyConflict maps transient Postgres locking failures onto
// ports.ErrAllocationConflict so handlers can retry on a fresh transaction.
// SQLSTATE 40001 is a serialization failure, 40P01 a deadlock, 55P03 a
// failed lock acquisition. A unique violation (23505) on the invoice
// sequence is the same race seen from the other side: two allocators
// computed the same number because the counter row did not exist yet, so
// the loser retries rather than failing hard. Unique violations on other
// constraints, like one invoice per order, stay non-retryable.
func classifyConflict(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %s", ports.ErrAllocationConflict, pgErr.Code)
		case "23505":
			if strings.Contains(pgErr.ConstraintName, "sequence") {
				return fmt.Errorf("%w: %s on %s", ports.ErrAllocationConflict, pgErr.Code, pgErr.ConstraintName)
			}
		}
	}

	return err
}
