// Package invoicerepo provides data transfer objects and mapping functions
// for invoice persistence, including the single-row counter backing the
// gap-free invoice number sequence.
package invoicerepo

import (
	"time"

	"orderflow/internal/core/domain/model/invoice"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO represents the database structure for persisting invoices.
// The unique index on OrderID enforces one invoice per order at the
// database level.
type InvoiceDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Sequence int64     `gorm:"uniqueIndex"`
	Number   string
	IssuedAt time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// SequenceDTO is the single-row counter holding the last used invoice
// sequence value. The row with ID 1 is the only one that ever exists.
type SequenceDTO struct {
	ID           int `gorm:"primaryKey"`
	LastSequence int64
}

// TableName specifies the database table name for the invoice sequence counter.
func (SequenceDTO) TableName() string {
	return "invoice_sequence"
}

// fromDomain converts an invoice domain aggregate to its database representation.
func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		Sequence: aggregate.Sequence(),
		Number:   aggregate.Number(),
		IssuedAt: aggregate.IssuedAt(),
	}
}

// toDomain converts a database DTO to an invoice domain aggregate.
func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(id, orderID, dto.Sequence, dto.Number, dto.IssuedAt)
}
