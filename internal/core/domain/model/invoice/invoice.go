package invoice

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrInvoiceIsNotConstructed is returned when an Invoice instance was not
// created through the NewInvoice constructor.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is the aggregate for one issued invoice. It pairs the order it
// bills with the allocated sequence number and its formatted representation.
//
// The sequence is allocated from a single shared counter under exclusive
// access, so committed invoices carry gap-free, strictly increasing numbers.
type Invoice struct {
	id       kernel.UUID
	orderID  kernel.UUID
	sequence int64
	number   string
	issuedAt time.Time

	isConstructed bool
}

// NewInvoice creates an invoice for an order with an allocated sequence
// number and its formatted representation.
func NewInvoice(
	id kernel.UUID, orderID kernel.UUID, sequence int64, number string, issuedAt time.Time,
) (*Invoice, error) {
	inv := &Invoice{
		issuedAt:      issuedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setOrderID(orderID),
		inv.setSequence(sequence),
		inv.setNumber(number),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInvoice reconstructs an invoice from persistence.
func RestoreInvoice(
	id kernel.UUID, orderID kernel.UUID, sequence int64, number string, issuedAt time.Time,
) (*Invoice, error) {
	return NewInvoice(id, orderID, sequence, number, issuedAt)
}

// Validate ensures the Invoice was created through the constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// OrderID returns the identifier of the billed order.
func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

// Sequence returns the allocated counter value backing the number.
func (i *Invoice) Sequence() int64 {
	return i.sequence
}

// Number returns the formatted invoice number, e.g. "INV 5/3/2025".
func (i *Invoice) Number() string {
	return i.number
}

// IssuedAt returns the issue time the number was formatted with.
func (i *Invoice) IssuedAt() time.Time {
	return i.issuedAt
}

func (i *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Invoice) setSequence(sequence int64) error {
	if sequence < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}
	i.sequence = sequence
	return nil
}

func (i *Invoice) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	i.number = number
	return nil
}
