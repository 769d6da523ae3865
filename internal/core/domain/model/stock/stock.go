package stock

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrInsufficientStock indicates that an item's available quantity does
	// not cover a requested reservation. A caller-visible business condition,
	// not a data defect.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrStockIsNotConstructed is returned when a Stock instance was not
	// created through the NewStock constructor.
	ErrStockIsNotConstructed = errors.New("Stock must be created via NewStock constructor")
)

// InsufficientStockError reports which item could not be reserved and the
// quantities involved.
type InsufficientStockError struct {
	ItemID    kernel.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item '%s': available %d, requested %d",
		e.ItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Stock is the aggregate for one sellable item's inventory position. The
// available quantity is only ever decreased by Reserve; restocking and
// returns are handled outside the order lifecycle.
//
// Invariants:
//   - available quantity is never negative
//   - must be created via NewStock or RestoreStock
type Stock struct {
	itemID       kernel.UUID
	name         string
	availableQty int

	isConstructed bool
}

// NewStock creates a stock record for an item. The quantity must not be negative.
func NewStock(itemID kernel.UUID, name string, availableQty int) (*Stock, error) {
	s := &Stock{isConstructed: true}

	if err := errors.Join(
		s.setItemID(itemID),
		s.setName(name),
		s.setAvailableQty(availableQty),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStock reconstructs a stock record from persistence.
func RestoreStock(itemID kernel.UUID, name string, availableQty int) (*Stock, error) {
	return NewStock(itemID, name, availableQty)
}

// Validate ensures the Stock was created through a constructor.
func (s *Stock) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStockIsNotConstructed
	}
	return nil
}

// ItemID returns the item identifier.
func (s *Stock) ItemID() kernel.UUID {
	return s.itemID
}

// Name returns the item name.
func (s *Stock) Name() string {
	return s.name
}

// AvailableQty returns the currently available quantity.
func (s *Stock) AvailableQty() int {
	return s.availableQty
}

// CanReserve reports whether the available quantity covers the requested one.
func (s *Stock) CanReserve(quantity int) bool {
	return quantity > 0 && s.availableQty >= quantity
}

// Reserve decreases the available quantity by the requested amount.
// Returns an InsufficientStockError if the quantity does not cover the
// request; the record is unchanged on error.
func (s *Stock) Reserve(quantity int) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if s.availableQty < quantity {
		return &InsufficientStockError{
			ItemID:    s.itemID,
			Available: s.availableQty,
			Requested: quantity,
		}
	}

	s.availableQty -= quantity
	return nil
}

func (s *Stock) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	s.itemID = itemID
	return nil
}

func (s *Stock) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Stock) setAvailableQty(availableQty int) error {
	if availableQty < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"availableQty",
			fmt.Errorf("%d is negative", availableQty),
		)
	}
	s.availableQty = availableQty
	return nil
}
