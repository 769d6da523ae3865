package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through one of the constructor functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or NewUnpaidOrder constructor")

	// ErrOrderHasNoItems is returned when an order is created without line items.
	ErrOrderHasNoItems = errors.New("order must contain at least one line item")
)

// LineItem is one ordered position: a stock item and the requested quantity.
// It is an immutable value object validated on construction.
type LineItem struct {
	itemID   kernel.UUID
	quantity int
}

// NewLineItem creates a line item. Quantity must be positive.
func NewLineItem(itemID kernel.UUID, quantity int) (LineItem, error) {
	if err := itemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return LineItem{itemID: itemID, quantity: quantity}, nil
}

// ItemID returns the identifier of the ordered stock item.
func (li LineItem) ItemID() kernel.UUID {
	return li.itemID
}

// Quantity returns the requested quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Order is the aggregate root for a customer order. It holds the chosen
// delivery method, the ordered line items, the current lifecycle status, and
// the append-only history of statuses the order actually passed through.
//
// Invariants:
//   - valid unique identifier and delivery method
//   - at least one line item
//   - the history is never empty and its last element is the current status
//   - status changes go through ChangeStatus, gated by the StateMachine
type Order struct {
	id             kernel.UUID
	deliveryMethod DeliveryMethod
	items          []LineItem
	status         Status
	history        []Status
	placedAt       time.Time

	isConstructed bool
}

// NewOrder creates a paid order starting at StatusNew.
func NewOrder(id kernel.UUID, method DeliveryMethod, items []LineItem, placedAt time.Time) (*Order, error) {
	return newOrderWithStatus(id, method, items, StatusNew, placedAt)
}

// NewUnpaidOrder creates an order starting at StatusWaitingForPayment.
// Used when payment is collected asynchronously; the stale payment job
// cancels such orders if payment never arrives.
func NewUnpaidOrder(id kernel.UUID, method DeliveryMethod, items []LineItem, placedAt time.Time) (*Order, error) {
	return newOrderWithStatus(id, method, items, StatusWaitingForPayment, placedAt)
}

func newOrderWithStatus(
	id kernel.UUID, method DeliveryMethod, items []LineItem, status Status, placedAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        status,
		history:       []Status{status},
		placedAt:      placedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDeliveryMethod(method),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence. The history must be
// non-empty and end with the given status; adjacency is not re-validated here,
// the stored history is taken as observed fact.
func RestoreOrder(
	id kernel.UUID,
	method DeliveryMethod,
	items []LineItem,
	status Status,
	history []Status,
	placedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	if history[len(history)-1] != status {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status history",
			fmt.Errorf("last history entry %s does not match status %s", history[len(history)-1], status),
		)
	}

	order, err := newOrderWithStatus(id, method, items, status, placedAt)
	if err != nil {
		return nil, err
	}

	order.history = make([]Status, len(history))
	copy(order.history, history)
	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DeliveryMethod returns the chosen fulfillment channel.
func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the observed status history, oldest first.
func (o *Order) History() []Status {
	history := make([]Status, len(o.history))
	copy(history, o.history)
	return history
}

// PlacedAt returns the order creation time.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// ChangeStatus moves the order to target if the state machine allows the
// transition under the order's delivery method, appending to the history.
// Returns an InvalidTransitionError otherwise; the order is unchanged on error.
func (o *Order) ChangeStatus(machine *StateMachine, target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := machine.ValidateTransition(o.status, target, o.deliveryMethod); err != nil {
		return err
	}

	o.status = target
	o.history = append(o.history, target)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryMethod(method DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.deliveryMethod = method
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
