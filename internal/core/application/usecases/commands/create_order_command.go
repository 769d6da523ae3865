package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one line item is required")
)

// CreateOrderCommand represents a request to place a new order, reserving
// stock for every line item in the same transaction.
//
// Orders paid upfront start in the NEW status; when payment is collected
// asynchronously, awaitingPayment places the order in WAITING_FOR_PAYMENT
// until the payment confirmation (or the stale payment job) moves it on.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	deliveryMethod  order.DeliveryMethod
	items           []order.LineItem
	awaitingPayment bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order ID and delivery method are valid and that at
// least one line item is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	deliveryMethod order.DeliveryMethod,
	items []order.LineItem,
	awaitingPayment bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		awaitingPayment: awaitingPayment,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setDeliveryMethod(deliveryMethod),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryMethod returns the chosen fulfillment channel.
func (c CreateOrderCommand) DeliveryMethod() order.DeliveryMethod {
	return c.deliveryMethod
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// AwaitingPayment reports whether the order starts in WAITING_FOR_PAYMENT.
func (c CreateOrderCommand) AwaitingPayment() bool {
	return c.awaitingPayment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDeliveryMethod(deliveryMethod order.DeliveryMethod) error {
	if err := deliveryMethod.Validate(); err != nil {
		return err
	}

	c.deliveryMethod = deliveryMethod
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}
