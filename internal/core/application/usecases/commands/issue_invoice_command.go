package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/invoice"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrIssueInvoiceCommandIsNotConstructed = errors.New(
	"IssueInvoiceCommand must be created via NewIssueInvoiceCommand constructor",
)

// IssueInvoiceCommand represents a request to issue the invoice for an order,
// drawing the next value from the shared gap-free invoice sequence.
type IssueInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	options invoice.NumberOptions

	guard guard.ConstructorGuard
}

// NewIssueInvoiceCommand creates a command to issue an invoice for an order.
// A zero-value options struct selects the default numbering scheme
// ("INV <seq>/<month>/<year>").
func NewIssueInvoiceCommand(orderID kernel.UUID, options invoice.NumberOptions) (IssueInvoiceCommand, error) {
	if options == (invoice.NumberOptions{}) {
		options = invoice.DefaultNumberOptions()
	}

	invoiceCommand := IssueInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		invoiceCommand.setOrderID(orderID),
		invoiceCommand.setOptions(options),
	); err != nil {
		return IssueInvoiceCommand{}, err
	}

	return invoiceCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIssueInvoiceCommandIsNotConstructed if validation fails.
func (c IssueInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrIssueInvoiceCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to invoice.
func (c IssueInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Options returns the numbering scheme for the issued invoice.
func (c IssueInvoiceCommand) Options() invoice.NumberOptions {
	return c.options
}

func (c *IssueInvoiceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *IssueInvoiceCommand) setOptions(options invoice.NumberOptions) error {
	if err := options.Validate(); err != nil {
		return err
	}

	c.options = options
	return nil
}
