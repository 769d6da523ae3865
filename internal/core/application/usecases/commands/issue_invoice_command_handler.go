package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/invoice"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrInvoiceAlreadyIssued indicates that the order already has an invoice.
// Invoices are immutable once issued; corrections are handled by credit
// notes outside this system.
var ErrInvoiceAlreadyIssued = errors.New("invoice already issued for order")

// allocationAttempts bounds retries when the sequence allocation loses a
// race (deadlock, serialization failure) with a concurrent issuer.
const allocationAttempts = 3

// IssueInvoiceCommandHandler handles invoice issuing.
//
// The sequence allocation, the invoice row, and the counter advance all
// happen in one transaction holding a row lock on the counter. Concurrent
// issuers serialize on that lock; a rolled-back attempt releases it without
// advancing the counter, which keeps the sequence gap-free. Transient lock
// conflicts are retried on a fresh transaction a bounded number of times.
type IssueInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

// NewIssueInvoiceCommandHandler creates a handler for invoice issuing.
func NewIssueInvoiceCommandHandler(uowFactory InvoiceUoWFactory) IssueInvoiceCommandHandler {
	return IssueInvoiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the invoice issuing command and returns the issued
// invoice number, e.g. "INV 42/3/2025".
func (h *IssueInvoiceCommandHandler) Handle(ctx context.Context, cmd IssueInvoiceCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < allocationAttempts; attempt++ {
		number, err := h.issue(ctx, cmd)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, ports.ErrAllocationConflict) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (h *IssueInvoiceCommandHandler) issue(ctx context.Context, cmd IssueInvoiceCommand) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	invoiceRepo := uow.InvoiceRepository()
	if _, err = invoiceRepo.GetByOrderID(ctx, aggregate.ID()); err == nil {
		return "", ErrInvoiceAlreadyIssued
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return "", err
	}

	sequence, err := invoiceRepo.AllocateNextSequence(ctx)
	if err != nil {
		return "", err
	}

	issuedAt := time.Now().UTC()
	number := invoice.FormatNumber(sequence, cmd.Options(), issuedAt)

	issued, err := invoice.NewInvoice(kernel.NewUUID(), aggregate.ID(), sequence, number, issuedAt)
	if err != nil {
		return "", err
	}

	if err = invoiceRepo.Add(ctx, issued); err != nil {
		return "", err
	}

	if err = invoiceRepo.CommitSequence(ctx, sequence); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}
