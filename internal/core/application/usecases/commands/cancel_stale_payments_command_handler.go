package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// CancelStalePaymentsCommandHandler cancels orders whose payment never
// arrived. Each cancellation goes through the state machine like any other
// transition (WAITING_FOR_PAYMENT allows CANCELED), so the status history
// stays consistent.
type CancelStalePaymentsCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine *order.StateMachine
}

// NewCancelStalePaymentsCommandHandler creates a handler for stale payment
// cancellation.
func NewCancelStalePaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	stateMachine *order.StateMachine,
) CancelStalePaymentsCommandHandler {
	return CancelStalePaymentsCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: stateMachine,
	}
}

// Handle cancels every order that has been waiting for payment longer than
// the command's maximum age. Returns the number of canceled orders.
func (h *CancelStalePaymentsCommandHandler) Handle(ctx context.Context, cmd CancelStalePaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.MaxAge())

	orderRepo := uow.OrderRepository()
	staleOrders, err := orderRepo.GetAllWaitingForPaymentSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, aggregate := range staleOrders {
		if err = aggregate.ChangeStatus(h.stateMachine, order.StatusCanceled); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(staleOrders), nil
}
