package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler handles order status changes.
// The transition is gated by the status state machine: an illegal move fails
// with an InvalidTransitionError naming the allowed next statuses, and the
// order is left untouched.
type UpdateOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine *order.StateMachine
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	stateMachine *order.StateMachine,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: stateMachine,
	}
}

// Handle processes the status change command.
// Loads the order, applies the transition through the state machine, and
// persists the new status together with the extended history.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// the row lock keeps a concurrent status change from validating
	// against the same current status
	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(h.stateMachine, cmd.TargetStatus()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
