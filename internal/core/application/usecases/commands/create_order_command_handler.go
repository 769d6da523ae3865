package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
//
// The whole placement runs in one transaction: the stock records of every
// line item are loaded under row locks, the StockLedger performs the
// all-or-nothing reservation, and the order is persisted together with the
// decremented quantities. A failed reservation rolls everything back, so
// stock is never partially consumed and never oversold.
type CreateOrderCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	stockLedger services.StockLedger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a CheckoutUoWFactory for transactional persistence across the
// order and stock aggregates.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	stockLedger services.StockLedger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		stockLedger: stockLedger,
	}
}

// Handle processes the order placement command.
// Reserves stock for every line item and persists the new order, or fails
// without consuming any stock.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	items := cmd.Items()
	itemIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ItemID())
	}

	stockRepo := uow.StockRepository()
	stocks, err := stockRepo.GetForUpdate(ctx, itemIDs)
	if err != nil {
		return err
	}

	if err = h.stockLedger.Reserve(stocks, items); err != nil {
		return err
	}

	for _, s := range stocks {
		if err = stockRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	newOrder, err := h.buildOrder(cmd, items)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateOrderCommandHandler) buildOrder(cmd CreateOrderCommand, items []order.LineItem) (*order.Order, error) {
	placedAt := time.Now().UTC()
	if cmd.AwaitingPayment() {
		return order.NewUnpaidOrder(cmd.OrderID(), cmd.DeliveryMethod(), items, placedAt)
	}
	return order.NewOrder(cmd.OrderID(), cmd.DeliveryMethod(), items, placedAt)
}
