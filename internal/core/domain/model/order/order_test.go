package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func TestNewLineItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		itemID := kernel.NewUUID()
		item, err := order.NewLineItem(itemID, 3)
		require.NoError(t, err)
		assert.True(t, itemID.IsEqual(item.ItemID()))
		assert.Equal(t, 3, item.Quantity())
	})

	t.Run("zero_quantity_rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 0)
		require.Error(t, err)
	})

	t.Run("negative_quantity_rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), -1)
		require.Error(t, err)
	})

	t.Run("invalid_item_id_rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.UUID{}, 1)
		require.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_at_new", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t), time.Now(),
		)
		require.NoError(t, err)
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Equal(t, []order.Status{order.StatusNew}, o.History())
	})

	t.Run("unpaid_starts_at_waiting_for_payment", func(t *testing.T) {
		o, err := order.NewUnpaidOrder(
			kernel.NewUUID(), order.DeliveryMethodPickupPoint, testLineItems(t), time.Now(),
		)
		require.NoError(t, err)
		assert.Equal(t, order.StatusWaitingForPayment, o.Status())
		assert.Equal(t, []order.Status{order.StatusWaitingForPayment}, o.History())
	})

	t.Run("requires_items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodHomeDelivery, nil, time.Now())
		require.ErrorIs(t, err, order.ErrOrderHasNoItems)
	})

	t.Run("requires_delivery_method", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodUnknown, testLineItems(t), time.Now())
		require.Error(t, err)
	})

	t.Run("requires_id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.DeliveryMethodHomeDelivery, testLineItems(t), time.Now())
		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	machine, err := order.NewStateMachine()
	require.NoError(t, err)

	t.Run("legal_transition_appends_history", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t), time.Now(),
		)
		require.NoError(t, err)

		require.NoError(t, o.ChangeStatus(machine, order.StatusProcessing))
		require.NoError(t, o.ChangeStatus(machine, order.StatusCompleted))

		assert.Equal(t, order.StatusCompleted, o.Status())
		assert.Equal(t, []order.Status{
			order.StatusNew, order.StatusProcessing, order.StatusCompleted,
		}, o.History())
	})

	t.Run("illegal_transition_leaves_order_unchanged", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t), time.Now(),
		)
		require.NoError(t, err)

		err = o.ChangeStatus(machine, order.StatusDelivered)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Equal(t, []order.Status{order.StatusNew}, o.History())
	})

	t.Run("delivery_method_gates_pickup_point_target", func(t *testing.T) {
		homeOrder := restoreOnTheWay(t, order.DeliveryMethodHomeDelivery)
		err := homeOrder.ChangeStatus(machine, order.StatusDeliveredPickupPoint)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		pickupOrder := restoreOnTheWay(t, order.DeliveryMethodPickupPoint)
		require.NoError(t, pickupOrder.ChangeStatus(machine, order.StatusDeliveredPickupPoint))
	})

	t.Run("not_constructed_order_rejected", func(t *testing.T) {
		var o order.Order
		err := o.ChangeStatus(machine, order.StatusProcessing)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_history", func(t *testing.T) {
		id := kernel.NewUUID()
		history := []order.Status{order.StatusNew, order.StatusProcessing}

		o, err := order.RestoreOrder(
			id, order.DeliveryMethodHomeDelivery, testLineItems(t),
			order.StatusProcessing, history, time.Now(),
		)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, o.Status())
		assert.Equal(t, history, o.History())
	})

	t.Run("history_must_end_with_status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t),
			order.StatusProcessing, []order.Status{order.StatusNew}, time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("history_must_not_be_empty", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t),
			order.StatusNew, nil, time.Now(),
		)
		require.Error(t, err)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	o1, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t), time.Now())
	require.NoError(t, err)
	o2, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodHomeDelivery, testLineItems(t), time.Now())
	require.NoError(t, err)

	assert.True(t, o1.IsEqual(o1))
	assert.False(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(nil))
}

func restoreOnTheWay(t *testing.T, method order.DeliveryMethod) *order.Order {
	t.Helper()
	history := []order.Status{
		order.StatusNew, order.StatusProcessing, order.StatusCompleted,
		order.StatusSent, order.StatusOnTheWay,
	}
	o, err := order.RestoreOrder(
		kernel.NewUUID(), method, testLineItems(t), order.StatusOnTheWay, history, time.Now(),
	)
	require.NoError(t, err)
	return o
}
