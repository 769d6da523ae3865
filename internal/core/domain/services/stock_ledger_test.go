package services_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStock(t *testing.T, itemID kernel.UUID, qty int) *stock.Stock {
	t.Helper()
	s, err := stock.NewStock(itemID, "widget", qty)
	require.NoError(t, err)
	return s
}

func mustLineItem(t *testing.T, itemID kernel.UUID, qty int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(itemID, qty)
	require.NoError(t, err)
	return item
}

func TestStockLedger_Reserve(t *testing.T) {
	ledger := services.NewStockLedger()

	t.Run("decrements_every_item", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		stocks := []*stock.Stock{
			mustStock(t, first, 10),
			mustStock(t, second, 3),
		}
		items := []order.LineItem{
			mustLineItem(t, first, 4),
			mustLineItem(t, second, 3),
		}

		err := ledger.Reserve(stocks, items)
		require.NoError(t, err)
		assert.Equal(t, 6, stocks[0].AvailableQty())
		assert.Equal(t, 0, stocks[1].AvailableQty())
	})

	t.Run("missing_item_fails_without_changes", func(t *testing.T) {
		known := kernel.NewUUID()
		missing := kernel.NewUUID()
		stocks := []*stock.Stock{mustStock(t, known, 10)}
		items := []order.LineItem{
			mustLineItem(t, known, 4),
			mustLineItem(t, missing, 1),
		}

		err := ledger.Reserve(stocks, items)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), missing.String())
		assert.Equal(t, 10, stocks[0].AvailableQty())
	})

	t.Run("shortfall_fails_without_changes", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		stocks := []*stock.Stock{
			mustStock(t, first, 10),
			mustStock(t, second, 2),
		}
		items := []order.LineItem{
			mustLineItem(t, first, 4),
			mustLineItem(t, second, 3),
		}

		err := ledger.Reserve(stocks, items)
		require.ErrorIs(t, err, stock.ErrInsufficientStock)

		var insufficientErr *stock.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		assert.True(t, second.IsEqual(insufficientErr.ItemID))
		assert.Equal(t, 2, insufficientErr.Available)
		assert.Equal(t, 3, insufficientErr.Requested)

		assert.Equal(t, 10, stocks[0].AvailableQty())
		assert.Equal(t, 2, stocks[1].AvailableQty())
	})

	t.Run("duplicate_items_are_checked_as_one_combined_demand", func(t *testing.T) {
		itemID := kernel.NewUUID()
		stocks := []*stock.Stock{mustStock(t, itemID, 5)}
		items := []order.LineItem{
			mustLineItem(t, itemID, 3),
			mustLineItem(t, itemID, 3),
		}

		err := ledger.Reserve(stocks, items)
		require.ErrorIs(t, err, stock.ErrInsufficientStock)

		var insufficientErr *stock.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, 5, insufficientErr.Available)
		assert.Equal(t, 6, insufficientErr.Requested)

		assert.Equal(t, 5, stocks[0].AvailableQty())
	})

	t.Run("duplicate_items_within_stock_are_summed", func(t *testing.T) {
		itemID := kernel.NewUUID()
		stocks := []*stock.Stock{mustStock(t, itemID, 6)}
		items := []order.LineItem{
			mustLineItem(t, itemID, 3),
			mustLineItem(t, itemID, 3),
		}

		require.NoError(t, ledger.Reserve(stocks, items))
		assert.Equal(t, 0, stocks[0].AvailableQty())
	})

	t.Run("reserving_to_zero_is_allowed", func(t *testing.T) {
		itemID := kernel.NewUUID()
		stocks := []*stock.Stock{mustStock(t, itemID, 1)}
		items := []order.LineItem{mustLineItem(t, itemID, 1)}

		require.NoError(t, ledger.Reserve(stocks, items))
		assert.Equal(t, 0, stocks[0].AvailableQty())

		err := ledger.Reserve(stocks, items)
		require.ErrorIs(t, err, stock.ErrInsufficientStock)
	})
}

func TestStockLedger_CheckAvailability(t *testing.T) {
	ledger := services.NewStockLedger()
	itemID := kernel.NewUUID()
	stocks := []*stock.Stock{mustStock(t, itemID, 5)}

	assert.True(t, ledger.CheckAvailability(stocks, []order.LineItem{mustLineItem(t, itemID, 5)}))
	assert.False(t, ledger.CheckAvailability(stocks, []order.LineItem{mustLineItem(t, itemID, 6)}))
	assert.False(t, ledger.CheckAvailability(stocks, []order.LineItem{mustLineItem(t, kernel.NewUUID(), 1)}))

	// two line items for the same item count against the record once
	assert.False(t, ledger.CheckAvailability(stocks, []order.LineItem{
		mustLineItem(t, itemID, 3),
		mustLineItem(t, itemID, 3),
	}))
	assert.True(t, ledger.CheckAvailability(stocks, []order.LineItem{
		mustLineItem(t, itemID, 3),
		mustLineItem(t, itemID, 2),
	}))
}
