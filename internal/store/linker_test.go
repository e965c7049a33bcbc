package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemLinker_Add(t *testing.T) {
	items := NewItemStore()
	carts := NewCartStore()
	linker := NewCartItemLinker(items, carts)

	items.Create("Widget", 10.0)
	carts.Create()

	t.Run("AggregatesAndAccumulates", func(t *testing.T) {
		cart, err := linker.Add(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 10.0, cart.Price)

		cart, err = linker.Add(0, 0)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, int64(2), cart.Items[0].Quantity)
		assert.Equal(t, 20.0, cart.Price)
	})

	t.Run("MissingCart", func(t *testing.T) {
		_, err := linker.Add(9, 0)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("MissingItem", func(t *testing.T) {
		_, err := linker.Add(0, 9)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("DeletedItemStillAddable", func(t *testing.T) {
		_, err := items.SoftDelete(0)
		require.NoError(t, err)

		cart, err := linker.Add(0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), cart.Items[0].Quantity)
		assert.Equal(t, 30.0, cart.Price)
	})
}

// Price accumulates with the unit price in effect at each add; later price
// changes never rewrite what is already in the cart.
func TestCartItemLinker_PriceSnapshotPerUnit(t *testing.T) {
	items := NewItemStore()
	carts := NewCartStore()
	linker := NewCartItemLinker(items, carts)

	items.Create("Widget", 10.0)
	carts.Create()

	_, err := linker.Add(0, 0)
	require.NoError(t, err)

	_, err = items.Patch(0, map[string]any{"price": 4.0})
	require.NoError(t, err)

	cart, err := linker.Add(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 14.0, cart.Price)
}

func TestShopScenario(t *testing.T) {
	items := NewItemStore()
	carts := NewCartStore()
	linker := NewCartItemLinker(items, carts)

	item := items.Create("Widget", 9.99)
	assert.Equal(t, int64(0), item.ID)

	cart := carts.Create()
	assert.Equal(t, int64(0), cart.ID)

	_, err := linker.Add(cart.ID, item.ID)
	require.NoError(t, err)
	got, err := linker.Add(cart.ID, item.ID)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(0), got.Items[0].ItemID)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.InDelta(t, 19.98, got.Price, 1e-9)

	_, err = items.SoftDelete(item.ID)
	require.NoError(t, err)

	// Direct fetch still resolves internally; external visibility is the
	// boundary's call. Default listing hides it, show_deleted reveals it.
	deleted, err := items.Get(item.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	assert.Empty(t, items.List(ItemFilter{Limit: 10}))
	assert.Len(t, items.List(ItemFilter{Limit: 10, ShowDeleted: true}), 1)
}
