package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeTotals(t *testing.T) {
	cart := Cart{
		UserID: "user-1",
		Items: []CartItem{
			{ProductID: "p1", Price: 10.0, Quantity: 2},
			{ProductID: "p2", Price: 4.5, Quantity: 3},
		},
	}

	cart.RecomputeTotals()

	assert.Equal(t, 5, cart.TotalItems)
	assert.InDelta(t, 2*10.0+3*4.5, cart.TotalPrice, 1e-9)

	t.Run("après ajout", func(t *testing.T) {
		cart.Items = append(cart.Items, CartItem{ProductID: "p3", Price: 99.99, Quantity: 1})
		cart.RecomputeTotals()

		assert.Equal(t, 6, cart.TotalItems)
		assert.InDelta(t, 33.5+99.99, cart.TotalPrice, 1e-9)
	})

	t.Run("après mise à jour de quantité", func(t *testing.T) {
		cart.Items[0].Quantity = 1
		cart.RecomputeTotals()

		assert.Equal(t, 5, cart.TotalItems)
		assert.InDelta(t, 10.0+13.5+99.99, cart.TotalPrice, 1e-9)
	})

	t.Run("après retrait", func(t *testing.T) {
		cart.Items = cart.Items[1:]
		cart.RecomputeTotals()

		assert.Equal(t, 4, cart.TotalItems)
		assert.InDelta(t, 13.5+99.99, cart.TotalPrice, 1e-9)
	})

	t.Run("panier vide", func(t *testing.T) {
		cart.Items = nil
		cart.RecomputeTotals()

		assert.Zero(t, cart.TotalItems)
		assert.Zero(t, cart.TotalPrice)
	})
}

func TestFindItem(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: "p1"},
		{ProductID: "p2"},
	}}

	assert.Equal(t, 0, cart.FindItem("p1"))
	assert.Equal(t, 1, cart.FindItem("p2"))
	assert.Equal(t, -1, cart.FindItem("p3"))
}

func TestIsSampleOrder(t *testing.T) {
	require.True(t, (&Order{IsSample: true}).IsSampleOrder())
	require.True(t, (&Order{ID: SampleOrderPrefix + "u1-1"}).IsSampleOrder())
	require.False(t, (&Order{ID: "order-123"}).IsSampleOrder())
}
