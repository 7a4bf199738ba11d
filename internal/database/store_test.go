package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

func newUnconfiguredStore(t *testing.T) *Store {
	t.Setenv("COSMOS_URI", "")
	return NewStore()
}

// Sans COSMOS_URI le store bascule sur le catalogue mock : les endpoints
// restent utilisables sans aucune dépendance cloud.
func TestUnconfiguredStoreServesMockCatalog(t *testing.T) {
	store := newUnconfiguredStore(t)
	ctx := context.Background()

	require.False(t, store.Configured())

	products := store.ListProducts(ctx, "", 0)
	require.NotEmpty(t, products)

	t.Run("filtre catégorie", func(t *testing.T) {
		audio := store.ListProducts(ctx, "Audio", 0)
		require.NotEmpty(t, audio)
		for _, p := range audio {
			assert.Equal(t, "Audio", p.Category)
		}
	})

	t.Run("filtre prix minimum", func(t *testing.T) {
		expensive := store.ListProducts(ctx, "", 300)
		require.NotEmpty(t, expensive)
		for _, p := range expensive {
			assert.GreaterOrEqual(t, p.Price, 300.0)
		}
	})

	t.Run("lecture par id", func(t *testing.T) {
		p := store.GetProduct(ctx, products[0].ID)
		require.NotNil(t, p)
		assert.Equal(t, products[0].Title, p.Title)
	})

	t.Run("id inconnu", func(t *testing.T) {
		assert.Nil(t, store.GetProduct(ctx, "does-not-exist"))
	})

	t.Run("catégories distinctes", func(t *testing.T) {
		categories := store.ListCategories(ctx)
		assert.Contains(t, categories, "Audio")
		assert.Contains(t, categories, "Computers")
	})
}

func TestMockCartLifecycle(t *testing.T) {
	store := newUnconfiguredStore(t)
	ctx := context.Background()

	assert.Nil(t, store.GetCart(ctx, "u1"))

	cart := models.Cart{ID: "cart-u1", UserID: "u1", Items: []models.CartItem{
		{ProductID: "prod-001", Price: 899.99, Quantity: 1},
	}}
	cart.RecomputeTotals()
	store.SaveCart(ctx, cart)

	loaded := store.GetCart(ctx, "u1")
	require.NotNil(t, loaded)
	assert.Equal(t, 1, loaded.TotalItems)
	assert.InDelta(t, 899.99, loaded.TotalPrice, 1e-9)

	store.DeleteCart(ctx, "u1")
	assert.Nil(t, store.GetCart(ctx, "u1"))
}

func TestMockOrdersSortedAndCapped(t *testing.T) {
	store := newUnconfiguredStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		store.CreateOrder(ctx, models.Order{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			CreatedAt: base.AddDate(0, 0, i),
		})
	}

	orders := store.ListOrdersForCustomer(ctx, "u1", 3)
	require.Len(t, orders, 3)
	// Les plus récentes d'abord
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
	assert.True(t, orders[1].CreatedAt.After(orders[2].CreatedAt))

	// Client inconnu → liste vide, jamais nil ni erreur
	assert.Empty(t, store.ListOrdersForCustomer(ctx, "unknown", 10))
}

func TestMockChatMessagesOrdered(t *testing.T) {
	store := newUnconfiguredStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.AppendChatMessage(ctx, models.ChatMessage{ID: "m2", SessionID: "s1", Role: models.ChatRoleAssistant, Timestamp: base.Add(time.Minute)})
	store.AppendChatMessage(ctx, models.ChatMessage{ID: "m1", SessionID: "s1", Role: models.ChatRoleUser, Timestamp: base})
	store.AppendChatMessage(ctx, models.ChatMessage{ID: "m3", SessionID: "autre", Timestamp: base})

	messages := store.ListChatMessages(ctx, "s1")
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m2", messages[1].ID)
}

func TestMockUsers(t *testing.T) {
	store := newUnconfiguredStore(t)
	ctx := context.Background()

	store.CreateUser(ctx, models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"})

	byID := store.GetUser(ctx, "u1")
	require.NotNil(t, byID)
	assert.Equal(t, "Ada", byID.Name)

	byEmail := store.GetUserByEmail(ctx, "ADA@example.com")
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	assert.Nil(t, store.GetUserByEmail(ctx, "nobody@example.com"))
}
