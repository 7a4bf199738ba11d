package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

type CartHandler struct {
	Store *database.Store
}

func NewCartHandler(store *database.Store) *CartHandler {
	return &CartHandler{Store: store}
}

// loadOrCreateCart retourne le panier de l'utilisateur, ou un panier vide
// prêt à être persisté. Un seul panier par utilisateur (id stable).
func (h *CartHandler) loadOrCreateCart(ctx context.Context, userID string) models.Cart {
	if cart := h.Store.GetCart(ctx, userID); cart != nil {
		return *cart
	}
	now := time.Now().UTC()
	return models.Cart{
		ID:        "cart-" + userID,
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Get retourne le panier courant (vide si aucun).
func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	cart := h.loadOrCreateCart(c.Request.Context(), userID)
	c.JSON(http.StatusOK, cart)
}

// AddItem ajoute un produit au panier (ou augmente sa quantité).
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Données invalides"})
		return
	}
	if input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "product_id requis"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Quantité invalide"})
		return
	}

	ctx := c.Request.Context()
	product := h.Store.GetProduct(ctx, input.ProductID)
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Produit introuvable"})
		return
	}

	cart := h.loadOrCreateCart(ctx, userID)

	if i := cart.FindItem(input.ProductID); i >= 0 {
		cart.Items[i].Quantity += input.Quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:    product.ID,
			ProductTitle: product.Title,
			Price:        product.Price,
			Image:        product.Image,
			Quantity:     input.Quantity,
			AddedAt:      time.Now().UTC(),
		})
	}

	// Les totaux sont recalculés à chaque mutation, jamais stockés à la main
	cart.RecomputeTotals()
	h.Store.SaveCart(ctx, cart)

	c.JSON(http.StatusOK, cart)
}

// UpdateItem change la quantité d'un item. Quantité 0 → retrait de l'item.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("product_id")

	var input struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "quantity requis"})
		return
	}
	if *input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Quantité invalide"})
		return
	}

	ctx := c.Request.Context()
	cart := h.loadOrCreateCart(ctx, userID)

	i := cart.FindItem(productID)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item absent du panier"})
		return
	}

	if *input.Quantity == 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = *input.Quantity
	}

	cart.RecomputeTotals()
	h.Store.SaveCart(ctx, cart)

	c.JSON(http.StatusOK, cart)
}

// RemoveItem retire un produit du panier.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("product_id")

	ctx := c.Request.Context()
	cart := h.loadOrCreateCart(ctx, userID)

	i := cart.FindItem(productID)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item absent du panier"})
		return
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.RecomputeTotals()
	h.Store.SaveCart(ctx, cart)

	c.JSON(http.StatusOK, cart)
}

// Clear vide entièrement le panier.
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString("user_id")

	h.Store.DeleteCart(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"detail": "Panier vidé"})
}
