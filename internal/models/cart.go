package models

import "time"

type CartItem struct {
	ProductID    string    `bson:"product_id" json:"product_id"`
	ProductTitle string    `bson:"product_title" json:"product_title"`
	Price        float64   `bson:"price" json:"price"`
	Image        string    `bson:"image" json:"image"`
	Quantity     int       `bson:"quantity" json:"quantity"`
	AddedAt      time.Time `bson:"added_at" json:"added_at"`
}

type Cart struct {
	ID         string     `bson:"_id" json:"id"`
	UserID     string     `bson:"user_id" json:"user_id"`
	Items      []CartItem `bson:"items" json:"items"`
	TotalItems int        `bson:"total_items" json:"total_items"`
	TotalPrice float64    `bson:"total_price" json:"total_price"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// RecomputeTotals recalcule les totaux du panier après chaque mutation.
// Invariant : TotalPrice == somme(quantité × prix unitaire) sur tous les items.
func (c *Cart) RecomputeTotals() {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalPrice += float64(item.Quantity) * item.Price
	}
	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
	c.UpdatedAt = time.Now().UTC()
}

// FindItem retourne l'index de l'item correspondant au produit, ou -1.
func (c *Cart) FindItem(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
