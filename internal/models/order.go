package models

import (
	"strings"
	"time"
)

// Statuts possibles d'une commande.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// SampleOrderPrefix préfixe les IDs des commandes de démonstration pour
// qu'aucun consommateur ne les confonde avec de vraies transactions.
const SampleOrderPrefix = "sample-order-"

type OrderItem struct {
	ProductID  string  `bson:"product_id" json:"product_id"`
	Title      string  `bson:"title" json:"title"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unit_price" json:"unit_price"`
	TotalPrice float64 `bson:"total_price" json:"total_price"`
}

type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
}

type Order struct {
	ID               string          `bson:"_id" json:"id"`
	UserID           string          `bson:"user_id" json:"user_id"`
	OrderNumber      string          `bson:"order_number" json:"order_number"`
	Status           string          `bson:"status" json:"status"`
	Items            []OrderItem     `bson:"items" json:"items"`
	Subtotal         float64         `bson:"subtotal" json:"subtotal"`
	Tax              float64         `bson:"tax" json:"tax"`
	Shipping         float64         `bson:"shipping" json:"shipping"`
	Total            float64         `bson:"total" json:"total"`
	ShippingAddress  ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod    string          `bson:"payment_method" json:"payment_method"`
	PaymentReference string          `bson:"payment_reference" json:"payment_reference"`
	IsSample         bool            `bson:"is_sample" json:"is_sample"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updated_at"`
}

// IsSampleOrder indique si la commande est une donnée de démonstration.
func (o *Order) IsSampleOrder() bool {
	return o.IsSample || strings.HasPrefix(o.ID, SampleOrderPrefix)
}
