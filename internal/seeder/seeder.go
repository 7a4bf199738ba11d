package seeder

import (
	"context"
	"fmt"
	"hash/crc32"
	"log"
	"time"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

// Nombre de commandes de démonstration générées par client.
const sampleOrderCount = 3

// Catalogue figé de lignes de commande pour les données de démonstration.
// Indépendant du catalogue produits pour rester stable dans le temps.
var sampleItems = [][]models.OrderItem{
	{
		{ProductID: "prod-002", Title: "Aurora Wireless Headphones", Quantity: 1, UnitPrice: 149.99, TotalPrice: 149.99},
		{ProductID: "prod-007", Title: "Glide Wireless Mouse", Quantity: 2, UnitPrice: 39.99, TotalPrice: 79.98},
	},
	{
		{ProductID: "prod-001", Title: "ProBook Laptop 15\"", Quantity: 1, UnitPrice: 899.99, TotalPrice: 899.99},
	},
	{
		{ProductID: "prod-004", Title: "Nimbus Mechanical Keyboard", Quantity: 1, UnitPrice: 89.99, TotalPrice: 89.99},
		{ProductID: "prod-008", Title: "Core USB-C Hub 8-in-1", Quantity: 1, UnitPrice: 45.00, TotalPrice: 45.00},
	},
}

var sampleStatuses = [sampleOrderCount]string{
	models.OrderStatusDelivered,
	models.OrderStatusShipped,
	models.OrderStatusProcessing,
}

// Dates figées pour garder un historique déterministe.
var sampleDates = [sampleOrderCount]time.Time{
	time.Date(2025, 5, 12, 14, 30, 0, 0, time.UTC),
	time.Date(2025, 6, 3, 9, 15, 0, 0, time.UTC),
	time.Date(2025, 6, 20, 18, 45, 0, 0, time.UTC),
}

// EnsureSampleOrders garantit qu'un client a un historique de commandes à
// présenter dans le chat. S'il existe déjà des commandes (réelles ou démo),
// on les retourne telles quelles : appels répétés → même jeu de données,
// jamais de croissance. Les commandes générées sont déterministes par client
// et clairement marquées comme échantillons (préfixe d'id + flag IsSample).
func EnsureSampleOrders(ctx context.Context, store *database.Store, customerID string) []models.Order {
	existing := store.ListOrdersForCustomer(ctx, customerID, 10)
	if len(existing) > 0 {
		return existing
	}

	orders := BuildSampleOrders(customerID)
	for _, o := range orders {
		store.CreateOrder(ctx, o)
	}
	log.Printf("⚠️ Aucun historique pour %s — %d commandes de démonstration générées", customerID, len(orders))

	return store.ListOrdersForCustomer(ctx, customerID, 10)
}

// BuildSampleOrders construit le jeu figé de commandes de démonstration pour
// un client. Pure et déterministe : même client → mêmes commandes.
func BuildSampleOrders(customerID string) []models.Order {
	// Numéros de commande plausibles mais reproductibles par client
	base := crc32.ChecksumIEEE([]byte(customerID)) % 80000

	orders := make([]models.Order, 0, sampleOrderCount)
	for i := 0; i < sampleOrderCount; i++ {
		items := sampleItems[i]
		subtotal := 0.0
		for _, it := range items {
			subtotal += it.TotalPrice
		}
		tax := round2(subtotal * 0.21)
		shipping := 4.95
		if subtotal >= 100 {
			shipping = 0
		}

		orders = append(orders, models.Order{
			ID:          fmt.Sprintf("%s%s-%d", models.SampleOrderPrefix, customerID, i+1),
			UserID:      customerID,
			OrderNumber: fmt.Sprintf("ORD-%05d", 10000+base+uint32(i)),
			Status:      sampleStatuses[i],
			Items:       items,
			Subtotal:    subtotal,
			Tax:         tax,
			Shipping:    shipping,
			Total:       round2(subtotal + tax + shipping),
			ShippingAddress: models.ShippingAddress{
				Street:     "12 Demo Street",
				City:       "Brussels",
				PostalCode: "1000",
				Country:    "BE",
			},
			PaymentMethod:    "card",
			PaymentReference: fmt.Sprintf("demo-%05d-%d", base, i+1),
			IsSample:         true,
			CreatedAt:        sampleDates[i],
			UpdatedAt:        sampleDates[i],
		})
	}
	return orders
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
