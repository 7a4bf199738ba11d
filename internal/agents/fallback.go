package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/seeder"
)

// DefaultReply est la réponse de l'orchestrateur quand rien de plus précis
// n'est possible (intention inconnue, agent distant en échec).
const DefaultReply = "I'm your shopping assistant. I can help you browse products, " +
	"check the status of your orders, or answer questions about returns and store policies. " +
	"What can I do for you?"

const knowledgeReply = "You can return any item within 30 days of delivery for a full refund. " +
	"Start a return from your order history, and once we receive the item the refund is issued " +
	"within 5 business days. Standard shipping is free on orders over $100."

const maxFallbackProducts = 3

// fallbackReply construit une réponse locale en mode dégradé. L'intention
// produit pioche dans le catalogue, l'intention commande dans l'historique
// du client (complété par le seeder de démonstration si vide).
func (r *Router) fallbackReply(ctx context.Context, intent Intent, userID, message string) string {
	switch intent {
	case IntentProduct:
		return r.productFallback(ctx, message)
	case IntentOrder:
		return r.orderFallback(ctx, userID)
	case IntentKnowledge:
		return knowledgeReply
	default:
		return DefaultReply
	}
}

// productFallback répond avec de vrais produits du catalogue, en privilégiant
// ceux dont le titre ou les tags apparaissent dans le message.
func (r *Router) productFallback(ctx context.Context, message string) string {
	products := r.store.ListProducts(ctx, "", 0)
	if len(products) == 0 {
		return "I couldn't reach the product catalog right now, but I'm happy to help as soon as it's back."
	}

	msg := strings.ToLower(message)
	matched := []models.Product{}
	for _, p := range products {
		if productMatches(p, msg) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		matched = products
	}
	if len(matched) > maxFallbackProducts {
		matched = matched[:maxFallbackProducts]
	}

	parts := make([]string, 0, len(matched))
	for _, p := range matched {
		availability := "in stock"
		if !p.InStock {
			availability = "currently out of stock"
		}
		parts = append(parts, fmt.Sprintf("%s ($%.2f, %s)", p.Title, p.Price, availability))
	}
	return "Here are some products you might like: " + strings.Join(parts, "; ") + "."
}

func productMatches(p models.Product, msg string) bool {
	if strings.Contains(msg, strings.ToLower(p.Title)) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(msg, strings.ToLower(tag)) {
			return true
		}
	}
	return strings.Contains(msg, strings.ToLower(p.Category))
}

// orderFallback répond avec l'historique du client ; sans historique réel le
// seeder fournit un jeu de commandes de démonstration borné et idempotent.
func (r *Router) orderFallback(ctx context.Context, userID string) string {
	orders := seeder.EnsureSampleOrders(ctx, r.store, userID)
	if len(orders) == 0 {
		return "I couldn't find any orders for your account yet. Once you place an order, I can track it for you."
	}

	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		label := fmt.Sprintf("order %s is %s ($%.2f)", o.OrderNumber, o.Status, o.Total)
		if o.IsSampleOrder() {
			label += " [sample order]"
		}
		parts = append(parts, label)
	}
	return "Here's the latest on your orders: " + strings.Join(parts, "; ") + "."
}
