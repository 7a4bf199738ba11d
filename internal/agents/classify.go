package agents

import "strings"

// Intent est la catégorie d'intention d'un message utilisateur.
type Intent string

const (
	IntentProduct      Intent = "product"
	IntentOrder        Intent = "order"
	IntentKnowledge    Intent = "knowledge"
	IntentOrchestrator Intent = "orchestrator"
)

// Règles de classification, évaluées dans l'ordre — la première qui matche
// gagne. L'ordre est volontaire : les règles suivantes sont des filets de
// plus en plus larges, donc "what is the price of my order" part bien vers
// l'agent produit (règle 1 avant règle 2).
var (
	productKeywords = []string{
		"product", "laptop", "buy", "price", "item", "headphone", "speaker",
		"monitor", "keyboard", "mouse", "smartwatch", "recommend", "shopping",
		"cheap", "in stock",
	}
	orderKeywords = []string{
		"order", "track", "shipment", "delivery", "status",
	}
	knowledgeKeywords = []string{
		"return", "policy", "how do", "what is", "how can", "warranty",
		"refund", "faq", "question",
	}
)

// Classify associe un message à exactement un agent cible. Fonction pure et
// déterministe du texte passé en minuscules : même entrée → même agent.
func Classify(message string) Intent {
	msg := strings.ToLower(message)

	if containsAny(msg, productKeywords) {
		return IntentProduct
	}
	if containsAny(msg, orderKeywords) {
		return IntentOrder
	}
	if containsAny(msg, knowledgeKeywords) {
		return IntentKnowledge
	}
	return IntentOrchestrator
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
