package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"Do you have a laptop under 1000?", IntentProduct},
		{"I want to buy headphones", IntentProduct},
		{"What's the PRICE of the Pulse Smartwatch?", IntentProduct},
		{"Track my order", IntentOrder},
		{"Where is my shipment?", IntentOrder},
		{"delivery status please", IntentOrder},
		{"What is your return policy?", IntentKnowledge},
		{"How do I reset my password?", IntentKnowledge},
		{"hello there", IntentOrchestrator},
		{"", IntentOrchestrator},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.message))
		})
	}
}

// L'ordre des règles est contractuel : la règle produit précède la règle
// commande, qui précède la règle connaissance.
func TestClassifyRuleOrder(t *testing.T) {
	// "price" (produit) + "order" (commande) → produit
	assert.Equal(t, IntentProduct, Classify("what is the price of my order"))

	// "order" (commande) + "what is" (connaissance) → commande
	assert.Equal(t, IntentOrder, Classify("what is happening with my order"))

	// "return" seul → connaissance
	assert.Equal(t, IntentKnowledge, Classify("I want to return something"))
}

// La classification est une fonction pure du texte en minuscules : même
// entrée → même agent, appel après appel.
func TestClassifyDeterministic(t *testing.T) {
	messages := []string{
		"track my order",
		"show me laptops",
		"Return Policy?",
		"bonjour",
	}
	for _, msg := range messages {
		first := Classify(msg)
		for i := 0; i < 50; i++ {
			assert.Equal(t, first, Classify(msg), "message %q", msg)
		}
	}
}
