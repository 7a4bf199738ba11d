package agents

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/google/uuid"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/config"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

const (
	defaultAgentTimeout = 30 * time.Second
	historyWindow       = 10
)

// Router classe chaque message entrant et le dispatche vers l'agent distant
// correspondant. Deux états terminaux fixés au démarrage :
//   - configuré : agents résolus, appels distants avec timeout borné
//   - dégradé   : AGENT_ENDPOINT absent, réponses de repli construites
//     localement (catalogue, historique de commandes, textes statiques)
type Router struct {
	store   *database.Store
	client  *Client
	agents  map[Intent]string
	timeout time.Duration

	degraded bool
}

// NewRouter résout les agents au démarrage. Sans endpoint configuré on passe
// en mode dégradé — le chat répond toujours quelque chose, jamais une erreur.
func NewRouter(store *database.Store, cred azcore.TokenCredential) *Router {
	r := &Router{
		store:   store,
		timeout: defaultAgentTimeout,
		agents: map[Intent]string{
			IntentProduct:      config.Getenv("AGENT_ID_PRODUCT", "product-lookup"),
			IntentOrder:        config.Getenv("AGENT_ID_ORDER", "order-status"),
			IntentKnowledge:    config.Getenv("AGENT_ID_KNOWLEDGE", "knowledge"),
			IntentOrchestrator: config.Getenv("AGENT_ID_ORCHESTRATOR", "orchestrator"),
		},
	}

	if secs, err := strconv.Atoi(os.Getenv("AGENT_TIMEOUT_SECONDS")); err == nil && secs > 0 {
		r.timeout = time.Duration(secs) * time.Second
	}

	endpoint := os.Getenv("AGENT_ENDPOINT")
	if endpoint == "" {
		r.degraded = true
		log.Println("⚠️ AGENT_ENDPOINT non configuré — chat en mode dégradé (réponses de repli)")
		return r
	}

	r.client = NewClient(endpoint, cred)
	log.Printf("✅ Routeur d'agents configuré (%d agents, timeout %s)", len(r.agents), r.timeout)
	return r
}

// Configured indique si les agents distants sont résolus.
func (r *Router) Configured() bool {
	return !r.degraded
}

// AgentFor expose l'agent cible d'une intention (statut / debug).
func (r *Router) AgentFor(intent Intent) string {
	return r.agents[intent]
}

// Status décrit l'état du backend IA pour /api/chat/ai/status.
type Status struct {
	Configured bool              `json:"configured"`
	Mode       string            `json:"mode"`
	Agents     map[string]string `json:"agents"`
}

func (r *Router) Status() Status {
	mode := "agents"
	if r.degraded {
		mode = "fallback"
	}
	agents := make(map[string]string, len(r.agents))
	for intent, id := range r.agents {
		agents[string(intent)] = id
	}
	return Status{Configured: !r.degraded, Mode: mode, Agents: agents}
}

// PingBackend vérifie la joignabilité du service d'agents pour /health.
func (r *Router) PingBackend(ctx context.Context) error {
	if r.degraded {
		return fmt.Errorf("non configuré")
	}
	return r.client.Ping(ctx)
}

// HandleMessage traite un message utilisateur de bout en bout : persistance
// entrante (best-effort), classification, dispatch vers l'agent choisi avec
// timeout borné, repli orchestrateur sur erreur/timeout, persistance
// sortante (best-effort). Retourne TOUJOURS une réponse — jamais d'erreur
// pour un agent injoignable.
func (r *Router) HandleMessage(ctx context.Context, userID, sessionID, content string) models.ChatMessage {
	inbound := models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Content:   content,
		Role:      models.ChatRoleUser,
		Timestamp: time.Now().UTC(),
	}
	// Un échec de persistance ne bloque jamais la réponse
	r.store.AppendChatMessage(ctx, inbound)

	intent := Classify(content)

	var reply string
	if r.degraded {
		reply = r.fallbackReply(ctx, intent, userID, content)
	} else {
		history := r.store.ListChatMessages(ctx, sessionID)
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}

		tctx, cancel := context.WithTimeout(ctx, r.timeout)
		out, err := r.client.SendMessage(tctx, r.agents[intent], content, history)
		cancel()

		if err != nil {
			log.Printf("⚠️ Agent '%s' injoignable (%v) — réponse orchestrateur par défaut", r.agents[intent], err)
			reply = DefaultReply
		} else {
			reply = out
		}
	}

	outbound := models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Content:   reply,
		Role:      models.ChatRoleAssistant,
		Timestamp: time.Now().UTC(),
	}
	r.store.AppendChatMessage(ctx, outbound)

	return outbound
}
