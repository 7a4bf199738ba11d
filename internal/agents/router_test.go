package agents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

func newDegradedRouter(t *testing.T) (*Router, *database.Store) {
	t.Setenv("COSMOS_URI", "")
	t.Setenv("AGENT_ENDPOINT", "")
	store := database.NewStore()
	return NewRouter(store, nil), store
}

func TestRouterDegradedMode(t *testing.T) {
	router, _ := newDegradedRouter(t)

	require.False(t, router.Configured())
	status := router.Status()
	assert.False(t, status.Configured)
	assert.Equal(t, "fallback", status.Mode)
	assert.Len(t, status.Agents, 4)
}

func TestHandleMessageOrderFallback(t *testing.T) {
	router, _ := newDegradedRouter(t)

	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "Track my order")

	assert.Equal(t, models.ChatRoleAssistant, reply.Role)
	assert.Equal(t, "s1", reply.SessionID)
	// Sans historique réel, la réponse s'appuie sur une commande de démonstration
	assert.Contains(t, reply.Content, "ORD-")
	assert.Contains(t, reply.Content, "[sample order]")
}

func TestHandleMessageProductFallback(t *testing.T) {
	router, _ := newDegradedRouter(t)

	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "I'm looking for a laptop")

	assert.Contains(t, reply.Content, "ProBook Laptop")
	assert.Contains(t, reply.Content, "$899.99")
}

func TestHandleMessageKnowledgeFallback(t *testing.T) {
	router, _ := newDegradedRouter(t)

	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "What is your return policy?")

	assert.Contains(t, reply.Content, "30 days")
}

func TestHandleMessageDefaultReply(t *testing.T) {
	router, _ := newDegradedRouter(t)

	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "good morning")

	assert.Equal(t, DefaultReply, reply.Content)
}

func TestHandleMessagePersistsConversation(t *testing.T) {
	router, store := newDegradedRouter(t)

	router.HandleMessage(context.Background(), "customer-1", "s42", "hello")

	messages := store.ListChatMessages(context.Background(), "s42")
	require.Len(t, messages, 2)
	assert.Equal(t, models.ChatRoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, models.ChatRoleAssistant, messages[1].Role)
}

func TestHandleMessageRemoteAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/agents/"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reply":"Voici la réponse de l'agent"}`))
	}))
	defer srv.Close()

	t.Setenv("COSMOS_URI", "")
	t.Setenv("AGENT_ENDPOINT", srv.URL)
	store := database.NewStore()
	router := NewRouter(store, nil)
	require.True(t, router.Configured())

	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "show me laptops")
	assert.Equal(t, "Voici la réponse de l'agent", reply.Content)
}

// Agent distant en erreur → réponse orchestrateur par défaut, jamais d'échec.
func TestHandleMessageRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("COSMOS_URI", "")
	t.Setenv("AGENT_ENDPOINT", srv.URL)
	store := database.NewStore()
	router := NewRouter(store, nil)

	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "show me laptops")
	assert.Equal(t, DefaultReply, reply.Content)
}

// Agent distant qui traîne → le timeout du routeur borne l'attente et on
// retombe sur la réponse par défaut.
func TestHandleMessageRemoteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{"reply":"trop tard"}`))
	}))
	defer srv.Close()

	t.Setenv("COSMOS_URI", "")
	t.Setenv("AGENT_ENDPOINT", srv.URL)
	t.Setenv("AGENT_TIMEOUT_SECONDS", "1")
	store := database.NewStore()
	router := NewRouter(store, nil)

	start := time.Now()
	reply := router.HandleMessage(context.Background(), "customer-1", "s1", "show me laptops")
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, DefaultReply, reply.Content)
}
