package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/agents"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
)

type ChatHandler struct {
	Store  *database.Store
	Router *agents.Router
}

func NewChatHandler(store *database.Store, router *agents.Router) *ChatHandler {
	return &ChatHandler{Store: store, Router: router}
}

type chatInput struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

// PostMessage route un message utilisateur vers l'agent adapté et retourne
// sa réponse. Le chat répond toujours quelque chose : agent injoignable →
// réponse de repli, jamais un corps d'erreur.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Données invalides"})
		return
	}
	if input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "content requis"})
		return
	}
	if input.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "session_id requis"})
		return
	}

	userID := c.GetString("user_id")
	reply := h.Router.HandleMessage(c.Request.Context(), userID, input.SessionID, input.Content)

	c.JSON(http.StatusOK, reply)
}

// History retourne les messages d'une session, ordonnés par timestamp.
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "session_id requis"})
		return
	}

	messages := h.Store.ListChatMessages(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// AIStatus expose l'état du backend IA (configuré vs repli).
func (h *ChatHandler) AIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Router.Status())
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// WebSocket gère le chat en temps réel : chaque message reçu est routé comme
// un POST /api/chat/message et la réponse renvoyée sur la même connexion.
func (h *ChatHandler) WebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Assistant prêt",
	})

	for {
		var input chatInput
		if err := conn.ReadJSON(&input); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("⚠️ Connexion WebSocket interrompue: %v", err)
			}
			return
		}

		if input.Content == "" || input.SessionID == "" {
			conn.WriteJSON(gin.H{"type": "error", "detail": "content et session_id requis"})
			continue
		}

		reply := h.Router.HandleMessage(c.Request.Context(), userID, input.SessionID, input.Content)
		if err := conn.WriteJSON(gin.H{"type": "message", "message": reply}); err != nil {
			return
		}
	}
}
