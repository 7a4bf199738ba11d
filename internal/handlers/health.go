package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/agents"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/cache"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/services"
)

type HealthHandler struct {
	Store  *database.Store
	Router *agents.Router
}

func NewHealthHandler(store *database.Store, router *agents.Router) *HealthHandler {
	return &HealthHandler{Store: store, Router: router}
}

// Root présente le service.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "customer-chatbot-backend",
		"status":  "ok",
	})
}

// Health rapporte la joignabilité de chaque dépendance séparément, pour que
// l'exploitation distingue une panne partielle d'une panne totale. Toujours
// 200 : l'indisponibilité d'une dépendance est un état, pas une erreur.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	database := checkStatus(h.Store.Ping(ctx))
	chat := checkStatus(h.Router.PingBackend(ctx))
	redis := checkStatus(cache.Ping(ctx))
	search := checkStatus(services.PingElastic(ctx))

	status := "ok"
	if database != "ok" || chat != "ok" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"database": database,
		"chat":     chat,
		"cache":    redis,
		"search":   search,
	})
}

func checkStatus(err error) string {
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}
