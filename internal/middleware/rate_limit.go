package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/cache"
)

const (
	// Limite générale par IP et par minute
	APIMaxRequests = 100
	APICooldown    = 1 * time.Minute
)

// APIRateLimit limite le nombre de requêtes par IP. Sans Redis configuré le
// middleware est un no-op — jamais bloquant pour une dépendance absente.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.Enabled() {
			c.Next()
			return
		}

		ip := c.ClientIP()
		key := "api_requests:" + ip

		requests, err := cache.IncrementRateLimit(key, APICooldown)
		if err != nil {
			// Redis en panne : on laisse passer plutôt que de bloquer l'API
			c.Next()
			return
		}

		if requests > APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"detail":      "Trop de requêtes. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", APIMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", APIMaxRequests-requests))

		c.Next()
	}
}
