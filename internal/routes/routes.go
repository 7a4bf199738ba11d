package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/agents"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/handlers"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, store *database.Store, router *agents.Router) {
	r.Use(cors.Default())
	r.Use(middleware.Identity())
	r.Use(middleware.APIRateLimit())

	health := handlers.NewHealthHandler(store, router)
	products := handlers.NewProductHandler(store)
	cart := handlers.NewCartHandler(store)
	chat := handlers.NewChatHandler(store, router)
	auth := handlers.NewAuthHandler(store)

	r.GET("/", health.Root)
	r.GET("/health", health.Health)
	r.GET("/debug/auth", auth.DebugAuth)

	api := r.Group("/api")
	{
		api.GET("/products", products.List)
		api.GET("/products/search", products.Search)
		api.GET("/products/categories/list", products.Categories)
		api.GET("/products/:id", products.Get)

		api.GET("/cart", cart.Get)
		api.POST("/cart/items", cart.AddItem)
		api.PUT("/cart/items/:product_id", cart.UpdateItem)
		api.DELETE("/cart/items/:product_id", cart.RemoveItem)
		api.DELETE("/cart", cart.Clear)

		api.POST("/chat/message", chat.PostMessage)
		api.GET("/chat/history", chat.History)
		api.GET("/chat/ai/status", chat.AIStatus)
		api.GET("/chat/ws", chat.WebSocket)

		api.GET("/auth/me", auth.Me)
		api.POST("/auth/register", auth.Register)
		api.POST("/auth/login", auth.Login)
	}
}
