package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/gin-gonic/gin"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/agents"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/cache"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/config"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/credentials"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/routes"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/services"
)

func main() {
	config.Load()

	// ✅ Credential cloud — optionnelle en local, les agents passent en repli
	var cred azcore.TokenCredential
	if c, err := credentials.NewFromEnv(); err != nil {
		log.Println("⚠️ Credential cloud non résolue:", err)
	} else {
		cred = c
		log.Println("✅ Credential cloud résolue")
	}

	// ✅ Store construit une fois au démarrage, connexion différée au premier
	// usage — un échec n'est jamais mis en cache, on retente au prochain appel
	store := database.NewStore()
	if !store.Configured() {
		log.Println("⚠️ Cosmos DB non configuré — catalogue et paniers servis depuis le mock en mémoire")
	}

	// ✅ Cache Redis optionnel
	if err := cache.InitRedis(); err != nil {
		log.Println("⚠️ Redis indisponible — cache et rate limiting désactivés:", err)
	}

	// ✅ Recherche Elasticsearch optionnelle
	if err := services.InitElastic(); err != nil {
		log.Println("⚠️ Elasticsearch indisponible — recherche en repli sur le catalogue:", err)
	} else {
		go services.IndexCatalog(context.Background(), store)
	}

	router := agents.NewRouter(store, cred)

	r := gin.Default()
	routes.RegisterRoutes(r, store, router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Println("🚀 Serveur chatbot lancé sur le port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Erreur serveur:", err)
		}
	}()

	// Arrêt propre : on ferme le serveur puis les connexions externes
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🔌 Arrêt du serveur...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("⚠️ Arrêt forcé:", err)
	}
	store.Close(ctx)
	cache.CloseRedis()
	log.Println("✅ Serveur arrêté")
}
