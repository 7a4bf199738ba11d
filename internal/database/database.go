package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/config"
)

const connectTimeout = 10 * time.Second

// Store encapsule l'accès à Cosmos DB (API MongoDB). Le handle Mongo est
// partagé par tout le process et initialisé paresseusement : le premier
// appelant établit la connexion, les suivants la réutilisent. Un échec
// d'initialisation n'est PAS mis en cache — l'appel suivant retente la
// connexion au lieu de condamner la dépendance pour toute la vie du process.
type Store struct {
	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database

	mock *mockStore

	warnOnce sync.Once
}

// NewStore construit le service d'accès aux données. La connexion réelle est
// différée au premier usage.
func NewStore() *Store {
	return &Store{mock: newMockStore()}
}

// Configured indique si un endpoint Cosmos est renseigné.
func (s *Store) Configured() bool {
	return os.Getenv("COSMOS_URI") != ""
}

// warnNotConfigured logge l'absence de configuration une seule fois.
func (s *Store) warnNotConfigured() {
	s.warnOnce.Do(func() {
		log.Println("⚠️ COSMOS_URI non configuré — bascule sur les données mock en mémoire")
	})
}

// database retourne le handle partagé, en l'initialisant si nécessaire.
// Thread-safe : premier appelant connecte, les autres réutilisent.
func (s *Store) database(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	uri := os.Getenv("COSMOS_URI")
	if uri == "" {
		return nil, fmt.Errorf("COSMOS_URI non configuré")
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connexion Cosmos impossible: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		// On ferme proprement pour que le prochain appel reparte de zéro
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping Cosmos échoué: %w", err)
	}

	name := config.Getenv("COSMOS_DATABASE", "chatbot")
	s.client = client
	s.db = client.Database(name)
	log.Printf("✅ Connecté à Cosmos DB (base '%s')", name)

	return s.db, nil
}

// col résout le nom du container pour une collection logique, avec override
// possible via COSMOS_CONTAINER_<COLLECTION>.
func (s *Store) col(kind string) string {
	if v := os.Getenv("COSMOS_CONTAINER_" + strings.ToUpper(kind)); v != "" {
		return v
	}
	return kind
}

// Ping vérifie la joignabilité de la base pour le endpoint /health.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Configured() {
		return fmt.Errorf("non configuré")
	}
	db, err := s.database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close ferme la connexion partagée (arrêt du serveur).
func (s *Store) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			log.Println("⚠️ Erreur fermeture Cosmos:", err)
		} else {
			log.Println("🔌 Connexion Cosmos fermée")
		}
		s.client = nil
		s.db = nil
	}
}
