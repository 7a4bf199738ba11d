package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// IsDev indique si on tourne en environnement de développement (APP_ENV=dev,
// insensible à la casse).
func IsDev() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "dev")
}

// Getenv retourne la variable d'environnement ou une valeur par défaut.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
