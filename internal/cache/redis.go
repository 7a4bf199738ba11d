package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initialise la connexion Redis. Le cache est optionnel : sans
// REDIS_HOST on tourne sans cache ni rate limiting, jamais d'échec fatal.
func InitRedis() error {
	redisHost := os.Getenv("REDIS_HOST")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		return fmt.Errorf("REDIS_HOST non configuré")
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		RedisClient = nil
		return fmt.Errorf("impossible de se connecter à Redis: %v", err)
	}

	log.Println("✅ Redis connecté avec succès")
	return nil
}

// Enabled indique si le cache est actif.
func Enabled() bool {
	return RedisClient != nil
}

// Ping vérifie la joignabilité de Redis pour /health.
func Ping(ctx context.Context) error {
	if RedisClient == nil {
		return fmt.Errorf("non configuré")
	}
	return RedisClient.Ping(ctx).Err()
}

// CloseRedis ferme la connexion Redis.
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// --- Cache générique ---

// SetCache stocke une valeur dans le cache.
func SetCache(key string, value interface{}, duration time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(ctx, key, value, duration).Err()
}

// GetCache récupère une valeur du cache.
func GetCache(key string) (string, error) {
	if RedisClient == nil {
		return "", redis.Nil
	}
	return RedisClient.Get(ctx, key).Result()
}

// DeleteCache supprime une clé du cache.
func DeleteCache(key string) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// --- Rate Limiting ---

// IncrementRateLimit incrémente le compteur de rate limit.
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	if RedisClient == nil {
		return 0, nil
	}
	pipe := RedisClient.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
