package db

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/anri-dev/reservation-api/internal/config"
)

// NewRedis conecta ao Redis para o cache de respostas públicas. Retorna nil
// quando não configurado ou inalcançável; o cache simplesmente fica
// desligado.
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}
