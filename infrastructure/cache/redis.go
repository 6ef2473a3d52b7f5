// Package cache guarda os dados de vida curta da API: o cache do catálogo,
// os tokens de confirmação de exclusão e as sessões revogadas.
// Cada store tem uma versão em redis e outra em memória para quando o redis
// não está habilitado.
package cache

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/benefits-club-api/internal/config"
)

func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "erro ao conectar no redis %s", cfg.Addr)
	}

	return client, nil
}
