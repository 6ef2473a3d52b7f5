package cache

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

const catalogKey = "benefits:active"

// CatalogCache guarda a última leitura dos benefícios ativos
type CatalogCache interface {
	// Get retorna ok=false quando não há nada em cache
	Get(ctx context.Context) (benefits []*domain.AdminBenefit, ok bool, err error)
	Set(ctx context.Context, benefits []*domain.AdminBenefit) error
	Invalidate(ctx context.Context) error
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	return &redisCatalogCache{client: client, ttl: ttl}
}

func (c *redisCatalogCache) Get(ctx context.Context) ([]*domain.AdminBenefit, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "erro ao ler cache do catálogo")
	}

	var benefits []*domain.AdminBenefit
	if err := jsoniter.Unmarshal(raw, &benefits); err != nil {
		return nil, false, errors.Wrap(err, "cache do catálogo corrompido")
	}

	return benefits, true, nil
}

func (c *redisCatalogCache) Set(ctx context.Context, benefits []*domain.AdminBenefit) error {
	raw, err := jsoniter.Marshal(benefits)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "erro ao gravar cache do catálogo")
	}
	return nil
}

func (c *redisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return errors.Wrap(err, "erro ao invalidar cache do catálogo")
	}
	return nil
}

type memoryCatalogCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	benefits  []*domain.AdminBenefit
	expiresAt time.Time
	filled    bool
}

func NewMemoryCatalogCache(ttl time.Duration) CatalogCache {
	return &memoryCatalogCache{ttl: ttl, now: time.Now}
}

func (c *memoryCatalogCache) Get(ctx context.Context) ([]*domain.AdminBenefit, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.filled || (c.ttl > 0 && !c.now().Before(c.expiresAt)) {
		return nil, false, nil
	}

	return cloneRecords(c.benefits), true, nil
}

func (c *memoryCatalogCache) Set(ctx context.Context, benefits []*domain.AdminBenefit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.benefits = cloneRecords(benefits)
	c.expiresAt = c.now().Add(c.ttl)
	c.filled = true
	return nil
}

func (c *memoryCatalogCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.benefits = nil
	c.filled = false
	return nil
}

func cloneRecords(in []*domain.AdminBenefit) []*domain.AdminBenefit {
	out := make([]*domain.AdminBenefit, 0, len(in))
	for _, b := range in {
		if b == nil {
			continue
		}
		copied := *b
		copied.EligibleTiers = append([]domain.TierCode(nil), b.EligibleTiers...)
		out = append(out, &copied)
	}
	return out
}
