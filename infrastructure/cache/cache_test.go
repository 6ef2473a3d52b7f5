package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

type clock struct {
	at time.Time
}

func (c *clock) now() time.Time { return c.at }

func (c *clock) advance(d time.Duration) { c.at = c.at.Add(d) }

func TestMemoryCatalogCache(t *testing.T) {
	ctx := context.Background()
	clk := &clock{at: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

	c := NewMemoryCatalogCache(10 * time.Minute).(*memoryCatalogCache)
	c.now = clk.now

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "cache vazio não deve retornar dados")

	records := []*domain.AdminBenefit{
		{ID: "b-1", Name: "Frete", EligibleTiers: []domain.TierCode{domain.TierAmbassadors}},
	}
	require.NoError(t, c.Set(ctx, records))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "b-1", got[0].ID)

	got[0].Name = "alterado"
	got[0].EligibleTiers[0] = domain.TierActiveBase
	again, _, _ := c.Get(ctx)
	assert.Equal(t, "Frete", again[0].Name)
	assert.Equal(t, domain.TierAmbassadors, again[0].EligibleTiers[0])

	clk.advance(10 * time.Minute)
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok, "entrada expirada")

	require.NoError(t, c.Set(ctx, records))
	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)
}

func TestMemoryConfirmationStore(t *testing.T) {
	ctx := context.Background()
	clk := &clock{at: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

	s := NewMemoryConfirmationStore().(*memoryConfirmationStore)
	s.now = clk.now

	require.NoError(t, s.Save(ctx, "tok-1", "b-1", 5*time.Minute))

	ok, err := s.Consume(ctx, "tok-1", "b-9")
	require.NoError(t, err)
	assert.False(t, ok, "token de outro benefício")

	ok, err = s.Consume(ctx, "tok-1", "b-1")
	require.NoError(t, err)
	assert.True(t, ok, "id errado não queima o token")

	ok, err = s.Consume(ctx, "tok-1", "b-1")
	require.NoError(t, err)
	assert.False(t, ok, "token só pode ser consumido uma vez")

	require.NoError(t, s.Save(ctx, "tok-2", "b-2", 5*time.Minute))
	clk.advance(5 * time.Minute)
	ok, _ = s.Consume(ctx, "tok-2", "b-2")
	assert.False(t, ok, "token expirado")

	ok, _ = s.Consume(ctx, "desconhecido", "b-1")
	assert.False(t, ok)
}

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	clk := &clock{at: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

	s := NewMemoryRevocationStore().(*memoryRevocationStore)
	s.now = clk.now

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Hour))
	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-2", 0))
	revoked, _ = s.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked, "token já expirado não precisa ser guardado")

	clk.advance(time.Hour)
	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}
