package cataloging

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/benefits-club-api/internal/domain"
)

// Source fornece a lista de benefícios exibida no catálogo público
type Source interface {
	Benefits(ctx context.Context) ([]domain.Benefit, error)
}

// Snapshot guarda a lista publicada. A lista é sempre trocada por inteiro.
type Snapshot struct {
	mu          sync.RWMutex
	benefits    []domain.Benefit
	generatedAt time.Time
}

func NewSnapshot(benefits []domain.Benefit) *Snapshot {
	return &Snapshot{
		benefits:    cloneBenefits(benefits),
		generatedAt: time.Now(),
	}
}

func (s *Snapshot) Benefits(ctx context.Context) ([]domain.Benefit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBenefits(s.benefits), nil
}

// Replace publica uma nova lista
func (s *Snapshot) Replace(benefits []domain.Benefit, at time.Time) {
	fresh := cloneBenefits(benefits)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.benefits = fresh
	s.generatedAt = at
}

func (s *Snapshot) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.benefits)
}

func cloneBenefits(in []domain.Benefit) []domain.Benefit {
	out := make([]domain.Benefit, len(in))
	copy(out, in)
	return out
}
