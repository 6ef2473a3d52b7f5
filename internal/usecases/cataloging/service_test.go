package cataloging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/internal/catalogdata"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

type failingSource struct{}

func (failingSource) Benefits(ctx context.Context) ([]domain.Benefit, error) {
	return nil, errors.New("connection refused")
}

func newTestService(t *testing.T, source Source) CatalogService {
	t.Helper()
	data, err := catalogdata.Load()
	require.NoError(t, err)

	if source == nil {
		source = NewSnapshot(data.Benefits)
	}

	svc, err := NewService(source, data, 2)
	require.NoError(t, err)
	return svc
}

func TestService_ListBenefits(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	result, err := svc.ListBenefits(ctx, Query{Tier: "T2"})
	require.NoError(t, err)
	for _, b := range result.Benefits {
		assert.True(t, b.IsEligible(domain.TierHighPerformance))
	}

	_, err = svc.ListBenefits(ctx, Query{Tier: "T4"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	result, err = svc.ListBenefits(ctx, Query{Text: "nada casa com isso"})
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.NotNil(t, result.ClearQuery)
}

func TestService_SourceFailure(t *testing.T) {
	svc := newTestService(t, failingSource{})

	_, err := svc.ListBenefits(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	_, err = svc.Segments(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestService_GetBenefit(t *testing.T) {
	svc := newTestService(t, nil)

	detail, err := svc.GetBenefit(context.Background(), "alura")
	require.NoError(t, err)

	assert.True(t, detail.HasCoupon)
	assert.Contains(t, detail.DescriptionHTML, "<p>")
	require.Len(t, detail.TierRows, 2)
	assert.Equal(t, "Embaixadores", detail.TierRows[0].Name)
	assert.Equal(t, "20 dias grátis + 25% de desconto em licenças corporativas", detail.TierRows[0].Description)

	detail, err = svc.GetBenefit(context.Background(), "v10x")
	require.NoError(t, err)
	assert.Equal(t, "Benefício disponível para clientes Base Ativa", detail.TierRows[2].Description)
	assert.False(t, detail.HasCoupon)

	_, err = svc.GetBenefit(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, ErrBenefitNotFound)
}

func TestService_FAQsRenderMarkdown(t *testing.T) {
	svc := newTestService(t, nil)

	faqs := svc.FAQs()
	require.NotEmpty(t, faqs)
	for _, faq := range faqs {
		assert.NotEmpty(t, faq.AnswerHTML)
	}
	assert.Contains(t, faqs[1].AnswerHTML, "<strong>cupom</strong>")
	assert.Contains(t, faqs[0].AnswerHTML, "<br")
}

func TestService_FeaturedCompanies(t *testing.T) {
	svc := newTestService(t, nil)

	first := svc.FeaturedCompanies(0)
	require.Len(t, first, 3)
	assert.Equal(t, []string{"Yampi", "Alura"}, first[0].Companies)
	assert.Equal(t, 2, first[0].Pages)

	wrapped := svc.FeaturedCompanies(2)
	assert.Equal(t, first[0].Companies, wrapped[0].Companies)
	assert.Equal(t, 0, wrapped[0].Page)
}

func TestService_ExecutiveSessions(t *testing.T) {
	svc := newTestService(t, nil)

	sessions := svc.ExecutiveSessions()
	require.NotEmpty(t, sessions)

	session, err := svc.GetExecutiveSession(sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, sessions[0].HostName, session.HostName)

	_, err = svc.GetExecutiveSession("x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSnapshot_Replace(t *testing.T) {
	snapshot := NewSnapshot(sampleBenefits())
	assert.Equal(t, 5, snapshot.Len())

	read, err := snapshot.Benefits(context.Background())
	require.NoError(t, err)
	read[0].CompanyName = "alterado"

	again, _ := snapshot.Benefits(context.Background())
	assert.Equal(t, "Yampi", again[0].CompanyName)

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot.Replace(sampleBenefits()[:1], at)
	assert.Equal(t, 1, snapshot.Len())
	assert.Equal(t, at, snapshot.GeneratedAt())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = snapshot.Benefits(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
