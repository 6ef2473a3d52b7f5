package cataloging

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

func sampleBenefits() []domain.Benefit {
	return []domain.Benefit{
		{ID: "1", CompanyName: "Yampi", Title: "90 dias grátis", Segment: "Tecnologia", EligibleTiers: []domain.TierCode{"T1"}},
		{ID: "2", CompanyName: "Alura", Title: "Desconto em licenças", Segment: "Educação", EligibleTiers: []domain.TierCode{"T1", "T2"}},
		{ID: "3", CompanyName: "V10X", Title: "Diagnóstico grátis", Segment: "Marketing", EligibleTiers: []domain.TierCode{"T1", "T2", "T3"}},
		{ID: "4", CompanyName: "PluggTo", Title: "Créditos", Segment: "Tecnologia", EligibleTiers: []domain.TierCode{"T3"}},
		{ID: "5", CompanyName: "Sem Tier", Title: "Oferta", Segment: "Outros"},
	}
}

func ids(benefits []domain.Benefit) []string {
	out := make([]string, 0, len(benefits))
	for _, b := range benefits {
		out = append(out, b.ID)
	}
	return out
}

func isSubsequence(sub, full []domain.Benefit) bool {
	i := 0
	for _, b := range full {
		if i < len(sub) && sub[i].ID == b.ID {
			i++
		}
	}
	return i == len(sub)
}

func randomQueries(r *rand.Rand, n int) []Query {
	texts := []string{"", "a", "GRÁTIS", "tec", "yampi", "zzz", "o"}
	segments := []string{"", AllValue, "Tecnologia", "Educação", "Marketing", "Inexistente"}
	tiers := []string{"", AllValue, "T1", "T2", "T3"}

	out := make([]Query, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Query{
			Text:    texts[r.Intn(len(texts))],
			Segment: segments[r.Intn(len(segments))],
			Tier:    tiers[r.Intn(len(tiers))],
		})
	}
	return out
}

func TestFilter_Example(t *testing.T) {
	benefits := []domain.Benefit{
		{ID: "yampi", CompanyName: "Yampi", Segment: "Tecnologia", EligibleTiers: []domain.TierCode{"T1"}},
		{ID: "alura", CompanyName: "Alura", Segment: "Educação", EligibleTiers: []domain.TierCode{"T1", "T2"}},
	}

	result := Filter(benefits, Query{Tier: "T2"})
	assert.Equal(t, []string{"alura"}, ids(result))
}

func TestFilter_Identity(t *testing.T) {
	benefits := sampleBenefits()
	assert.Equal(t, benefits, Filter(benefits, Query{Text: "", Segment: AllValue, Tier: AllValue}))
	assert.Equal(t, benefits, Filter(benefits, Query{}))
}

func TestFilter_Properties(t *testing.T) {
	benefits := sampleBenefits()
	r := rand.New(rand.NewSource(42))

	for _, q := range randomQueries(r, 200) {
		once := Filter(benefits, q)

		assert.True(t, isSubsequence(once, benefits), "subsequência para %+v", q)
		assert.Equal(t, once, Filter(once, q), "idempotência para %+v", q)

		seen := map[string]bool{}
		for _, b := range once {
			assert.False(t, seen[b.ID], "duplicado %s", b.ID)
			seen[b.ID] = true
		}
	}
}

func TestFilter_TierMembership(t *testing.T) {
	benefits := sampleBenefits()

	for _, tier := range domain.AllTiers() {
		result := Filter(benefits, Query{Tier: string(tier)})
		got := map[string]bool{}
		for _, b := range result {
			got[b.ID] = true
		}

		for _, b := range benefits {
			assert.Equal(t, b.IsEligible(tier), got[b.ID], "benefício %s tier %s", b.ID, tier)
		}
	}
}

func TestFilter_Combinations(t *testing.T) {
	benefits := sampleBenefits()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "texto no nome da empresa ignora caixa", query: Query{Text: "YAMPI"}, want: []string{"1"}},
		{name: "texto no título", query: Query{Text: "grátis"}, want: []string{"1", "3"}},
		{name: "texto no segmento", query: Query{Text: "educ"}, want: []string{"2"}},
		{name: "segmento exato", query: Query{Segment: "Tecnologia"}, want: []string{"1", "4"}},
		{name: "segmento não faz busca parcial", query: Query{Segment: "Tecno"}, want: []string{}},
		{name: "filtros combinados com E", query: Query{Segment: "Tecnologia", Tier: "T3"}, want: []string{"4"}},
		{name: "sem tiers nunca aparece filtrando por tier", query: Query{Text: "Sem Tier", Tier: "T1"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(benefits, tt.query)))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	benefits := sampleBenefits()
	before := ids(benefits)

	_ = Filter(benefits, Query{Tier: "T2"})
	assert.Equal(t, before, ids(benefits))
}

func TestSegments(t *testing.T) {
	assert.Equal(t,
		[]string{AllValue, "Tecnologia", "Educação", "Marketing", "Outros"},
		Segments(sampleBenefits()),
	)
	assert.Equal(t, []string{AllValue}, Segments(nil))
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, Query{}.Validate())
	assert.NoError(t, Query{Tier: "T3"}.Validate())

	err := Query{Tier: "T9"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQuery))

	var catalogErr *CatalogError
	require.True(t, errors.As(err, &catalogErr))
	assert.Equal(t, "Tier inválido", catalogErr.Fields["tier"])
}

func TestNewResult(t *testing.T) {
	empty := NewResult([]domain.Benefit{}, Query{Text: "zzz", Tier: "T1"})
	assert.True(t, empty.Empty)
	require.NotNil(t, empty.ClearQuery)
	assert.True(t, empty.ClearQuery.IsNeutral())

	full := NewResult(sampleBenefits(), Query{})
	assert.False(t, full.Empty)
	assert.Equal(t, 5, full.Total)
	assert.Nil(t, full.ClearQuery)
}

func TestFilterAdmin(t *testing.T) {
	records := []*domain.AdminBenefit{
		{ID: "a", Name: "Frete grátis", CompanyName: "Loja X", Category: domain.CategoryLogistics, IsActive: true},
		{ID: "b", Name: "Mentoria", CompanyName: "Growth Co", Category: domain.CategoryMarketing, IsActive: false},
		{ID: "c", Name: "Créditos", CompanyName: "Cloud", Category: domain.CategoryTechnology, IsActive: true},
	}

	adminIDs := func(in []*domain.AdminBenefit) []string {
		out := []string{}
		for _, r := range in {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, adminIDs(FilterAdmin(records, AdminFilter{})))
	assert.Equal(t, []string{"b"}, adminIDs(FilterAdmin(records, AdminFilter{Text: "growth"})))
	assert.Equal(t, []string{"a"}, adminIDs(FilterAdmin(records, AdminFilter{Category: "logistica"})))
	assert.Equal(t, []string{"b"}, adminIDs(FilterAdmin(records, AdminFilter{Status: StatusInactive})))
	assert.Equal(t, []string{"a", "c"}, adminIDs(FilterAdmin(records, AdminFilter{Status: StatusActive})))

	assert.Error(t, AdminFilter{Category: "games"}.Validate())
	assert.Error(t, AdminFilter{Status: "archived"}.Validate())
	assert.NoError(t, AdminFilter{}.Validate())
}
