package domain

import "fmt"

// TierCode identifica o nível de cliente Pagaleve
type TierCode string

const (
	TierAmbassadors     TierCode = "T1"
	TierHighPerformance TierCode = "T2"
	TierActiveBase      TierCode = "T3"
)

// AllTiers retorna os tiers na ordem de exibição
func AllTiers() []TierCode {
	return []TierCode{TierAmbassadors, TierHighPerformance, TierActiveBase}
}

func (t TierCode) IsValid() bool {
	switch t {
	case TierAmbassadors, TierHighPerformance, TierActiveBase:
		return true
	}
	return false
}

// Name retorna o nome de exibição do tier
func (t TierCode) Name() string {
	switch t {
	case TierAmbassadors:
		return "Embaixadores"
	case TierHighPerformance:
		return "Alta Performance"
	case TierActiveBase:
		return "Base Ativa"
	}
	return ""
}

// ParseTierCode converte a entrada externa, rejeitando códigos desconhecidos
func ParseTierCode(s string) (TierCode, error) {
	t := TierCode(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

type Tier struct {
	ID                TierCode `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Highlights        []string `json:"highlights"`
	FeaturedCompanies []string `json:"featured_companies"`
}

// FeaturedPageCount retorna quantas páginas o carrossel de empresas possui
func (t Tier) FeaturedPageCount(size int) int {
	if size <= 0 || len(t.FeaturedCompanies) == 0 {
		return 0
	}
	return (len(t.FeaturedCompanies) + size - 1) / size
}

// FeaturedPage retorna a página do carrossel. A página dá a volta ao passar do fim.
func (t Tier) FeaturedPage(page, size int) []string {
	pages := t.FeaturedPageCount(size)
	if pages == 0 {
		return []string{}
	}

	page %= pages
	if page < 0 {
		page += pages
	}

	start := page * size
	end := min(start+size, len(t.FeaturedCompanies))

	out := make([]string, end-start)
	copy(out, t.FeaturedCompanies[start:end])
	return out
}
