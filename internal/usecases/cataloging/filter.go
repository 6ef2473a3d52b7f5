package cataloging

import (
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/pkg/utils"
)

// AllValue desliga o filtro de segmento ou de tier
const AllValue = "all"

type Query struct {
	Text    string `json:"text"`
	Segment string `json:"segment"`
	Tier    string `json:"tier"`
}

// Normalize trata segmento e tier vazios como "all"
func (q Query) Normalize() Query {
	if q.Segment == "" {
		q.Segment = AllValue
	}
	if q.Tier == "" {
		q.Tier = AllValue
	}
	return q
}

// Clear retorna a consulta neutra, que devolve o catálogo inteiro
func (q Query) Clear() Query {
	return Query{Segment: AllValue, Tier: AllValue}
}

func (q Query) IsNeutral() bool {
	q = q.Normalize()
	return q.Text == "" && q.Segment == AllValue && q.Tier == AllValue
}

// Validate rejeita tiers fora do conjunto conhecido
func (q Query) Validate() error {
	q = q.Normalize()
	if q.Tier == AllValue {
		return nil
	}
	if _, err := domain.ParseTierCode(q.Tier); err != nil {
		return NewCatalogError(ErrInvalidQuery, CodeInvalidQuery, "Tier inválido", domain.FieldErrors{"tier": "Tier inválido"})
	}
	return nil
}

// Filter devolve os benefícios que casam com a consulta, na ordem original.
// A entrada não é alterada.
func Filter(benefits []domain.Benefit, q Query) []domain.Benefit {
	q = q.Normalize()

	out := make([]domain.Benefit, 0, len(benefits))
	for _, b := range benefits {
		if matches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b domain.Benefit, q Query) bool {
	textMatch := utils.ContainsFold(b.CompanyName, q.Text) ||
		utils.ContainsFold(b.Title, q.Text) ||
		utils.ContainsFold(b.Segment, q.Text)
	if !textMatch {
		return false
	}

	if q.Segment != AllValue && b.Segment != q.Segment {
		return false
	}

	if q.Tier != AllValue && !b.IsEligible(domain.TierCode(q.Tier)) {
		return false
	}

	return true
}

// Segments lista os segmentos distintos na ordem em que aparecem, com "all" na frente
func Segments(benefits []domain.Benefit) []string {
	seen := make(map[string]bool, len(benefits))
	out := []string{AllValue}
	for _, b := range benefits {
		if seen[b.Segment] {
			continue
		}
		seen[b.Segment] = true
		out = append(out, b.Segment)
	}
	return out
}

type Result struct {
	Benefits   []domain.Benefit `json:"benefits"`
	Total      int              `json:"total"`
	Empty      bool             `json:"empty"`
	ClearQuery *Query           `json:"clear_query,omitempty"`
}

// NewResult monta o resultado; a consulta neutra só é oferecida quando nada casou
func NewResult(benefits []domain.Benefit, q Query) *Result {
	result := &Result{
		Benefits: benefits,
		Total:    len(benefits),
		Empty:    len(benefits) == 0,
	}
	if result.Empty {
		neutral := q.Clear()
		result.ClearQuery = &neutral
	}
	return result
}
