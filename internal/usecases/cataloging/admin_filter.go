package cataloging

import (
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/pkg/utils"
)

type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

func (s StatusFilter) IsValid() bool {
	switch s {
	case StatusAll, StatusActive, StatusInactive:
		return true
	}
	return false
}

// AdminFilter é a mesma política do catálogo aplicada aos registros administrativos
type AdminFilter struct {
	Text     string       `json:"text"`
	Category string       `json:"category"`
	Status   StatusFilter `json:"status"`
}

func (f AdminFilter) Normalize() AdminFilter {
	if f.Category == "" {
		f.Category = AllValue
	}
	if f.Status == "" {
		f.Status = StatusAll
	}
	return f
}

func (f AdminFilter) Validate() error {
	f = f.Normalize()
	fields := domain.FieldErrors{}
	if f.Category != AllValue && !domain.Category(f.Category).IsValid() {
		fields["category"] = "Categoria inválida"
	}
	if !f.Status.IsValid() {
		fields["status"] = "Status inválido"
	}
	if !fields.Empty() {
		return NewCatalogError(ErrInvalidQuery, CodeInvalidQuery, "Filtro inválido", fields)
	}
	return nil
}

// FilterAdmin filtra os registros preservando a ordem recebida
func FilterAdmin(records []*domain.AdminBenefit, f AdminFilter) []*domain.AdminBenefit {
	f = f.Normalize()

	out := make([]*domain.AdminBenefit, 0, len(records))
	for _, r := range records {
		if !utils.ContainsFold(r.Name, f.Text) && !utils.ContainsFold(r.CompanyName, f.Text) {
			continue
		}
		if f.Category != AllValue && string(r.Category) != f.Category {
			continue
		}
		switch f.Status {
		case StatusActive:
			if !r.IsActive {
				continue
			}
		case StatusInactive:
			if r.IsActive {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
