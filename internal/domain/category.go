package domain

import "fmt"

type Category string

const (
	CategoryMarketing      Category = "marketing"
	CategoryLogistics      Category = "logistica"
	CategoryFinance        Category = "financas"
	CategoryTools          Category = "ferramentas"
	CategoryTechnology     Category = "tecnologia"
	CategoryHumanResources Category = "recursos_humanos"
	CategoryOther          Category = "outro"
)

func AllCategories() []Category {
	return []Category{
		CategoryMarketing,
		CategoryLogistics,
		CategoryFinance,
		CategoryTools,
		CategoryTechnology,
		CategoryHumanResources,
		CategoryOther,
	}
}

func (c Category) IsValid() bool {
	return c.Label() != ""
}

func (c Category) Label() string {
	switch c {
	case CategoryMarketing:
		return "Marketing"
	case CategoryLogistics:
		return "Logística"
	case CategoryFinance:
		return "Finanças"
	case CategoryTools:
		return "Ferramentas"
	case CategoryTechnology:
		return "Tecnologia"
	case CategoryHumanResources:
		return "Recursos Humanos"
	case CategoryOther:
		return "Outro"
	}
	return ""
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// CategoryFromLabel é o inverso de Label; rótulos desconhecidos viram "outro"
func CategoryFromLabel(label string) Category {
	for _, c := range AllCategories() {
		if c.Label() == label {
			return c
		}
	}
	return CategoryOther
}

type BenefitType string

const (
	BenefitTypeDiscount BenefitType = "desconto"
	BenefitTypeCredit   BenefitType = "credito"
	BenefitTypeFree     BenefitType = "gratuidade"
	BenefitTypeMentor   BenefitType = "mentoria"
	BenefitTypeOther    BenefitType = "outro"
)

func AllBenefitTypes() []BenefitType {
	return []BenefitType{BenefitTypeDiscount, BenefitTypeCredit, BenefitTypeFree, BenefitTypeMentor, BenefitTypeOther}
}

func (t BenefitType) IsValid() bool {
	return t.Label() != ""
}

func (t BenefitType) Label() string {
	switch t {
	case BenefitTypeDiscount:
		return "Desconto"
	case BenefitTypeCredit:
		return "Crédito"
	case BenefitTypeFree:
		return "Gratuidade"
	case BenefitTypeMentor:
		return "Mentoria"
	case BenefitTypeOther:
		return "Outro"
	}
	return ""
}

func ParseBenefitType(s string) (BenefitType, error) {
	t := BenefitType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBenefitType, s)
	}
	return t, nil
}
