package domain

import (
	"strings"
	"time"
)

// AdminBenefit é o registro persistido e gerenciado pela área administrativa
type AdminBenefit struct {
	ID                     string      `json:"id" validate:"required"`
	Name                   string      `json:"name" validate:"required,max=255"`
	CompanyName            string      `json:"company_name" validate:"required,max=255"`
	CompanyWebsite         *string     `json:"company_website" validate:"omitempty,url"`
	CompanyContact         *string     `json:"company_contact" validate:"omitempty,max=255"`
	CompanySummary         *string     `json:"company_summary"`
	LogoURL                *string     `json:"logo_url" validate:"omitempty,url"`
	Description            string      `json:"description" validate:"required"`
	Category               Category    `json:"category" validate:"required,category"`
	BenefitType            BenefitType `json:"benefit_type" validate:"required,benefit_type"`
	RedemptionLink         *string     `json:"redemption_link" validate:"omitempty,url"`
	AdditionalInfo         *string     `json:"additional_info"`
	EligibleTiers          []TierCode  `json:"eligible_tiers" validate:"dive,tier"`
	CouponCode             *string     `json:"coupon_code" validate:"omitempty,max=64"`
	Validity               *string     `json:"validity"`
	RedemptionInstructions *string     `json:"redemption_instructions"`
	IsActive               bool        `json:"is_active"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// ToCatalogBenefit converte o registro para o formato do catálogo público
func (a AdminBenefit) ToCatalogBenefit() Benefit {
	tiers := make([]TierCode, len(a.EligibleTiers))
	copy(tiers, a.EligibleTiers)

	return Benefit{
		ID:                     a.ID,
		CompanyName:            a.CompanyName,
		Segment:                a.Category.Label(),
		SiteURL:                deref(a.CompanyWebsite),
		LogoURL:                a.LogoURL,
		Title:                  a.Name,
		Description:            a.Description,
		EligibleTiers:          tiers,
		Validity:               deref(a.Validity),
		RedemptionInstructions: deref(a.RedemptionInstructions),
		Observations:           deref(a.AdditionalInfo),
		CTALink:                deref(a.RedemptionLink),
		CouponCode:             a.CouponCode,
	}
}

// ToAdminBenefit converte um benefício do catálogo estático em registro
// administrável, usado na carga inicial do banco
func (b Benefit) ToAdminBenefit() AdminBenefit {
	tiers := make([]TierCode, len(b.EligibleTiers))
	copy(tiers, b.EligibleTiers)

	benefitType := BenefitTypeOther
	if b.HasCoupon() {
		benefitType = BenefitTypeDiscount
	}

	return AdminBenefit{
		ID:                     b.ID,
		Name:                   b.Title,
		CompanyName:            b.CompanyName,
		CompanyWebsite:         optional(&b.SiteURL),
		LogoURL:                b.LogoURL,
		Description:            b.Description,
		Category:               CategoryFromLabel(b.Segment),
		BenefitType:            benefitType,
		RedemptionLink:         optional(&b.CTALink),
		AdditionalInfo:         optional(&b.Observations),
		EligibleTiers:          tiers,
		CouponCode:             b.CouponCode,
		Validity:               optional(&b.Validity),
		RedemptionInstructions: optional(&b.RedemptionInstructions),
		IsActive:               true,
	}
}

// BenefitInput é o payload do formulário de cadastro e edição
type BenefitInput struct {
	Name                   string      `json:"name" validate:"required,max=255"`
	CompanyName            string      `json:"company_name" validate:"required,max=255"`
	CompanyWebsite         *string     `json:"company_website" validate:"omitempty,url"`
	CompanyContact         *string     `json:"company_contact" validate:"omitempty,max=255"`
	CompanySummary         *string     `json:"company_summary"`
	Description            string      `json:"description" validate:"required"`
	Category               Category    `json:"category" validate:"required,category"`
	BenefitType            BenefitType `json:"benefit_type" validate:"required,benefit_type"`
	RedemptionLink         *string     `json:"redemption_link" validate:"omitempty,url"`
	AdditionalInfo         *string     `json:"additional_info"`
	EligibleTiers          []TierCode  `json:"eligible_tiers" validate:"dive,tier"`
	CouponCode             *string     `json:"coupon_code" validate:"omitempty,max=64"`
	Validity               *string     `json:"validity"`
	RedemptionInstructions *string     `json:"redemption_instructions"`
	IsActive               *bool       `json:"is_active"`
}

// Normalize apara os textos, troca opcionais vazios por nulos e deixa o
// benefício ativo por padrão. Categoria e tipo continuam obrigatórios.
func (in BenefitInput) Normalize() BenefitInput {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	out.CompanyName = strings.TrimSpace(in.CompanyName)
	out.Description = strings.TrimSpace(in.Description)
	out.CompanyWebsite = optional(in.CompanyWebsite)
	out.CompanyContact = optional(in.CompanyContact)
	out.CompanySummary = optional(in.CompanySummary)
	out.RedemptionLink = optional(in.RedemptionLink)
	out.AdditionalInfo = optional(in.AdditionalInfo)
	out.CouponCode = optional(in.CouponCode)
	out.Validity = optional(in.Validity)
	out.RedemptionInstructions = optional(in.RedemptionInstructions)

	if out.IsActive == nil {
		active := true
		out.IsActive = &active
	}
	if in.EligibleTiers != nil {
		out.EligibleTiers = make([]TierCode, len(in.EligibleTiers))
		copy(out.EligibleTiers, in.EligibleTiers)
	}

	return out
}

// ApplyTo reescreve todos os campos editáveis do registro.
// ID, logo e datas ficam a cargo de quem chama.
func (in BenefitInput) ApplyTo(b *AdminBenefit) {
	b.Name = in.Name
	b.CompanyName = in.CompanyName
	b.CompanyWebsite = in.CompanyWebsite
	b.CompanyContact = in.CompanyContact
	b.CompanySummary = in.CompanySummary
	b.Description = in.Description
	b.Category = in.Category
	b.BenefitType = in.BenefitType
	b.RedemptionLink = in.RedemptionLink
	b.AdditionalInfo = in.AdditionalInfo
	b.EligibleTiers = in.EligibleTiers
	b.CouponCode = in.CouponCode
	b.Validity = in.Validity
	b.RedemptionInstructions = in.RedemptionInstructions
	b.IsActive = in.IsActive == nil || *in.IsActive
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
