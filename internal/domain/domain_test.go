package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTierCode(t *testing.T) {
	assert.Equal(t, "Embaixadores", TierAmbassadors.Name())
	assert.Equal(t, "Alta Performance", TierHighPerformance.Name())
	assert.Equal(t, "Base Ativa", TierActiveBase.Name())
	assert.Equal(t, []TierCode{"T1", "T2", "T3"}, AllTiers())

	_, err := ParseTierCode("T4")
	assert.ErrorIs(t, err, ErrUnknownTier)

	tier, err := ParseTierCode("T2")
	require.NoError(t, err)
	assert.Equal(t, TierHighPerformance, tier)
}

func TestBenefit_TierDescription(t *testing.T) {
	b := Benefit{
		TierDescriptions: map[TierCode]string{TierAmbassadors: "30% de desconto"},
		EligibleTiers:    []TierCode{TierAmbassadors, TierActiveBase},
	}

	assert.Equal(t, "30% de desconto", b.TierDescription(TierAmbassadors))
	assert.Equal(t, "Benefício disponível para clientes Base Ativa", b.TierDescription(TierActiveBase))
	assert.True(t, b.IsEligible(TierActiveBase))
	assert.False(t, b.IsEligible(TierHighPerformance))
	assert.False(t, Benefit{}.IsEligible(TierAmbassadors))
}

func TestTier_FeaturedPage(t *testing.T) {
	tier := Tier{FeaturedCompanies: []string{"A", "B", "C", "D", "E"}}

	assert.Equal(t, 3, tier.FeaturedPageCount(2))
	assert.Equal(t, []string{"A", "B"}, tier.FeaturedPage(0, 2))
	assert.Equal(t, []string{"E"}, tier.FeaturedPage(2, 2))
	assert.Equal(t, []string{"A", "B"}, tier.FeaturedPage(3, 2))
	assert.Equal(t, []string{"E"}, tier.FeaturedPage(-1, 2))
	assert.Empty(t, Tier{}.FeaturedPage(0, 2))
}

func TestCategoryAndBenefitType(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.IsValid(), c)
		assert.NotEmpty(t, c.Label())
	}
	for _, bt := range AllBenefitTypes() {
		assert.True(t, bt.IsValid(), bt)
	}

	_, err := ParseCategory("games")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = ParseBenefitType("cashback")
	assert.ErrorIs(t, err, ErrUnknownBenefitType)
}

func TestBenefitInput_Normalize(t *testing.T) {
	in := BenefitInput{
		Name:           "  Frete grátis ",
		CompanyName:    "Loja X",
		Description:    "desc",
		CompanyWebsite: strPtr("   "),
		CouponCode:     strPtr(" PAGALEVE10 "),
	}.Normalize()

	assert.Equal(t, "Frete grátis", in.Name)
	assert.Nil(t, in.CompanyWebsite)
	assert.Equal(t, "PAGALEVE10", *in.CouponCode)
	assert.Empty(t, in.Category, "categoria não recebe valor padrão")
	assert.Empty(t, in.BenefitType, "tipo não recebe valor padrão")
	require.NotNil(t, in.IsActive)
	assert.True(t, *in.IsActive)
}

func TestAdminBenefit_ToCatalogBenefit(t *testing.T) {
	record := AdminBenefit{
		ID:             "b1",
		Name:           "20% off",
		CompanyName:    "Yampi",
		Category:       CategoryTechnology,
		RedemptionLink: strPtr("https://yampi.com.br"),
		AdditionalInfo: strPtr("Somente novos clientes"),
		EligibleTiers:  []TierCode{TierAmbassadors},
	}

	b := record.ToCatalogBenefit()
	assert.Equal(t, "Tecnologia", b.Segment)
	assert.Equal(t, "20% off", b.Title)
	assert.Equal(t, "https://yampi.com.br", b.CTALink)
	assert.Equal(t, "Somente novos clientes", b.Observations)
	assert.Equal(t, "", b.SiteURL)

	record.EligibleTiers[0] = TierActiveBase
	assert.Equal(t, TierAmbassadors, b.EligibleTiers[0])
}

func TestValidate_BenefitInput(t *testing.T) {
	tests := []struct {
		name     string
		input    BenefitInput
		validate func(t *testing.T, errs FieldErrors)
	}{
		{
			name: "registro mínimo válido",
			input: BenefitInput{
				Name:        "Frete grátis",
				CompanyName: "Loja X",
				Description: "Frete grátis na primeira compra",
				Category:    CategoryLogistics,
				BenefitType: BenefitTypeFree,
			},
			validate: func(t *testing.T, errs FieldErrors) {
				assert.True(t, errs.Empty())
			},
		},
		{
			name:  "campos obrigatórios ausentes",
			input: BenefitInput{},
			validate: func(t *testing.T, errs FieldErrors) {
				assert.Equal(t, "Nome é obrigatório", errs["name"])
				assert.Equal(t, "Nome da empresa é obrigatório", errs["company_name"])
				assert.Equal(t, "Descrição é obrigatória", errs["description"])
				assert.Equal(t, "Categoria é obrigatória", errs["category"])
				assert.Equal(t, "Tipo de benefício é obrigatório", errs["benefit_type"])
			},
		},
		{
			name: "url e enums inválidos",
			input: BenefitInput{
				Name:           "x",
				CompanyName:    "y",
				Description:    "z",
				CompanyWebsite: strPtr("não é url"),
				Category:       "games",
				BenefitType:    "cashback",
				EligibleTiers:  []TierCode{TierAmbassadors, "T9"},
			},
			validate: func(t *testing.T, errs FieldErrors) {
				assert.Equal(t, "URL inválida", errs["company_website"])
				assert.Equal(t, "Categoria inválida", errs["category"])
				assert.Equal(t, "Tipo de benefício inválido", errs["benefit_type"])
				assert.Equal(t, "Tier inválido", errs["eligible_tiers"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Validate(tt.input.Normalize()))
		})
	}
}

func TestValidateLeadForm(t *testing.T) {
	valid := LeadFormSubmission{
		FullName:    "Ana Silva",
		CompanyName: "Loja X",
		Phone:       "11987654321",
		Email:       "ana@lojax.com",
	}

	assert.True(t, ValidateLeadForm(valid, false).Empty())

	short := valid
	short.Phone = "123"
	errs := ValidateLeadForm(short, false)
	assert.Equal(t, FieldErrors{"phone": "Telefone inválido"}, errs)

	bad := LeadFormSubmission{FullName: "A", CompanyName: "B", Phone: "1", Email: "x"}
	errs = ValidateLeadForm(bad, false)
	assert.Equal(t, "Nome completo é obrigatório", errs["full_name"])
	assert.Equal(t, "Nome da empresa é obrigatório", errs["company_name"])
	assert.Equal(t, "Telefone inválido", errs["phone"])
	assert.Equal(t, "Email inválido", errs["email"])

	errs = ValidateLeadForm(valid, true)
	assert.Equal(t, "Informe pelo menos uma opção de data e horário", errs["available_dates"])

	long := valid
	long.AvailableDates = strings.Repeat("x", 501)
	errs = ValidateLeadForm(long, true)
	assert.Equal(t, "Texto muito longo", errs["available_dates"])

	withDates := valid
	withDates.AvailableDates = "Segunda 10h, terça 14h ou quarta 9h"
	assert.True(t, ValidateLeadForm(withDates, true).Empty())
}

func TestValidate_ContactMessage(t *testing.T) {
	errs := Validate(ContactMessage{Email: "invalido"})
	assert.Equal(t, "Nome é obrigatório", errs["nome"])
	assert.Equal(t, "Email inválido", errs["email"])
	assert.Equal(t, "Mensagem é obrigatória", errs["mensagem"])
	_, hasCNPJ := errs["cnpj"]
	assert.False(t, hasCNPJ)
}

func TestBenefit_ToAdminBenefit(t *testing.T) {
	b := Benefit{
		ID:            "yampi",
		CompanyName:   "Yampi",
		Segment:       "Tecnologia",
		SiteURL:       "https://www.yampi.com.br",
		Title:         "90 dias grátis",
		Description:   "Plataforma de e-commerce",
		EligibleTiers: []TierCode{TierAmbassadors},
		Observations:  "  ",
		CTALink:       "https://www.yampi.com.br/pagaleve",
		CouponCode:    strPtr("PAGALEVE10"),
	}

	record := b.ToAdminBenefit()

	assert.Equal(t, "yampi", record.ID)
	assert.Equal(t, "90 dias grátis", record.Name)
	assert.Equal(t, CategoryTechnology, record.Category)
	assert.Equal(t, BenefitTypeDiscount, record.BenefitType)
	assert.Nil(t, record.AdditionalInfo)
	assert.True(t, record.IsActive)
	require.NotNil(t, record.RedemptionLink)
	assert.Equal(t, b.CTALink, *record.RedemptionLink)
	assert.Empty(t, Validate(record))

	back := record.ToCatalogBenefit()
	assert.Equal(t, b.Segment, back.Segment)
	assert.Equal(t, b.CTALink, back.CTALink)

	assert.Equal(t, CategoryOther, CategoryFromLabel("Educação"))
}
