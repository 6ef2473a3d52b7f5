package domain

// Benefit é a oferta exibida no catálogo público
type Benefit struct {
	ID                     string              `json:"id"`
	CompanyName            string              `json:"company_name"`
	Segment                string              `json:"segment"`
	SiteURL                string              `json:"site_url"`
	LogoURL                *string             `json:"logo_url,omitempty"`
	Title                  string              `json:"title"`
	Description            string              `json:"description"`
	TierDescriptions       map[TierCode]string `json:"tier_descriptions,omitempty"`
	EligibleTiers          []TierCode          `json:"eligible_tiers"`
	Validity               string              `json:"validity"`
	RedemptionInstructions string              `json:"redemption_instructions"`
	Observations           string              `json:"observations"`
	CTALink                string              `json:"cta_link"`
	CouponCode             *string             `json:"coupon_code,omitempty"`
}

// TierDescription retorna o texto específico do tier ou o texto genérico
func (b Benefit) TierDescription(t TierCode) string {
	if text, ok := b.TierDescriptions[t]; ok && text != "" {
		return text
	}
	return "Benefício disponível para clientes " + t.Name()
}

// IsEligible informa se o tier está na lista de elegíveis.
// Um benefício sem tiers elegíveis não é elegível para ninguém.
func (b Benefit) IsEligible(t TierCode) bool {
	for _, eligible := range b.EligibleTiers {
		if eligible == t {
			return true
		}
	}
	return false
}

func (b Benefit) HasCoupon() bool {
	return b.CouponCode != nil && *b.CouponCode != ""
}

// Coupon retorna o código do cupom, quando o benefício tiver um
func (b Benefit) Coupon() (string, bool) {
	if !b.HasCoupon() {
		return "", false
	}
	return *b.CouponCode, true
}

func (b Benefit) SubjectID() string   { return b.ID }
func (b Benefit) SubjectName() string { return b.CompanyName }
func (b Benefit) RedirectURL() string { return b.CTALink }
