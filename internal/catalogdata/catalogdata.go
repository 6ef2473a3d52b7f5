// Package catalogdata carrega o conteúdo estático do clube embutido no binário
package catalogdata

import (
	"embed"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed data/*.json
var files embed.FS

type Data struct {
	Benefits []domain.Benefit
	Tiers    []domain.Tier
	FAQs     []domain.FAQ
	Sessions []domain.ExecutiveSession
}

// Load decodifica os arquivos embutidos e valida as referências entre eles
func Load() (*Data, error) {
	data := &Data{}

	sources := []struct {
		file   string
		target any
	}{
		{"data/benefits.json", &data.Benefits},
		{"data/tiers.json", &data.Tiers},
		{"data/faqs.json", &data.FAQs},
		{"data/sessions.json", &data.Sessions},
	}

	for _, src := range sources {
		raw, err := files.ReadFile(src.file)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler %s: %w", src.file, err)
		}
		if err := json.Unmarshal(raw, src.target); err != nil {
			return nil, fmt.Errorf("erro ao decodificar %s: %w", src.file, err)
		}
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	return data, nil
}

// Validate garante que todo tier referenciado existe e que os ids são únicos
func (d *Data) Validate() error {
	known := make(map[domain.TierCode]bool, len(d.Tiers))
	for _, tier := range d.Tiers {
		if !tier.ID.IsValid() {
			return fmt.Errorf("%w: tier %q", domain.ErrUnknownTier, tier.ID)
		}
		known[tier.ID] = true
	}

	seen := make(map[string]bool, len(d.Benefits))
	for _, b := range d.Benefits {
		if b.ID == "" || seen[b.ID] {
			return fmt.Errorf("benefício com id vazio ou duplicado: %q", b.ID)
		}
		seen[b.ID] = true

		for _, t := range b.EligibleTiers {
			if !known[t] {
				return fmt.Errorf("%w: benefício %s referencia %q", domain.ErrUnknownTier, b.ID, t)
			}
		}
		for t := range b.TierDescriptions {
			if !known[t] {
				return fmt.Errorf("%w: benefício %s descreve %q", domain.ErrUnknownTier, b.ID, t)
			}
		}
	}

	sessions := make(map[string]bool, len(d.Sessions))
	for _, s := range d.Sessions {
		if s.ID == "" || sessions[s.ID] {
			return fmt.Errorf("sessão com id vazio ou duplicado: %q", s.ID)
		}
		sessions[s.ID] = true
	}

	return nil
}
