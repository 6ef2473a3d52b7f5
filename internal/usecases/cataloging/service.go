package cataloging

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/catalogdata"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

type CatalogService interface {
	ListBenefits(ctx context.Context, q Query) (*Result, error)
	Segments(ctx context.Context) ([]string, error)
	GetBenefit(ctx context.Context, id string) (*BenefitDetail, error)
	FindBenefit(ctx context.Context, id string) (*domain.Benefit, error)
	Tiers() []domain.Tier
	FeaturedCompanies(page int) []FeaturedTier
	FAQs() []FAQView
	ExecutiveSessions() []domain.ExecutiveSession
	GetExecutiveSession(id string) (*domain.ExecutiveSession, error)
}

// TierRow é uma linha da tabela de tiers na visão de detalhe
type TierRow struct {
	Tier        domain.TierCode `json:"tier"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
}

type BenefitDetail struct {
	domain.Benefit
	DescriptionHTML string    `json:"description_html"`
	TierRows        []TierRow `json:"tier_rows"`
	HasCoupon       bool      `json:"has_coupon"`
}

type FeaturedTier struct {
	Tier      domain.TierCode `json:"tier"`
	Name      string          `json:"name"`
	Page      int             `json:"page"`
	Pages     int             `json:"pages"`
	Companies []string        `json:"companies"`
}

type FAQView struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html"`
}

type Service struct {
	source   Source
	tiers    []domain.Tier
	faqs     []FAQView
	sessions []domain.ExecutiveSession
	pageSize int
	markdown goldmark.Markdown
}

func NewService(source Source, data *catalogdata.Data, pageSize int) (CatalogService, error) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

	s := &Service{
		source:   source,
		tiers:    data.Tiers,
		sessions: data.Sessions,
		pageSize: pageSize,
		markdown: md,
	}

	for _, faq := range data.FAQs {
		answer, err := s.render(faq.Answer)
		if err != nil {
			return nil, fmt.Errorf("erro ao renderizar FAQ %s: %w", faq.ID, err)
		}
		s.faqs = append(s.faqs, FAQView{
			ID:         faq.ID,
			Question:   faq.Question,
			Answer:     faq.Answer,
			AnswerHTML: answer,
		})
	}

	return s, nil
}

func (s *Service) render(src string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) benefits(ctx context.Context) ([]domain.Benefit, error) {
	benefits, err := s.source.Benefits(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar benefícios do catálogo")
		return nil, NewCatalogError(ErrSourceUnavailable, CodeSourceUnavailable, "", nil)
	}
	return benefits, nil
}

func (s *Service) ListBenefits(ctx context.Context, q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	benefits, err := s.benefits(ctx)
	if err != nil {
		return nil, err
	}

	return NewResult(Filter(benefits, q), q), nil
}

func (s *Service) Segments(ctx context.Context) ([]string, error) {
	benefits, err := s.benefits(ctx)
	if err != nil {
		return nil, err
	}
	return Segments(benefits), nil
}

func (s *Service) FindBenefit(ctx context.Context, id string) (*domain.Benefit, error) {
	benefits, err := s.benefits(ctx)
	if err != nil {
		return nil, err
	}

	for i := range benefits {
		if benefits[i].ID == id {
			b := benefits[i]
			return &b, nil
		}
	}

	return nil, NewCatalogError(ErrBenefitNotFound, CodeBenefitNotFound, id, nil)
}

// GetBenefit monta a visão de detalhe com uma linha por tier elegível
func (s *Service) GetBenefit(ctx context.Context, id string) (*BenefitDetail, error) {
	b, err := s.FindBenefit(ctx, id)
	if err != nil {
		return nil, err
	}

	description, err := s.render(b.Description)
	if err != nil {
		logrus.WithError(err).WithField("benefit_id", id).Warn("Erro ao renderizar descrição do benefício")
		description = ""
	}

	rows := make([]TierRow, 0, len(b.EligibleTiers))
	for _, t := range b.EligibleTiers {
		rows = append(rows, TierRow{
			Tier:        t,
			Name:        t.Name(),
			Description: b.TierDescription(t),
		})
	}

	return &BenefitDetail{
		Benefit:         *b,
		DescriptionHTML: description,
		TierRows:        rows,
		HasCoupon:       b.HasCoupon(),
	}, nil
}

func (s *Service) Tiers() []domain.Tier {
	out := make([]domain.Tier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// FeaturedCompanies devolve a página do carrossel de empresas de cada tier
func (s *Service) FeaturedCompanies(page int) []FeaturedTier {
	out := make([]FeaturedTier, 0, len(s.tiers))
	for _, tier := range s.tiers {
		pages := tier.FeaturedPageCount(s.pageSize)
		current := 0
		if pages > 0 {
			current = ((page % pages) + pages) % pages
		}
		out = append(out, FeaturedTier{
			Tier:      tier.ID,
			Name:      tier.Name,
			Page:      current,
			Pages:     pages,
			Companies: tier.FeaturedPage(page, s.pageSize),
		})
	}
	return out
}

func (s *Service) FAQs() []FAQView {
	out := make([]FAQView, len(s.faqs))
	copy(out, s.faqs)
	return out
}

func (s *Service) ExecutiveSessions() []domain.ExecutiveSession {
	out := make([]domain.ExecutiveSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *Service) GetExecutiveSession(id string) (*domain.ExecutiveSession, error) {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			session := s.sessions[i]
			return &session, nil
		}
	}
	return nil, NewCatalogError(ErrSessionNotFound, CodeSessionNotFound, id, nil)
}
