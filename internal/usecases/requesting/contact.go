package requesting

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

type Contacter interface {
	Submit(ctx context.Context, msg domain.ContactMessage) (domain.Notification, error)
}

// ContactService recebe o formulário "fale conosco" da página pública
type ContactService struct {
	leads LeadSink
	now   func() time.Time
}

func NewContactService(leads LeadSink) Contacter {
	return &ContactService{
		leads: leads,
		now:   time.Now,
	}
}

func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) (domain.Notification, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.CNPJ = strings.TrimSpace(msg.CNPJ)
	msg.Message = strings.TrimSpace(msg.Message)

	if fields := domain.Validate(msg); !fields.Empty() {
		return domain.Notification{}, newValidationError(fields)
	}

	logrus.WithField("lead_kind", domain.LeadKindContact).Info("Mensagem de contato recebida")

	if s.leads != nil {
		contact := msg
		s.leads.Capture(ctx, domain.Lead{
			Kind:       domain.LeadKindContact,
			Contact:    &contact,
			ReceivedAt: s.now(),
		})
	}

	return domain.Success("Mensagem enviada com sucesso! Entraremos em contato em breve.", ""), nil
}
