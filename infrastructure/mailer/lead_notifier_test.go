package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
	done chan struct{}
}

func (f *fakeSender) Send(_ context.Context, msg Message) (string, error) {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return "msg-1", f.err
}

func benefitLead() domain.Lead {
	return domain.Lead{
		Kind:        domain.LeadKindBenefit,
		SubjectID:   "alura",
		SubjectName: "Alura",
		Submission: &domain.LeadFormSubmission{
			FullName:    "Maria <script>",
			CompanyName: "Loja X",
			Phone:       "11999999999",
			Email:       "maria@lojax.com",
		},
		ReceivedAt: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestLeadNotifier_Capture(t *testing.T) {
	tests := []struct {
		name       string
		lead       domain.Lead
		recipients []string
		senderErr  error
		validate   func(t *testing.T, sender *fakeSender)
	}{
		{
			name:       "solicitação de benefício",
			lead:       benefitLead(),
			recipients: []string{"comercial@pagaleve.com.br"},
			validate: func(t *testing.T, sender *fakeSender) {
				require.Len(t, sender.sent, 1)
				msg := sender.sent[0]
				assert.Equal(t, "Nova solicitação de benefício: Alura", msg.Subject)
				assert.Equal(t, []string{"comercial@pagaleve.com.br"}, msg.To)
				assert.Equal(t, "maria@lojax.com", msg.ReplyTo)
				assert.Contains(t, msg.HTML, "Loja X")
				assert.Contains(t, msg.HTML, "01/05/2024 14:30")
				assert.NotContains(t, msg.HTML, "<script>")
				assert.Contains(t, msg.HTML, "&lt;script&gt;")
			},
		},
		{
			name: "mensagem de contato",
			lead: domain.Lead{
				Kind: domain.LeadKindContact,
				Contact: &domain.ContactMessage{
					Name:    "Ana",
					Email:   "ana@x.com",
					CNPJ:    "12.345.678/0001-90",
					Message: "Quero ser parceiro",
				},
			},
			recipients: []string{"comercial@pagaleve.com.br"},
			validate: func(t *testing.T, sender *fakeSender) {
				require.Len(t, sender.sent, 1)
				assert.Equal(t, "Nova mensagem de contato", sender.sent[0].Subject)
				assert.Contains(t, sender.sent[0].HTML, "12.345.678/0001-90")
				assert.Equal(t, "ana@x.com", sender.sent[0].ReplyTo)
			},
		},
		{
			name: "sem destinatários",
			lead: benefitLead(),
			validate: func(t *testing.T, sender *fakeSender) {
				assert.Empty(t, sender.sent)
			},
		},
		{
			name:       "falha no envio não propaga",
			lead:       benefitLead(),
			recipients: []string{"comercial@pagaleve.com.br"},
			senderErr:  errors.New("resend fora do ar"),
			validate: func(t *testing.T, sender *fakeSender) {
				assert.Len(t, sender.sent, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.senderErr}
			n := NewLeadNotifier(sender, tt.recipients, false)
			n.Capture(context.Background(), tt.lead)
			tt.validate(t, sender)
		})
	}
}

func TestLeadNotifier_CaptureAsync(t *testing.T) {
	sender := &fakeSender{done: make(chan struct{}, 1)}
	n := NewLeadNotifier(sender, []string{"comercial@pagaleve.com.br"}, true)

	ctx, cancel := context.WithCancel(context.Background())
	n.Capture(ctx, benefitLead())
	cancel()

	select {
	case <-sender.done:
	case <-time.After(time.Second):
		t.Fatal("email não foi enviado")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.sent, 1)
}
