// Package mailer encaminha as solicitações recebidas para o time comercial
// por email.
package mailer

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender entrega uma mensagem e devolve o id dela no provedor
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "erro ao enviar email pelo resend")
	}

	logrus.WithFields(logrus.Fields{
		"message_id": sent.Id,
		"subject":    msg.Subject,
	}).Info("Email enviado")

	return sent.Id, nil
}

// LogSender só registra a mensagem. Usado quando não há chave do Resend.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) (string, error) {
	logrus.WithFields(logrus.Fields{
		"to":      strings.Join(msg.To, ","),
		"subject": msg.Subject,
	}).Info("Envio de email desabilitado, mensagem apenas registrada")
	return "", nil
}
