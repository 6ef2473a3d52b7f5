package mailer

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

const sendTimeout = 15 * time.Second

var leadTemplate = template.Must(template.New("lead").Parse(`<h2>{{.Title}}</h2>
{{if .SubjectName}}<p><strong>{{.SubjectLabel}}:</strong> {{.SubjectName}}</p>{{end}}
<table>
{{range .Rows}}<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{end}}</table>
<p>Recebido em {{.ReceivedAt}}</p>
`))

type leadRow struct {
	Label string
	Value string
}

type leadView struct {
	Title        string
	SubjectLabel string
	SubjectName  string
	Rows         []leadRow
	ReceivedAt   string
}

// LeadNotifier envia cada solicitação validada para a lista de destinatários.
// Falhas de envio são apenas registradas: a solicitação já foi aceita.
type LeadNotifier struct {
	sender     Sender
	recipients []string
	async      bool
}

func NewLeadNotifier(sender Sender, recipients []string, async bool) *LeadNotifier {
	return &LeadNotifier{
		sender:     sender,
		recipients: recipients,
		async:      async,
	}
}

func (n *LeadNotifier) Capture(ctx context.Context, lead domain.Lead) {
	if len(n.recipients) == 0 {
		logrus.WithField("lead_kind", lead.Kind).Debug("Nenhum destinatário configurado para leads")
		return
	}

	msg, err := n.compose(lead)
	if err != nil {
		logrus.WithError(err).WithField("lead_kind", lead.Kind).Error("Erro ao montar email do lead")
		return
	}

	if !n.async {
		n.send(ctx, lead.Kind, msg)
		return
	}

	// A requisição pode terminar antes do envio
	go n.send(context.WithoutCancel(ctx), lead.Kind, msg)
}

func (n *LeadNotifier) send(ctx context.Context, kind domain.LeadKind, msg Message) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, err := n.sender.Send(ctx, msg); err != nil {
		logrus.WithError(err).WithField("lead_kind", kind).Error("Erro ao enviar email do lead")
	}
}

func (n *LeadNotifier) compose(lead domain.Lead) (Message, error) {
	view := leadView{
		SubjectName: lead.SubjectName,
		ReceivedAt:  lead.ReceivedAt.Format("02/01/2006 15:04"),
	}

	msg := Message{To: n.recipients}

	switch lead.Kind {
	case domain.LeadKindBenefit:
		view.Title = "Nova solicitação de benefício"
		view.SubjectLabel = "Benefício"
	case domain.LeadKindSession:
		view.Title = "Novo agendamento de sessão executiva"
		view.SubjectLabel = "Sessão"
	default:
		view.Title = "Nova mensagem de contato"
	}

	if s := lead.Submission; s != nil {
		view.Rows = append(view.Rows,
			leadRow{"Nome", s.FullName},
			leadRow{"Empresa", s.CompanyName},
			leadRow{"Telefone", s.Phone},
			leadRow{"Email", s.Email},
		)
		if s.AvailableDates != "" {
			view.Rows = append(view.Rows, leadRow{"Disponibilidade", s.AvailableDates})
		}
		msg.ReplyTo = s.Email
	}

	if c := lead.Contact; c != nil {
		view.Rows = append(view.Rows,
			leadRow{"Nome", c.Name},
			leadRow{"Email", c.Email},
		)
		if c.CNPJ != "" {
			view.Rows = append(view.Rows, leadRow{"CNPJ", c.CNPJ})
		}
		view.Rows = append(view.Rows, leadRow{"Mensagem", c.Message})
		msg.ReplyTo = c.Email
	}

	msg.Subject = view.Title
	if view.SubjectName != "" {
		msg.Subject += ": " + view.SubjectName
	}

	var buf bytes.Buffer
	if err := leadTemplate.Execute(&buf, view); err != nil {
		return Message{}, err
	}
	msg.HTML = buf.String()

	return msg, nil
}
