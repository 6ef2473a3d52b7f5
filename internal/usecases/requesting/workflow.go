// Package requesting implementa o fluxo de detalhe e solicitação de benefícios
// e de sessões executivas.
package requesting

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/domain"
)

type State string

const (
	StateClosed     State = "closed"
	StateDetailView State = "detail_view"
	StateFormView   State = "form_view"
)

type Variant string

const (
	// VariantDirect redireciona direto da visão de detalhe
	VariantDirect Variant = "direct"
	// VariantLeadCapture exige o formulário de contato antes do redirecionamento
	VariantLeadCapture Variant = "lead_capture"
)

// Subject é o item aberto no fluxo: um benefício ou uma sessão executiva
type Subject interface {
	SubjectID() string
	SubjectName() string
	RedirectURL() string
}

type couponHolder interface {
	Coupon() (string, bool)
}

type Options struct {
	Variant            Variant
	RedirectDelay      time.Duration
	CouponAckDuration  time.Duration
	RequireDates       bool
	LeadKind           domain.LeadKind
	SuccessTitle       string
	SuccessDescription string
}

// Config são os parâmetros vindos da configuração da aplicação
type Config struct {
	LeadCapture       bool
	RedirectDelay     time.Duration
	CouponAckDuration time.Duration
}

const (
	DefaultRedirectDelay     = 1500 * time.Millisecond
	DefaultCouponAckDuration = 3 * time.Second
)

// BenefitOptions monta as opções do fluxo de solicitação de benefício
func BenefitOptions(cfg Config) Options {
	variant := VariantDirect
	if cfg.LeadCapture {
		variant = VariantLeadCapture
	}
	return Options{
		Variant:            variant,
		RedirectDelay:      cfg.RedirectDelay,
		CouponAckDuration:  cfg.CouponAckDuration,
		LeadKind:           domain.LeadKindBenefit,
		SuccessTitle:       "Solicitação enviada com sucesso!",
		SuccessDescription: "Você será redirecionado para o parceiro.",
	}
}

// SessionOptions monta as opções do agendamento de sessão executiva
func SessionOptions(cfg Config) Options {
	return Options{
		Variant:            VariantLeadCapture,
		RedirectDelay:      cfg.RedirectDelay,
		RequireDates:       true,
		LeadKind:           domain.LeadKindSession,
		SuccessTitle:       "Agendamento solicitado com sucesso!",
		SuccessDescription: "Em breve entraremos em contato.",
	}
}

// ViewState é o estado serializável do fluxo
type ViewState struct {
	State        State                     `json:"state"`
	SubjectID    string                    `json:"subject_id,omitempty"`
	Form         domain.LeadFormSubmission `json:"form"`
	Errors       domain.FieldErrors        `json:"errors,omitempty"`
	Generation   uint64                    `json:"generation"`
	Pending      bool                      `json:"pending"`
	CouponCopied bool                      `json:"coupon_copied"`
}

// Workflow é a máquina de estados de um diálogo de detalhe.
// Cada instância pertence a um único chamador.
type Workflow struct {
	mu      sync.Mutex
	opts    Options
	effects Effects
	now     func() time.Time

	state             State
	subject           Subject
	form              domain.LeadFormSubmission
	errors            domain.FieldErrors
	generation        uint64
	pending           bool
	couponCopiedUntil time.Time
}

func NewWorkflow(opts Options, effects Effects) *Workflow {
	if opts.RedirectDelay < 0 {
		opts.RedirectDelay = 0
	}
	if opts.CouponAckDuration <= 0 {
		opts.CouponAckDuration = DefaultCouponAckDuration
	}
	if opts.Variant == "" {
		opts.Variant = VariantLeadCapture
	}
	if effects.Scheduler == nil {
		effects.Scheduler = TimerScheduler{}
	}

	return &Workflow{
		opts:    opts,
		effects: effects,
		now:     time.Now,
		state:   StateClosed,
	}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) View() ViewState {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := ViewState{
		State:        w.state,
		Form:         w.form,
		Generation:   w.generation,
		Pending:      w.pending,
		CouponCopied: w.now().Before(w.couponCopiedUntil),
	}
	if w.subject != nil {
		view.SubjectID = w.subject.SubjectID()
	}
	if len(w.errors) > 0 {
		view.Errors = make(domain.FieldErrors, len(w.errors))
		for k, v := range w.errors {
			view.Errors[k] = v
		}
	}
	return view
}

// Open mostra o detalhe do item. Abrir outro item descarta o anterior.
func (w *Workflow) Open(subject Subject) error {
	if subject == nil {
		return newTransitionError(ErrNoSubject, StateClosed, "")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.reset()
	w.subject = subject
	w.state = StateDetailView
	return nil
}

// Request é a ação principal da visão de detalhe
func (w *Workflow) Request() error {
	w.mu.Lock()

	if w.state != StateDetailView {
		state := w.state
		w.mu.Unlock()
		return newTransitionError(ErrInvalidTransition, state, "solicitação fora da visão de detalhe")
	}

	if w.opts.Variant == VariantLeadCapture {
		w.state = StateFormView
		w.mu.Unlock()
		return nil
	}

	url := w.subject.RedirectURL()
	w.reset()
	w.mu.Unlock()

	if url != "" {
		w.redirect(url)
	}
	w.notify(domain.Success("Redirecionando para o parceiro...", ""))
	return nil
}

// Back volta do formulário para o detalhe mantendo os valores digitados
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateFormView || w.pending {
		return newTransitionError(ErrInvalidTransition, w.state, "não há formulário aberto")
	}

	w.errors = nil
	w.state = StateDetailView
	return nil
}

// Submit valida o formulário. Com sucesso, notifica e agenda o redirecionamento
// e o fechamento do diálogo.
func (w *Workflow) Submit(ctx context.Context, form domain.LeadFormSubmission) (domain.FieldErrors, error) {
	w.mu.Lock()

	if w.state != StateFormView {
		state := w.state
		w.mu.Unlock()
		return nil, newTransitionError(ErrInvalidTransition, state, "formulário não está aberto")
	}
	if w.pending {
		w.mu.Unlock()
		return nil, newTransitionError(ErrSubmissionPending, StateFormView, "")
	}

	if !w.opts.RequireDates {
		form.AvailableDates = ""
	}
	w.form = form

	if fields := domain.ValidateLeadForm(form, w.opts.RequireDates); !fields.Empty() {
		w.errors = fields
		w.mu.Unlock()
		return fields, newValidationError(fields)
	}

	w.errors = nil
	w.pending = true
	generation := w.generation
	subject := w.subject
	w.mu.Unlock()

	w.capture(ctx, subject, form)
	w.notify(domain.Success(w.opts.SuccessTitle, w.opts.SuccessDescription))

	w.effects.Scheduler.After(w.opts.RedirectDelay, func() {
		w.complete(generation)
	})

	return nil, nil
}

// complete roda depois do atraso. Se o diálogo foi fechado ou reaberto nesse
// meio tempo a geração mudou e nada acontece.
func (w *Workflow) complete(generation uint64) {
	w.mu.Lock()
	if w.generation != generation || w.state != StateFormView || !w.pending {
		w.mu.Unlock()
		logrus.WithField("generation", generation).Debug("Conclusão de solicitação ignorada: diálogo já fechado")
		return
	}

	url := w.subject.RedirectURL()
	w.reset()
	w.mu.Unlock()

	if url != "" {
		w.redirect(url)
	}
}

// Close fecha o diálogo em qualquer estado, limpando formulário e erros
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

// CopyCoupon devolve o cupom e marca o aviso de "copiado" por alguns segundos
func (w *Workflow) CopyCoupon() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateClosed || w.subject == nil {
		return "", newTransitionError(ErrNoSubject, w.state, "")
	}

	holder, ok := w.subject.(couponHolder)
	if !ok {
		return "", newTransitionError(ErrNoCoupon, w.state, "")
	}
	code, ok := holder.Coupon()
	if !ok {
		return "", newTransitionError(ErrNoCoupon, w.state, "")
	}

	w.couponCopiedUntil = w.now().Add(w.opts.CouponAckDuration)
	return code, nil
}

func (w *Workflow) CouponCopied() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.now().Before(w.couponCopiedUntil)
}

// CouponAckDuration é por quanto tempo o aviso de cupom copiado permanece
func (w *Workflow) CouponAckDuration() time.Duration {
	return w.opts.CouponAckDuration
}

// reset deve ser chamado com o lock adquirido
func (w *Workflow) reset() {
	w.state = StateClosed
	w.subject = nil
	w.form = domain.LeadFormSubmission{}
	w.errors = nil
	w.pending = false
	w.couponCopiedUntil = time.Time{}
	w.generation++
}

func (w *Workflow) notify(n domain.Notification) {
	if w.effects.Notifier != nil {
		w.effects.Notifier.Notify(n)
	}
}

func (w *Workflow) redirect(url string) {
	if w.effects.Redirector != nil {
		w.effects.Redirector.OpenExternal(url)
	}
}

func (w *Workflow) capture(ctx context.Context, subject Subject, form domain.LeadFormSubmission) {
	logrus.WithFields(logrus.Fields{
		"lead_kind":    w.opts.LeadKind,
		"subject_id":   subject.SubjectID(),
		"company_name": form.CompanyName,
	}).Info("Solicitação recebida")

	if w.effects.Leads == nil {
		return
	}

	submission := form
	w.effects.Leads.Capture(ctx, domain.Lead{
		Kind:        w.opts.LeadKind,
		SubjectID:   subject.SubjectID(),
		SubjectName: subject.SubjectName(),
		Submission:  &submission,
		ReceivedAt:  w.now(),
	})
}
