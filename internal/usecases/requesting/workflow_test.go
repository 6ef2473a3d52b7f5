package requesting

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

type fakeNotifier struct {
	notifications []domain.Notification
}

func (f *fakeNotifier) Notify(n domain.Notification) {
	f.notifications = append(f.notifications, n)
}

type fakeRedirector struct {
	urls []string
}

func (f *fakeRedirector) OpenExternal(url string) {
	f.urls = append(f.urls, url)
}

// manualScheduler guarda os callbacks para o teste disparar quando quiser
type manualScheduler struct {
	delays []time.Duration
	fns    []func()
}

func (m *manualScheduler) After(d time.Duration, fn func()) {
	m.delays = append(m.delays, d)
	m.fns = append(m.fns, fn)
}

func (m *manualScheduler) fire() {
	fns := m.fns
	m.fns = nil
	for _, fn := range fns {
		fn()
	}
}

type fakeSink struct {
	mu    sync.Mutex
	leads []domain.Lead
}

func (f *fakeSink) Capture(ctx context.Context, lead domain.Lead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, lead)
}

type harness struct {
	notifier   *fakeNotifier
	redirector *fakeRedirector
	scheduler  *manualScheduler
	sink       *fakeSink
	workflow   *Workflow
}

func newHarness(opts Options) *harness {
	h := &harness{
		notifier:   &fakeNotifier{},
		redirector: &fakeRedirector{},
		scheduler:  &manualScheduler{},
		sink:       &fakeSink{},
	}
	h.workflow = NewWorkflow(opts, Effects{
		Notifier:   h.notifier,
		Redirector: h.redirector,
		Scheduler:  h.scheduler,
		Leads:      h.sink,
	})
	return h
}

func strPtr(s string) *string { return &s }

func testBenefit() domain.Benefit {
	return domain.Benefit{
		ID:          "alura",
		CompanyName: "Alura",
		CTALink:     "https://www.alura.com.br/empresas",
		CouponCode:  strPtr("PAGALEVE20"),
	}
}

func validForm() domain.LeadFormSubmission {
	return domain.LeadFormSubmission{
		FullName:    "Ana Silva",
		CompanyName: "Loja X",
		Phone:       "11987654321",
		Email:       "ana@lojax.com",
	}
}

func leadCapture() Options {
	return BenefitOptions(Config{LeadCapture: true, RedirectDelay: DefaultRedirectDelay})
}

func TestWorkflow_LeadCaptureHappyPath(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	assert.Equal(t, StateDetailView, w.State())

	require.NoError(t, w.Request())
	assert.Equal(t, StateFormView, w.State())

	fields, err := w.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Nil(t, fields)

	assert.Len(t, h.notifier.notifications, 1)
	assert.Equal(t, domain.NotificationSuccess, h.notifier.notifications[0].Kind)
	assert.Empty(t, h.redirector.urls, "redirecionamento só depois do atraso")
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, h.scheduler.delays)
	assert.True(t, w.View().Pending)

	h.scheduler.fire()

	assert.Equal(t, []string{"https://www.alura.com.br/empresas"}, h.redirector.urls)
	assert.Len(t, h.notifier.notifications, 1)

	view := w.View()
	assert.Equal(t, StateClosed, view.State)
	assert.Equal(t, domain.LeadFormSubmission{}, view.Form)
	assert.Empty(t, view.SubjectID)

	require.Len(t, h.sink.leads, 1)
	assert.Equal(t, domain.LeadKindBenefit, h.sink.leads[0].Kind)
	assert.Equal(t, "alura", h.sink.leads[0].SubjectID)
	assert.Equal(t, "Ana Silva", h.sink.leads[0].Submission.FullName)
}

func TestWorkflow_InvalidPhoneBlocksSubmission(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())

	form := validForm()
	form.Phone = "123"

	fields, err := w.Submit(context.Background(), form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, domain.FieldErrors{"phone": "Telefone inválido"}, fields)

	var wfErr *WorkflowError
	require.True(t, errors.As(err, &wfErr))
	assert.Equal(t, CodeValidation, wfErr.Code)

	h.scheduler.fire()
	assert.Empty(t, h.redirector.urls)
	assert.Empty(t, h.notifier.notifications)
	assert.Empty(t, h.sink.leads)

	view := w.View()
	assert.Equal(t, StateFormView, view.State)
	assert.Equal(t, "123", view.Form.Phone)
	assert.Equal(t, "Telefone inválido", view.Errors["phone"])
}

func TestWorkflow_CloseDiscardsLateCompletion(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())
	_, err := w.Submit(context.Background(), validForm())
	require.NoError(t, err)

	w.Close()
	h.scheduler.fire()

	assert.Empty(t, h.redirector.urls)
	assert.Equal(t, StateClosed, w.State())
}

func TestWorkflow_ReopenDiscardsLateCompletion(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())
	_, err := w.Submit(context.Background(), validForm())
	require.NoError(t, err)

	other := domain.Benefit{ID: "yampi", CTALink: "https://yampi.com.br"}
	require.NoError(t, w.Open(other))
	h.scheduler.fire()

	assert.Empty(t, h.redirector.urls)
	view := w.View()
	assert.Equal(t, StateDetailView, view.State)
	assert.Equal(t, "yampi", view.SubjectID)
}

func TestWorkflow_DoubleSubmitIsRejected(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())
	_, err := w.Submit(context.Background(), validForm())
	require.NoError(t, err)

	_, err = w.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrSubmissionPending)
	assert.Len(t, h.notifier.notifications, 1)
}

func TestWorkflow_CloseClearsFormAtAnyState(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())
	_, _ = w.Submit(context.Background(), domain.LeadFormSubmission{FullName: "A"})

	w.Close()
	view := w.View()
	assert.Equal(t, StateClosed, view.State)
	assert.Empty(t, view.Errors)
	assert.Equal(t, domain.LeadFormSubmission{}, view.Form)

	// fechar de novo não é erro
	w.Close()
	assert.Equal(t, StateClosed, w.State())
}

func TestWorkflow_BackKeepsValues(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())
	form := validForm()
	form.Email = "invalido"
	_, _ = w.Submit(context.Background(), form)

	require.NoError(t, w.Back())
	view := w.View()
	assert.Equal(t, StateDetailView, view.State)
	assert.Equal(t, "invalido", view.Form.Email)
	assert.Empty(t, view.Errors)

	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
}

func TestWorkflow_InvalidTransitions(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	assert.ErrorIs(t, w.Request(), ErrInvalidTransition)
	_, err := w.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, w.Open(nil), ErrNoSubject)

	require.NoError(t, w.Open(testBenefit()))
	_, err = w.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWorkflow_DirectVariant(t *testing.T) {
	h := newHarness(BenefitOptions(Config{LeadCapture: false}))
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())

	assert.Equal(t, []string{"https://www.alura.com.br/empresas"}, h.redirector.urls)
	require.Len(t, h.notifier.notifications, 1)
	assert.Equal(t, "Redirecionando para o parceiro...", h.notifier.notifications[0].Title)
	assert.Equal(t, StateClosed, w.State())
	assert.Empty(t, h.sink.leads)
}

func TestWorkflow_ZeroDelay(t *testing.T) {
	rec := NewRecorder()
	w := NewWorkflow(BenefitOptions(Config{LeadCapture: true}), Effects{
		Notifier:   rec,
		Redirector: rec,
		Scheduler:  rec,
	})

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())
	_, err := w.Submit(context.Background(), validForm())
	require.NoError(t, err)

	outcome := rec.Outcome()
	require.NotNil(t, outcome.Redirect)
	assert.Equal(t, int64(0), outcome.Redirect.DelayMS)
	assert.Equal(t, "_blank", outcome.Redirect.Target)
	assert.Equal(t, StateClosed, w.State())
}

func TestWorkflow_CouponCopy(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	current := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return current }

	_, err := w.CopyCoupon()
	assert.ErrorIs(t, err, ErrNoSubject)

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())

	code, err := w.CopyCoupon()
	require.NoError(t, err)
	assert.Equal(t, "PAGALEVE20", code)
	assert.True(t, w.CouponCopied())
	assert.Equal(t, StateFormView, w.State(), "copiar cupom não muda o estado do formulário")

	current = current.Add(2999 * time.Millisecond)
	assert.True(t, w.CouponCopied())

	current = current.Add(time.Millisecond)
	assert.False(t, w.CouponCopied())

	require.NoError(t, w.Open(domain.Benefit{ID: "sem-cupom"}))
	_, err = w.CopyCoupon()
	assert.ErrorIs(t, err, ErrNoCoupon)
}

func TestSessionWorkflow(t *testing.T) {
	h := newHarness(SessionOptions(Config{RedirectDelay: DefaultRedirectDelay}))
	w := h.workflow

	session := domain.ExecutiveSession{ID: "growth", HostName: "Marina Costa"}
	require.NoError(t, w.Open(session))
	require.NoError(t, w.Request())
	assert.Equal(t, StateFormView, w.State())

	fields, err := w.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Informe pelo menos uma opção de data e horário", fields["available_dates"])

	form := validForm()
	form.AvailableDates = "Segunda 10h, terça 14h ou quarta 9h"
	_, err = w.Submit(context.Background(), form)
	require.NoError(t, err)

	require.Len(t, h.notifier.notifications, 1)
	assert.Equal(t, "Agendamento solicitado com sucesso!", h.notifier.notifications[0].Title)

	h.scheduler.fire()
	assert.Empty(t, h.redirector.urls, "sessão não redireciona para parceiro")
	assert.Equal(t, StateClosed, w.State())

	require.Len(t, h.sink.leads, 1)
	assert.Equal(t, domain.LeadKindSession, h.sink.leads[0].Kind)
	assert.Equal(t, form.AvailableDates, h.sink.leads[0].Submission.AvailableDates)

	_, err = w.CopyCoupon()
	assert.Error(t, err)
}

func TestBenefitWorkflow_DropsAvailableDates(t *testing.T) {
	h := newHarness(leadCapture())
	w := h.workflow

	require.NoError(t, w.Open(testBenefit()))
	require.NoError(t, w.Request())

	form := validForm()
	form.AvailableDates = "ignorado"
	_, err := w.Submit(context.Background(), form)
	require.NoError(t, err)

	require.Len(t, h.sink.leads, 1)
	assert.Empty(t, h.sink.leads[0].Submission.AvailableDates)
}

func TestTimerScheduler(t *testing.T) {
	done := make(chan struct{})
	TimerScheduler{}.After(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback não executado")
	}

	called := false
	TimerScheduler{}.After(0, func() { called = true })
	assert.True(t, called)
}
