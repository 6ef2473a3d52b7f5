package requesting

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/benefits-club-api/internal/domain"
)

// Notifier exibe a notificação transitória
type Notifier interface {
	Notify(n domain.Notification)
}

// Redirector abre um link externo em uma nova aba
type Redirector interface {
	OpenExternal(url string)
}

// Scheduler executa fn depois de d
type Scheduler interface {
	After(d time.Duration, fn func())
}

// LeadSink recebe as solicitações validadas
type LeadSink interface {
	Capture(ctx context.Context, lead domain.Lead)
}

type Effects struct {
	Notifier   Notifier
	Redirector Redirector
	Scheduler  Scheduler
	Leads      LeadSink
}

// TimerScheduler agenda com time.AfterFunc
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	time.AfterFunc(d, fn)
}

type Redirect struct {
	URL     string `json:"url"`
	Target  string `json:"target"`
	DelayMS int64  `json:"delay_ms"`
}

// Outcome são os efeitos coletados durante uma requisição HTTP
type Outcome struct {
	Notifications []domain.Notification `json:"notifications"`
	Redirect      *Redirect             `json:"redirect,omitempty"`
}

// Recorder coleta os efeitos de um fluxo para devolvê-los na resposta.
// O atraso do redirecionamento vira uma dica para o cliente em vez de uma espera no servidor.
type Recorder struct {
	mu            sync.Mutex
	notifications []domain.Notification
	redirect      *Redirect
	delay         time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{notifications: []domain.Notification{}}
}

func (r *Recorder) Notify(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) OpenExternal(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirect = &Redirect{URL: url, Target: "_blank", DelayMS: r.delay.Milliseconds()}
}

func (r *Recorder) After(d time.Duration, fn func()) {
	r.mu.Lock()
	r.delay = d
	r.mu.Unlock()

	fn()

	r.mu.Lock()
	r.delay = 0
	r.mu.Unlock()
}

func (r *Recorder) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifications := make([]domain.Notification, len(r.notifications))
	copy(notifications, r.notifications)

	return Outcome{Notifications: notifications, Redirect: r.redirect}
}
