package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/internal/usecases/requesting"
)

// RequestServices agrupa o que os fluxos de solicitação precisam.
// Cada requisição HTTP cria o seu próprio Workflow.
type RequestServices struct {
	Catalog cataloging.CatalogService
	Leads   requesting.LeadSink
	Config  requesting.Config
}

type RequestResponse struct {
	View requesting.ViewState `json:"view"`
	requesting.Outcome
}

type CouponResponse struct {
	CouponCode string `json:"coupon_code"`
	Copied     bool   `json:"copied"`
	AckMS      int64  `json:"ack_ms"`
}

func newWorkflow(opts requesting.Options, leads requesting.LeadSink) (*requesting.Workflow, *requesting.Recorder) {
	recorder := requesting.NewRecorder()
	workflow := requesting.NewWorkflow(opts, requesting.Effects{
		Notifier:   recorder,
		Redirector: recorder,
		Scheduler:  recorder,
		Leads:      leads,
	})
	return workflow, recorder
}

// decodeLeadForm aceita corpo vazio, que cai na validação do formulário
func decodeLeadForm(r *http.Request) (domain.LeadFormSubmission, error) {
	var form domain.LeadFormSubmission
	if r.Body == nil {
		return form, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil && !errors.Is(err, io.EOF) {
		return form, err
	}
	return form, nil
}

// runRequest abre o item, executa a ação principal e, na variante com
// formulário, submete os dados recebidos
func runRequest(w http.ResponseWriter, r *http.Request, subject requesting.Subject, opts requesting.Options, leads requesting.LeadSink) {
	workflow, recorder := newWorkflow(opts, leads)

	if err := workflow.Open(subject); err != nil {
		handleError(w, r, err, "Erro ao abrir solicitação")
		return
	}
	if err := workflow.Request(); err != nil {
		handleError(w, r, err, "Erro ao processar solicitação")
		return
	}

	if workflow.State() == requesting.StateFormView {
		form, err := decodeLeadForm(r)
		if err != nil {
			logrus.WithError(err).Warn("Corpo da solicitação inválido")
			writeInvalidRequest(w)
			return
		}

		if _, err := workflow.Submit(r.Context(), form); err != nil {
			handleError(w, r, err, "Erro ao processar solicitação")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, RequestResponse{
		View:    workflow.View(),
		Outcome: recorder.Outcome(),
	})
}

func RequestBenefit(services RequestServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RequestBenefit")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		benefit, err := services.Catalog.FindBenefit(r.Context(), id)
		if err != nil {
			handleError(w, r, err, "Erro ao carregar benefício")
			return
		}

		runRequest(w, r, *benefit, requesting.BenefitOptions(services.Config), services.Leads)
	}
}

// CopyCoupon devolve o cupom e por quanto tempo o aviso de "copiado" deve ficar visível
func CopyCoupon(services RequestServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CopyCoupon")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		benefit, err := services.Catalog.FindBenefit(r.Context(), id)
		if err != nil {
			handleError(w, r, err, "Erro ao carregar benefício")
			return
		}

		workflow, _ := newWorkflow(requesting.BenefitOptions(services.Config), nil)
		if err := workflow.Open(*benefit); err != nil {
			handleError(w, r, err, "Erro ao abrir benefício")
			return
		}

		code, err := workflow.CopyCoupon()
		if err != nil {
			handleError(w, r, err, "Erro ao copiar cupom")
			return
		}

		writeJSON(w, r, http.StatusOK, CouponResponse{
			CouponCode: code,
			Copied:     workflow.CouponCopied(),
			AckMS:      workflow.CouponAckDuration().Milliseconds(),
		})
	}
}

func RequestSession(services RequestServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RequestSession")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		session, err := services.Catalog.GetExecutiveSession(id)
		if err != nil {
			handleError(w, r, err, "Erro ao carregar sessão executiva")
			return
		}

		runRequest(w, r, *session, requesting.SessionOptions(services.Config), services.Leads)
	}
}

func SubmitContact(service requesting.Contacter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SubmitContact")

		var msg domain.ContactMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			writeInvalidRequest(w)
			return
		}

		notification, err := service.Submit(r.Context(), msg)
		if err != nil {
			handleError(w, r, err, "Erro ao enviar mensagem")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"notifications": []domain.Notification{notification},
		})
	}
}
