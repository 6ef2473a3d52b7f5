package handler

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authorizing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/cataloging"
	"github.com/vfg2006/benefits-club-api/internal/usecases/managing"
	"github.com/vfg2006/benefits-club-api/internal/usecases/requesting"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
	"github.com/vfg2006/benefits-club-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON escreve a resposta, a menos que o cliente já tenha desistido da requisição
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	if requestGone(r) {
		log.ForContext(r.Context()).WithField("path", r.URL.Path).Info("Requisição cancelada pelo cliente, resposta descartada")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

func requestGone(r *http.Request) bool {
	return errors.Is(r.Context().Err(), context.Canceled)
}

// handleError traduz os erros tipados dos casos de uso para o formato da API
func handleError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	if requestGone(r) {
		return
	}

	var (
		catalogErr  *cataloging.CatalogError
		workflowErr *requesting.WorkflowError
		authErr     *authenticating.AuthError
		gateErr     *authorizing.GateError
		benefitErr  *managing.BenefitError
	)

	switch {
	case errors.As(err, &benefitErr):
		details := map[string]any{}
		if len(benefitErr.Fields) > 0 {
			details["fields"] = benefitErr.Fields
		}
		if len(benefitErr.Notifications) > 0 {
			details["notifications"] = benefitErr.Notifications
		}
		message := clientMessage(r, benefitErr.Code, benefitErr.Err.Error(), err, fallbackMessage)
		apiErrors.WriteError(w, benefitErr.Code, message, detailsOrNil(details))

	case errors.As(err, &workflowErr):
		details := map[string]any{"state": workflowErr.State}
		if len(workflowErr.Fields) > 0 {
			details["fields"] = workflowErr.Fields
		}
		message := clientMessage(r, workflowErr.Code, workflowErr.Error(), err, fallbackMessage)
		apiErrors.WriteError(w, workflowErr.Code, message, details)

	case errors.As(err, &catalogErr):
		var details any
		if len(catalogErr.Fields) > 0 {
			details = map[string]any{"fields": catalogErr.Fields}
		}
		message := clientMessage(r, catalogErr.Code, catalogErr.Err.Error(), err, fallbackMessage)
		apiErrors.WriteError(w, catalogErr.Code, message, details)

	case errors.As(err, &authErr):
		message := clientMessage(r, authErr.Code, authErr.Err.Error(), err, fallbackMessage)
		apiErrors.WriteError(w, authErr.Code, message, nil)

	case errors.As(err, &gateErr):
		message := clientMessage(r, gateErr.Code, gateErr.Err.Error(), err, fallbackMessage)
		apiErrors.WriteError(w, gateErr.Code, message, nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error(fallbackMessage)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
	}
}

// clientMessage troca a mensagem de erros de servidor pela mensagem genérica.
// O erro original fica só no log.
func clientMessage(r *http.Request, code, message string, err error, fallbackMessage string) string {
	if apiErrors.StatusFor(code) < http.StatusInternalServerError {
		return message
	}
	log.ForContext(r.Context()).WithError(err).WithField("code", code).Error(fallbackMessage)
	return fallbackMessage
}

func detailsOrNil(details map[string]any) any {
	if len(details) == 0 {
		return nil
	}
	return details
}

func writeInvalidFormat(w http.ResponseWriter, message string) {
	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, message, nil)
}

func writeInvalidRequest(w http.ResponseWriter) {
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
}
