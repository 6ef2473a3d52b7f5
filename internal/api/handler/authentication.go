package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authorizing"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
	"github.com/vfg2006/benefits-club-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Login")

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidRequest(w)
			return
		}

		if req.Email == "" || req.Password == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios", nil)
			return
		}

		session, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleError(w, r, err, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, r, http.StatusOK, session)
	}
}

// Logout encerra a sessão do token enviado. Token ausente ou inválido não é erro.
func Logout(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Logout")

		if err := service.SignOut(r.Context(), middleware.BearerToken(r)); err != nil {
			handleError(w, r, err, "Erro ao encerrar sessão")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// AdminSession roda o portão administrativo. A decisão volta sempre no corpo,
// inclusive quando negada, para o cliente seguir o redirecionamento.
func AdminSession(gate authorizing.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - AdminSession")

		decision := gate.Authorize(r.Context(), middleware.BearerToken(r))

		status := http.StatusOK
		switch decision.Reason {
		case authorizing.ReasonUnauthenticated:
			status = http.StatusUnauthorized
		case authorizing.ReasonForbidden:
			status = http.StatusForbidden
		}

		writeJSON(w, r, status, decision)
	}
}
