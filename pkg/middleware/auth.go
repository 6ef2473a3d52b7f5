package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authorizing"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"

	HeaderAdminView = "X-Admin-View"
)

// BearerToken extrai o token do header Authorization
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminView exige o token emitido pelo portão administrativo. O papel não é
// consultado de novo aqui.
func AdminView(gate authorizing.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := gate.VerifyView(r.Context(), r.Header.Get(HeaderAdminView))
			if err != nil {
				code := apiErrors.ErrInvalidToken
				var gateErr *authorizing.GateError
				if errors.As(err, &gateErr) {
					code = gateErr.Code
				}
				if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
					logrus.WithError(err).WithField("path", r.URL.Path).Error("Erro ao verificar acesso administrativo")
					apiErrors.WriteError(w, code, "Erro ao verificar acesso administrativo", nil)
					return
				}
				logrus.WithError(err).WithField("path", r.URL.Path).Warn("Acesso administrativo sem token válido")
				apiErrors.WriteError(w, code, "Acesso administrativo não autorizado", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewClaims devolve as claims colocadas no contexto por AdminView
func ViewClaims(ctx context.Context) (*domain.AdminViewClaims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.AdminViewClaims)
	return claims, ok
}
