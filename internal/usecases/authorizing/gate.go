// Package authorizing decide a entrada na área administrativa.
//
// A checagem completa (sessão e papel) roda uma vez por entrada. Quando ela
// passa, o portão emite um token de acesso de vida curta, amarrado à sessão,
// e as rotas de mutação verificam esse token e se a sessão não foi encerrada.
package authorizing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/infrastructure/cache"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
)

type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

const (
	LoginRedirect  = "/auth"
	DeniedRedirect = "/"

	defaultViewTTL = 30 * time.Minute
)

// Decision é o resultado de Authorize. Granted e Reason são exclusivos.
type Decision struct {
	Granted      bool                 `json:"granted"`
	User         *domain.User         `json:"user,omitempty"`
	ViewToken    string               `json:"view_token,omitempty"`
	ExpiresAt    *time.Time           `json:"expires_at,omitempty"`
	Reason       Reason               `json:"reason,omitempty"`
	Redirect     string               `json:"redirect,omitempty"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

type Gate interface {
	Authorize(ctx context.Context, sessionToken string) Decision
	VerifyView(ctx context.Context, viewToken string) (*domain.AdminViewClaims, error)
}

type gate struct {
	auth        authenticating.Authenticator
	revocations cache.RevocationStore
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

func NewGate(auth authenticating.Authenticator, revocations cache.RevocationStore, cfg config.Auth) Gate {
	ttl := cfg.AdminViewTTL
	if ttl <= 0 {
		ttl = defaultViewTTL
	}

	return &gate{
		auth:        auth,
		revocations: revocations,
		secret:      []byte(cfg.Secret),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (g *gate) Authorize(ctx context.Context, sessionToken string) Decision {
	session, err := g.auth.GetSession(ctx, sessionToken)
	if err != nil || session == nil {
		logrus.WithError(err).Info("Acesso administrativo negado: sem sessão")
		return Decision{
			Reason:   ReasonUnauthenticated,
			Redirect: LoginRedirect,
		}
	}

	user := session.User
	isAdmin, err := g.auth.HasRole(ctx, user.ID, domain.RoleAdmin)
	if err != nil || !isAdmin {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Acesso administrativo negado: usuário sem papel admin")
		return forbidden()
	}

	token, expiresAt, err := g.issueViewToken(session.ID, user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Erro ao emitir token de acesso administrativo")
		return forbidden()
	}

	logrus.WithField("user_id", user.ID).Info("Acesso administrativo liberado")

	return Decision{
		Granted:   true,
		User:      &user,
		ViewToken: token,
		ExpiresAt: &expiresAt,
	}
}

func forbidden() Decision {
	n := domain.Failure("Acesso Negado", "Você não tem permissão para acessar esta área.")
	return Decision{
		Reason:       ReasonForbidden,
		Redirect:     DeniedRedirect,
		Notification: &n,
	}
}

func (g *gate) issueViewToken(sessionID string, user domain.User) (string, time.Time, error) {
	now := g.now()
	expiresAt := now.Add(g.ttl)

	claims := domain.AdminViewClaims{
		UserID:    user.ID,
		UserEmail: user.Email,
		Role:      domain.RoleAdmin,
		Scope:     domain.AdminViewScope,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{domain.AdminViewScope},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// VerifyView confere assinatura, validade, escopo e se a sessão de origem
// continua aberta. O papel não é consultado de novo enquanto o token valer.
func (g *gate) VerifyView(ctx context.Context, viewToken string) (*domain.AdminViewClaims, error) {
	if viewToken == "" {
		return nil, newGateError(ErrMissingViewToken, apiErrors.ErrNoSession, "")
	}

	token, err := jwt.ParseWithClaims(viewToken, &domain.AdminViewClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(domain.AdminViewScope),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, newGateError(ErrExpiredViewToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, newGateError(ErrInvalidViewToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.AdminViewClaims)
	if !ok || !token.Valid || claims.Scope != domain.AdminViewScope || claims.SessionID == "" {
		return nil, newGateError(ErrInvalidViewToken, apiErrors.ErrInvalidToken, "escopo incorreto")
	}
	if claims.Role != domain.RoleAdmin {
		return nil, newGateError(ErrNotAdmin, apiErrors.ErrInsufficientPrivilege, "")
	}

	revoked, err := g.revocations.IsRevoked(ctx, claims.SessionID)
	if err != nil {
		return nil, newGateError(err, apiErrors.ErrCommunication, "erro ao consultar sessões encerradas")
	}
	if revoked {
		return nil, newGateError(ErrSessionClosed, apiErrors.ErrNoSession, "")
	}

	return claims, nil
}
