package authorizing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/benefits-club-api/infrastructure/cache"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating"
	"github.com/vfg2006/benefits-club-api/internal/usecases/authenticating/mocks"
	"go.uber.org/mock/gomock"
)

var testAuth = config.Auth{Secret: "test-secret", AdminViewTTL: 30 * time.Minute}

func session() *domain.Session {
	return &domain.Session{
		ID:    "sid-1",
		Token: "session-token",
		User:  domain.User{ID: "u-1", Name: "Admin", Email: "admin@pagaleve.com.br", Active: true},
	}
}

func TestGate_Authorize(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(auth *mocks.MockAuthenticator)
		validate func(t *testing.T, d Decision)
	}{
		{
			name: "sem sessão redireciona para login",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().GetSession(gomock.Any(), "session-token").
					Return(nil, authenticating.NewAuthError(authenticating.ErrNoSession, "AUTH_011", ""))
			},
			validate: func(t *testing.T, d Decision) {
				assert.False(t, d.Granted)
				assert.Equal(t, ReasonUnauthenticated, d.Reason)
				assert.Equal(t, "/auth", d.Redirect)
				assert.Nil(t, d.Notification)
				assert.Empty(t, d.ViewToken)
			},
		},
		{
			name: "sessão sem papel admin é proibida",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().GetSession(gomock.Any(), "session-token").Return(session(), nil)
				auth.EXPECT().HasRole(gomock.Any(), "u-1", domain.RoleAdmin).Return(false, nil)
			},
			validate: func(t *testing.T, d Decision) {
				assert.False(t, d.Granted)
				assert.Equal(t, ReasonForbidden, d.Reason)
				assert.Equal(t, "/", d.Redirect)
				require.NotNil(t, d.Notification)
				assert.Equal(t, "Acesso Negado", d.Notification.Title)
				assert.Equal(t, "Você não tem permissão para acessar esta área.", d.Notification.Description)
				assert.Empty(t, d.ViewToken, "nenhuma visão administrativa pode ser liberada")
				assert.Nil(t, d.User)
			},
		},
		{
			name: "falha na consulta de papel é proibida",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().GetSession(gomock.Any(), "session-token").Return(session(), nil)
				auth.EXPECT().HasRole(gomock.Any(), "u-1", domain.RoleAdmin).Return(false, errors.New("timeout"))
			},
			validate: func(t *testing.T, d Decision) {
				assert.Equal(t, ReasonForbidden, d.Reason)
				assert.Empty(t, d.ViewToken)
			},
		},
		{
			name: "admin recebe token de acesso",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().GetSession(gomock.Any(), "session-token").Return(session(), nil)
				auth.EXPECT().HasRole(gomock.Any(), "u-1", domain.RoleAdmin).Return(true, nil)
			},
			validate: func(t *testing.T, d Decision) {
				require.True(t, d.Granted)
				assert.Empty(t, d.Reason)
				require.NotNil(t, d.User)
				assert.Equal(t, "u-1", d.User.ID)
				assert.NotEmpty(t, d.ViewToken)
				require.NotNil(t, d.ExpiresAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			g := NewGate(auth, cache.NewMemoryRevocationStore(), testAuth)
			tt.validate(t, g.Authorize(context.Background(), "session-token"))
		})
	}
}

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis fora do ar")
}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis fora do ar")
}

func grantedGate(t *testing.T) (*gate, string) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(session(), nil)
	auth.EXPECT().HasRole(gomock.Any(), "u-1", domain.RoleAdmin).Return(true, nil)

	g := NewGate(auth, cache.NewMemoryRevocationStore(), testAuth).(*gate)
	d := g.Authorize(context.Background(), "session-token")
	require.True(t, d.Granted)
	return g, d.ViewToken
}

func TestGate_VerifyView(t *testing.T) {
	t.Run("token válido não consulta o serviço de autenticação", func(t *testing.T) {
		g, token := grantedGate(t)

		claims, err := g.VerifyView(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		assert.Equal(t, domain.AdminViewScope, claims.Scope)
		assert.Equal(t, "sid-1", claims.SessionID)
	})

	t.Run("sessão encerrada invalida o token de acesso", func(t *testing.T) {
		g, token := grantedGate(t)
		require.NoError(t, g.revocations.Revoke(context.Background(), "sid-1", time.Hour))

		_, err := g.VerifyView(context.Background(), token)
		assert.ErrorIs(t, err, ErrSessionClosed)
		var gateErr *GateError
		require.True(t, errors.As(err, &gateErr))
		assert.Equal(t, "AUTH_011", gateErr.Code)
	})

	t.Run("falha ao consultar sessões encerradas", func(t *testing.T) {
		g, token := grantedGate(t)
		g.revocations = failingRevocations{}

		_, err := g.VerifyView(context.Background(), token)
		var gateErr *GateError
		require.True(t, errors.As(err, &gateErr))
		assert.Equal(t, "SRV_004", gateErr.Code)
	})

	t.Run("token ausente", func(t *testing.T) {
		g, _ := grantedGate(t)
		_, err := g.VerifyView(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingViewToken)
	})

	t.Run("token expirado", func(t *testing.T) {
		g, token := grantedGate(t)
		g.now = func() time.Time { return time.Now().Add(time.Hour) }

		_, err := g.VerifyView(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredViewToken)
	})

	t.Run("token adulterado", func(t *testing.T) {
		g, token := grantedGate(t)
		_, err := g.VerifyView(context.Background(), token+"x")
		assert.ErrorIs(t, err, ErrInvalidViewToken)
	})

	t.Run("token de outro segredo", func(t *testing.T) {
		g, token := grantedGate(t)
		g.secret = []byte("outro")
		_, err := g.VerifyView(context.Background(), token)
		var gateErr *GateError
		require.True(t, errors.As(err, &gateErr))
		assert.Equal(t, "AUTH_006", gateErr.Code)
	})
}
