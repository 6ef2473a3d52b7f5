package authenticating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/infrastructure/cache"
	"github.com/vfg2006/benefits-club-api/infrastructure/repository"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/internal/domain"
	"github.com/vfg2006/benefits-club-api/pkg/apiErrors"
	"github.com/vfg2006/benefits-club-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 24 * time.Hour

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	HasRole(ctx context.Context, userID string, role domain.Role) (bool, error)
}

type Service struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	revocations cache.RevocationStore
	cfg         config.Auth
	now         func() time.Time
}

func NewService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	revocations cache.RevocationStore,
	cfg config.Auth,
) Authenticator {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	return &Service{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		revocations: revocations,
		cfg:         cfg,
		now:         time.Now,
	}
}

// HashPassword gera o hash bcrypt usado na tabela users
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	// Usuário inexistente e senha errada respondem igual
	if user == nil {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	if !user.Active {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "")
	}

	token, sessionID, expiresAt, err := s.generateJWT(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	logrus.WithField("user_id", user.ID).Info("Login realizado")

	user.PasswordHash = ""
	return &domain.Session{
		ID:        sessionID,
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) generateJWT(user *domain.User) (string, string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.SessionTTL)

	claims := domain.SessionClaims{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{domain.SessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	return signed, claims.ID, expiresAt, nil
}

func (s *Service) parseToken(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(domain.SessionAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.SessionClaims)
	if !ok || !token.Valid || claims.ID == "" || claims.UserID == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// GetSession valida o token e confere se a sessão não foi encerrada e se o
// usuário continua ativo
func (s *Service) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, NewAuthError(ErrNoSession, apiErrors.ErrNoSession, "")
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrCommunication, "Erro ao consultar sessões encerradas")
	}
	if revoked {
		return nil, NewUserAuthError(ErrNoSession, apiErrors.ErrNoSession, claims.UserID, "Sessão encerrada")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrNoSession, claims.UserID, "")
	}
	if !user.Active {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	user.PasswordHash = ""
	return &domain.Session{
		ID:        claims.ID,
		Token:     token,
		User:      *user,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignOut encerra a sessão até o horário em que o token expiraria.
// Token inválido ou já expirado não tem o que encerrar.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		logrus.WithError(err).Debug("Logout com token inválido ignorado")
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return NewUserAuthError(err, apiErrors.ErrCommunication, claims.UserID, "Erro ao encerrar sessão")
	}

	logrus.WithField("user_id", claims.UserID).Info("Logout realizado")
	return nil
}

func (s *Service) HasRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	if !role.IsValid() {
		return false, nil
	}

	ok, err := s.roleRepo.HasRole(ctx, userID, role)
	if err != nil {
		return false, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar papéis do usuário")
	}

	return ok, nil
}
