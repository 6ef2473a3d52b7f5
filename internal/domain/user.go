package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Role string

const (
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin:
		return true
	}
	return false
}

type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionClaims são as claims do token de sessão. O ID (jti) permite a revogação.
type SessionClaims struct {
	UserID    string `json:"uid"`
	UserName  string `json:"name"`
	UserEmail string `json:"email"`
	jwt.RegisteredClaims
}

const (
	SessionAudience = "session"
	AdminViewScope  = "admin_view"
)

// AdminViewClaims são as claims do token emitido pelo portão administrativo
type AdminViewClaims struct {
	UserID    string `json:"uid"`
	UserEmail string `json:"email"`
	Role      Role   `json:"role"`
	Scope     string `json:"scope"`
	// SessionID é o jti da sessão que passou pelo portão
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
