package authorizing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingViewToken = errors.New("token de acesso administrativo ausente")
	ErrInvalidViewToken = errors.New("token de acesso administrativo inválido")
	ErrExpiredViewToken = errors.New("token de acesso administrativo expirado")
	ErrNotAdmin         = errors.New("acesso restrito a administradores")
	ErrSessionClosed    = errors.New("sessão de origem encerrada")
)

// GateError é o erro devolvido na verificação do token de acesso
type GateError struct {
	Err     error
	Code    string
	Details string
}

func (e *GateError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *GateError) Unwrap() error {
	return e.Err
}

func newGateError(base error, code, details string) *GateError {
	return &GateError{Err: base, Code: code, Details: details}
}
