package managing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/benefits-club-api/internal/domain"
)

var (
	ErrValidation         = errors.New("benefício inválido")
	ErrMissingID          = errors.New("id do benefício é obrigatório")
	ErrBenefitNotFound    = errors.New("benefício não encontrado")
	ErrDeleteNotConfirmed = errors.New("exclusão não confirmada")
	ErrStore              = errors.New("erro ao acessar o cadastro de benefícios")
)

// BenefitError carrega o código da API, os erros por campo e as notificações
// que o painel deve exibir
type BenefitError struct {
	Err           error
	Code          string
	Details       string
	Fields        domain.FieldErrors
	Notifications []domain.Notification
}

func (e *BenefitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BenefitError) Unwrap() error {
	return e.Err
}

func newBenefitError(baseErr error, code, details string, notifications ...domain.Notification) *BenefitError {
	return &BenefitError{
		Err:           baseErr,
		Code:          code,
		Details:       details,
		Notifications: notifications,
	}
}
