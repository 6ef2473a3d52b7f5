package requesting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/benefits-club-api/internal/domain"
)

var (
	ErrInvalidTransition = errors.New("operação inválida para o estado atual")
	ErrValidation        = errors.New("formulário inválido")
	ErrNoSubject         = errors.New("nenhum item selecionado")
	ErrNoCoupon          = errors.New("benefício sem cupom")
	ErrSubmissionPending = errors.New("solicitação já enviada")
)

const (
	CodeValidation   = "VAL_004"
	CodeInvalidState = "RES_003"
)

// WorkflowError descreve uma falha do fluxo de solicitação
type WorkflowError struct {
	Err     error
	Code    string
	State   State
	Details string
	Fields  domain.FieldErrors
}

func (e *WorkflowError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func newTransitionError(baseErr error, state State, details string) *WorkflowError {
	return &WorkflowError{
		Err:     baseErr,
		Code:    CodeInvalidState,
		State:   state,
		Details: details,
	}
}

func newValidationError(fields domain.FieldErrors) *WorkflowError {
	return &WorkflowError{
		Err:    ErrValidation,
		Code:   CodeValidation,
		Fields: fields,
	}
}
