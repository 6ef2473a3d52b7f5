package cataloging

import (
	"errors"
	"fmt"

	"github.com/vfg2006/benefits-club-api/internal/domain"
)

var (
	ErrInvalidQuery      = errors.New("consulta inválida")
	ErrBenefitNotFound   = errors.New("benefício não encontrado")
	ErrSessionNotFound   = errors.New("sessão executiva não encontrada")
	ErrSourceUnavailable = errors.New("catálogo indisponível")
)

// Códigos usados pela camada HTTP
const (
	CodeInvalidQuery      = "VAL_004"
	CodeBenefitNotFound   = "RES_001"
	CodeSessionNotFound   = "RES_002"
	CodeSourceUnavailable = "SRV_001"
)

// CatalogError carrega o código da API e, quando houver, os erros por campo
type CatalogError struct {
	Err     error
	Code    string
	Details string
	Fields  domain.FieldErrors
}

func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(baseErr error, code, details string, fields domain.FieldErrors) *CatalogError {
	return &CatalogError{
		Err:     baseErr,
		Code:    code,
		Details: details,
		Fields:  fields,
	}
}
