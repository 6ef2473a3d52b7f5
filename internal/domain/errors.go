package domain

import "errors"

var (
	ErrUnknownTier        = errors.New("tier desconhecido")
	ErrUnknownCategory    = errors.New("categoria desconhecida")
	ErrUnknownBenefitType = errors.New("tipo de benefício desconhecido")
)
