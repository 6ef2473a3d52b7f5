package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors associa o nome do campo (como no JSON) à mensagem exibida ao lado dele
type FieldErrors map[string]string

func (f FieldErrors) Empty() bool { return len(f) == 0 }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator retorna a instância compartilhada com as tags do domínio registradas
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
			return TierCode(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return Category(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("benefit_type", func(fl validator.FieldLevel) bool {
			return BenefitType(fl.Field().String()).IsValid()
		})

		validate = v
	})
	return validate
}

// mensagens por campo e regra; a chave "" vale para qualquer regra do campo
var fieldMessages = map[string]map[string]string{
	"full_name": {
		"min": "Nome completo é obrigatório",
		"max": "Nome muito longo",
	},
	"company_name": {
		"min":      "Nome da empresa é obrigatório",
		"required": "Nome da empresa é obrigatório",
		"max":      "Nome muito longo",
	},
	"phone": {"": "Telefone inválido"},
	"email": {
		"max": "Email muito longo",
		"":    "Email inválido",
	},
	"available_dates": {
		"max": "Texto muito longo",
		"":    "Informe pelo menos uma opção de data e horário",
	},
	"name": {
		"max": "Nome muito longo",
		"":    "Nome é obrigatório",
	},
	"nome":            {"": "Nome é obrigatório"},
	"mensagem":        {"": "Mensagem é obrigatória"},
	"cnpj":            {"": "CNPJ inválido"},
	"description":     {"": "Descrição é obrigatória"},
	"company_website": {"": "URL inválida"},
	"redemption_link": {"": "URL inválida"},
	"logo_url":        {"": "URL inválida"},
	"company_contact": {"": "Contato muito longo"},
	"coupon_code":     {"": "Cupom muito longo"},
	"category": {
		"required": "Categoria é obrigatória",
		"":         "Categoria inválida",
	},
	"benefit_type": {
		"required": "Tipo de benefício é obrigatório",
		"":         "Tipo de benefício inválido",
	},
	"eligible_tiers":  {"": "Tier inválido"},
	"id":              {"": "Identificador é obrigatório"},
}

func messageFor(field, tag string) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
		if msg, ok := byTag[""]; ok {
			return msg
		}
	}
	return "Valor inválido"
}

// fieldName remove o índice de elementos de slices: eligible_tiers[1] vira eligible_tiers
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// Validate executa as regras de validação e devolve um erro por campo
func Validate(s any) FieldErrors {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return FieldErrors{"": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range validationErrors {
		name := fieldName(fe)
		if _, exists := out[name]; exists {
			continue
		}
		out[name] = messageFor(name, fe.Tag())
	}
	return out
}

// ValidateLeadForm valida o formulário de solicitação. withDates habilita a
// regra de datas disponíveis da solicitação de sessão executiva.
func ValidateLeadForm(f LeadFormSubmission, withDates bool) FieldErrors {
	out := Validate(f)
	if !withDates {
		return out
	}

	if err := Validator().Var(f.AvailableDates, "min=10,max=500"); err != nil {
		var validationErrors validator.ValidationErrors
		tag := "min"
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			tag = validationErrors[0].Tag()
		}
		if out == nil {
			out = FieldErrors{}
		}
		out["available_dates"] = messageFor("available_dates", tag)
	}
	return out
}
