package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// ValidationError errores por campo; errors.Is(err, domain.ErrInvalidInput) es true.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput.Error(), strings.Join(e.Fields, "; "))
}

// Unwrap permite errors.Is con domain.ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Nombres de campo según el tag json.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
			}
			return name
		})
		_ = validate.RegisterValidation("ruc", func(fl validator.FieldLevel) bool {
			return sunat.ValidateRUC(fl.Field().String()) == nil
		})
		_ = validate.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
			return sunat.ValidateDNI(fl.Field().String()) == nil
		})
		_ = validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
			return isPeriod(fl.Field().String())
		})
	})
	return validate
}

// Validate ejecuta los tags `validate` de un DTO de entrada.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field()+": "+validationMessage(e))
	}
	return &ValidationError{Fields: fields}
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "uuid":
		return "UUID inválido"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "ruc":
		return "RUC inválido"
	case "dni":
		return "DNI inválido"
	case "period":
		return "periodo inválido (YYYY-MM)"
	case "gte":
		return "debe ser mayor o igual a " + e.Param()
	case "url":
		return "URL inválida"
	default:
		return "valor inválido"
	}
}

func isPeriod(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	month := (s[5]-'0')*10 + (s[6] - '0')
	return month >= 1 && month <= 12
}
