// Package validate wraps go-playground/validator with the storefront's Brazilian document, phone
// and postal code rules and turns validation failures into field-level messages.
package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const (
	TagCpfCnpj = "cpfcnpj"
	TagPhone   = "phone"
	TagCep     = "cep"

	// messageTag holds the user facing message of a field, shown whatever rule failed.
	messageTag = "message"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	mustRegister(validate, TagCpfCnpj, ValidateCpfCnpj)
	mustRegister(validate, TagPhone, ValidatePhone)
	mustRegister(validate, TagCep, ValidateCep)
	return &Validator{validate: validate}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed registering validation tag=%s with error=%s", tag, err.Error()))
	}
}

// Struct returns nil or an *errors.ValidationError describing every rejected field.
func (v *Validator) Struct(c context.Context, s interface{}) error {
	err := v.validate.StructCtx(c, s)
	if err == nil {
		return nil
	}

	fieldErrs := validator.ValidationErrors{}
	if !errors.As(err, &fieldErrs) {
		return err
	}

	structType := reflect.TypeOf(s)
	for structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		if _, exists := fields[fieldErr.Field()]; exists {
			continue
		}
		fields[fieldErr.Field()] = message(structType, fieldErr)
	}
	return inErrors.NewValidationError(fields)
}

func message(structType reflect.Type, fieldErr validator.FieldError) string {
	if structType.Kind() == reflect.Struct {
		if field, ok := structType.FieldByName(fieldErr.StructField()); ok {
			if msg := field.Tag.Get(messageTag); msg != "" {
				return msg
			}
		}
	}
	if fieldErr.Param() != "" {
		return fmt.Sprintf("%s failed on %s=%s", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param())
	}
	return fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag())
}

// Digits keeps only the ASCII digits of s, "123.456.789-09" becomes "12345678909".
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func ValidateCpfCnpj(fl validator.FieldLevel) bool {
	n := len(Digits(fl.Field().String()))
	return n == 11 || n == 14
}

func ValidatePhone(fl validator.FieldLevel) bool {
	n := len(Digits(fl.Field().String()))
	return n == 10 || n == 11
}

func ValidateCep(fl validator.FieldLevel) bool {
	return len(Digits(fl.Field().String())) == 8
}
