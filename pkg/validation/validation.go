// Package validation centraliza a validação de payloads via go-playground/validator
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator retorna a instância compartilhada, que reporta os campos pelo nome JSON
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return instance
}

// Struct valida s e retorna as mensagens de cada campo inválido, ou nil
func Struct(s any) []string {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, message(fieldErr))
	}
	return messages
}

func message(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", field)
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fieldErr.Param())
	case "len":
		return fmt.Sprintf("%s deve ter exatamente %s caracteres", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s é inválido (%s)", field, fieldErr.Tag())
	}
}
