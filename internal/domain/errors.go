package domain

import (
	"errors"
	"fmt"

	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
)

// Taxonomia de erros exposta pelos casos de uso
var (
	ErrUnauthenticated = errors.New("usuário não autenticado")
	ErrForbidden       = errors.New("acesso negado")
	ErrNotFound        = errors.New("registro não encontrado")
	ErrInvalidInput    = errors.New("dados inválidos")
	ErrConflict        = errors.New("conflito de dados")
	ErrInternal        = errors.New("falha interna")
)

// Error carrega o erro da taxonomia, o código da API e detalhes legíveis
type Error struct {
	Err     error  // Erro da taxonomia
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	Cause   error  // Falha de infraestrutura original, quando houver
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Message retorna o texto seguro para o cliente, sem a causa interna
func (e *Error) Message() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewError(baseErr error, code string, details string) *Error {
	return &Error{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewUnauthenticatedError() *Error {
	return NewError(ErrUnauthenticated, apiErrors.ErrInvalidToken, "Usuário não autenticado")
}

func NewForbiddenError(details string) *Error {
	return NewError(ErrForbidden, apiErrors.ErrInsufficientPrivilege, details)
}

func NewNotFoundError(code string, details string) *Error {
	return NewError(ErrNotFound, code, details)
}

func NewInvalidInputError(code string, details string) *Error {
	return NewError(ErrInvalidInput, code, details)
}

func NewConflictError(code string, details string) *Error {
	return NewError(ErrConflict, code, details)
}

// NewInternalError encapsula falhas de armazenamento, distintas dos erros de domínio
func NewInternalError(cause error, details string) *Error {
	return &Error{
		Err:     ErrInternal,
		Code:    apiErrors.ErrDatabaseOperation,
		Details: details,
		Cause:   cause,
	}
}
