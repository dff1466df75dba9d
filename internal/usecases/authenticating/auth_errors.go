package authenticating

import (
	"errors"

	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
)

// Tipos de erros de autenticação personalizados
var (
	ErrInvalidCredentials    = errors.New("credenciais inválidas")
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrEmailDomainNotAllowed = errors.New("domínio de email não permitido")

	// Erros relacionados a senha
	ErrWeakPassword     = errors.New("senha fraca")
	ErrPasswordMismatch = errors.New("senha atual incorreta")
	ErrSamePassword     = errors.New("nova senha deve ser diferente da atual")
)

// NewAuthError cria um erro da taxonomia do domínio carregando o motivo específico da autenticação
func NewAuthError(kind error, reason error, code string, details string) *domain.Error {
	return &domain.Error{
		Err:     kind,
		Code:    code,
		Details: details,
		Cause:   reason,
	}
}

func credentialsError() *domain.Error {
	return NewAuthError(domain.ErrUnauthenticated, ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha inválidos")
}

func weakPasswordError(details string) *domain.Error {
	return NewAuthError(domain.ErrInvalidInput, ErrWeakPassword, apiErrors.ErrWeakPassword, details)
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsTokenError verifica se o erro veio de um token ausente, inválido ou expirado
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}
