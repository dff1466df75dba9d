package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido ou ausente
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe
	ErrWeakPassword          = "AUTH_011" // Senha não atende aos requisitos
	ErrEmailDomainNotAllowed = "AUTH_012" // Domínio de email não permitido

	// Erros de gestão de usuários
	ErrSelfDelete   = "USR_001" // Usuário tentando excluir a si mesmo
	ErrUserHasLeads = "USR_002" // Usuário com leads atribuídos

	// Erros do funil de leads
	ErrLeadNotFound          = "LEAD_001" // Lead não encontrado
	ErrInvalidStatus         = "LEAD_002" // Status fora do funil
	ErrInconsistentContract  = "LEAD_003" // Dados de contrato incompatíveis com o status
	ErrLeadWithoutOwner      = "LEAD_004" // Lead fora de NAO_CONTATADO sem responsável
	ErrInvalidAssignee       = "LEAD_005" // Responsável inexistente ou não vendedor
	ErrReminderNotFound      = "LEAD_006" // Lembrete não encontrado
	ErrInvalidReportInterval = "REP_001"  // Janela do relatório inválida

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	ErrTooManyRequests = "RATE_001" // Limite de requisições excedido

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusConflict,
	ErrWeakPassword:          http.StatusBadRequest,
	ErrEmailDomainNotAllowed: http.StatusBadRequest,
	ErrSelfDelete:            http.StatusBadRequest,
	ErrUserHasLeads:          http.StatusBadRequest,
	ErrLeadNotFound:          http.StatusNotFound,
	ErrInvalidStatus:         http.StatusBadRequest,
	ErrInconsistentContract:  http.StatusBadRequest,
	ErrLeadWithoutOwner:      http.StatusBadRequest,
	ErrInvalidAssignee:       http.StatusBadRequest,
	ErrReminderNotFound:      http.StatusNotFound,
	ErrInvalidReportInterval: http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrTooManyRequests:       http.StatusTooManyRequests,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
