package utils

import "github.com/google/uuid"

// NewID gera o identificador opaco das entidades
func NewID() string {
	return uuid.NewString()
}

// StringPtr converte texto em ponteiro, tratando texto em branco como ausente
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
