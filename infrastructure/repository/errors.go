package repository

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
)

var (
	// ErrDuplicate indica violação de unicidade (ex.: email já cadastrado)
	ErrDuplicate = errors.New("registro duplicado")
	// ErrReferenced indica que o registro ainda é referenciado por outra tabela
	ErrReferenced = errors.New("registro ainda referenciado")
)

// classifyError traduz violações de constraint do PostgreSQL para os erros do pacote
func classifyError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err):
		return errors.Wrap(ErrDuplicate, msg)
	case postgres.IsForeignKeyViolation(err):
		return errors.Wrap(ErrReferenced, msg)
	default:
		return errors.Wrap(err, msg)
	}
}
