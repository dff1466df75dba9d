package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

const interactionsTable = "interactions"

type InteractionRepository interface {
	// Create grava a interação, marca o último contato do lead em touchedAt e registra a atividade
	Create(ctx context.Context, interaction *domain.Interaction, touchedAt time.Time, activity *domain.Activity) error
	ListByLead(ctx context.Context, leadID string) ([]*domain.Interaction, error)
}

type interactionRepository struct {
	conn *postgres.Connection
}

func NewInteractionRepository(conn *postgres.Connection) InteractionRepository {
	return &interactionRepository{
		conn: conn,
	}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction, touchedAt time.Time, activity *domain.Activity) error {
	insertSQL, insertArgs, err := squirrel.
		Insert(interactionsTable).
		Columns("id", "lead_id", "user_id", "tipo", "descricao", "resultado", "proximo_step", "created_at").
		Values(interaction.ID, interaction.LeadID, interaction.UserID, interaction.Tipo, interaction.Descricao,
			interaction.Resultado, interaction.ProximoStep, interaction.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	touchSQL, touchArgs, err := squirrel.
		Update(leadsTable).
		Set("data_ultimo_contato", touchedAt).
		Set("updated_at", touchedAt).
		Where(squirrel.Eq{"id": interaction.LeadID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return classifyError(err, "erro ao inserir interação")
		}

		if _, err := tx.ExecContext(ctx, touchSQL, touchArgs...); err != nil {
			return errors.Wrap(err, "erro ao atualizar último contato do lead")
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *interactionRepository) ListByLead(ctx context.Context, leadID string) ([]*domain.Interaction, error) {
	query, args, err := squirrel.
		Select("i.id", "i.lead_id", "i.user_id", "u.name", "i.tipo", "i.descricao", "i.resultado", "i.proximo_step", "i.created_at").
		From(interactionsTable + " i").
		LeftJoin(usersTable + " u ON u.id = i.user_id").
		Where(squirrel.Eq{"i.lead_id": leadID}).
		OrderBy("i.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar interações")
	}
	defer rows.Close()

	interactions := make([]*domain.Interaction, 0)
	for rows.Next() {
		var (
			interaction domain.Interaction
			userName    sql.NullString
		)

		if err := rows.Scan(
			&interaction.ID,
			&interaction.LeadID,
			&interaction.UserID,
			&userName,
			&interaction.Tipo,
			&interaction.Descricao,
			&interaction.Resultado,
			&interaction.ProximoStep,
			&interaction.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao processar interação")
		}

		interaction.UserName = nullableString(userName)
		interactions = append(interactions, &interaction)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return interactions, nil
}
