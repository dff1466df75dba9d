package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

const activitiesTable = "activities"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error)
}

type activityRepository struct {
	conn *postgres.Connection
}

func NewActivityRepository(conn *postgres.Connection) ActivityRepository {
	return &activityRepository{
		conn: conn,
	}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return insertActivity(ctx, r.conn, activity)
}

// insertActivity grava a entrada de auditoria usando q, que pode ser a transação da mutação
func insertActivity(ctx context.Context, q postgres.Queryer, activity *domain.Activity) error {
	metadata, err := json.Marshal(activity.Metadata)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar metadados da atividade")
	}

	query, args, err := squirrel.
		Insert(activitiesTable).
		Columns("id", "lead_id", "user_id", "tipo", "descricao", "metadata", "created_at").
		Values(activity.ID, activity.LeadID, activity.UserID, activity.Tipo, activity.Descricao, string(metadata), activity.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir atividade")
	}

	return nil
}

func (r *activityRepository) ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error) {
	query, args, err := squirrel.
		Select("a.id", "a.lead_id", "a.user_id", "u.name", "a.tipo", "a.descricao", "a.metadata", "a.created_at").
		From(activitiesTable + " a").
		LeftJoin(usersTable + " u ON u.id = a.user_id").
		Where(squirrel.Or{
			squirrel.Eq{"a.lead_id": leadID},
			squirrel.Expr("a.metadata->>'leadId' = ?", leadID),
		}).
		OrderBy("a.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar atividades")
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		var (
			activity domain.Activity
			userName sql.NullString
			metadata []byte
		)

		if err := rows.Scan(
			&activity.ID,
			&activity.LeadID,
			&activity.UserID,
			&userName,
			&activity.Tipo,
			&activity.Descricao,
			&metadata,
			&activity.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao processar atividade")
		}

		if err := json.Unmarshal(metadata, &activity.Metadata); err != nil {
			return nil, errors.Wrap(err, "erro ao interpretar metadados da atividade")
		}

		activity.UserName = nullableString(userName)
		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return activities, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
