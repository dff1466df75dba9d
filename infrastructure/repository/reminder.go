package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

const remindersTable = "reminders"

var reminderColumns = []string{"id", "lead_id", "user_id", "titulo", "descricao", "data_hora", "concluido", "created_at"}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder, activity *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	Complete(ctx context.Context, id string) error
	// ListOpenByLead retorna os lembretes não concluídos, do mais próximo ao mais distante
	ListOpenByLead(ctx context.Context, leadID string) ([]*domain.Reminder, error)
}

type reminderRepository struct {
	conn *postgres.Connection
}

func NewReminderRepository(conn *postgres.Connection) ReminderRepository {
	return &reminderRepository{
		conn: conn,
	}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder, activity *domain.Activity) error {
	query, args, err := squirrel.
		Insert(remindersTable).
		Columns(reminderColumns...).
		Values(reminder.ID, reminder.LeadID, reminder.UserID, reminder.Titulo, reminder.Descricao,
			reminder.DataHora, reminder.Concluido, reminder.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError(err, "erro ao inserir lembrete")
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	query, args, err := squirrel.
		Select(reminderColumns...).
		From(remindersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	reminder, err := scanReminder(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar lembrete")
	}

	return reminder, nil
}

func (r *reminderRepository) Complete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Update(remindersTable).
		Set("concluido", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao concluir lembrete")
	}

	return nil
}

func (r *reminderRepository) ListOpenByLead(ctx context.Context, leadID string) ([]*domain.Reminder, error) {
	query, args, err := squirrel.
		Select(reminderColumns...).
		From(remindersTable).
		Where(squirrel.Eq{"lead_id": leadID, "concluido": false}).
		OrderBy("data_hora ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar lembretes")
	}
	defer rows.Close()

	reminders := make([]*domain.Reminder, 0)
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao processar lembrete")
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return reminders, nil
}

func scanReminder(row rowScanner) (*domain.Reminder, error) {
	var reminder domain.Reminder
	if err := row.Scan(
		&reminder.ID,
		&reminder.LeadID,
		&reminder.UserID,
		&reminder.Titulo,
		&reminder.Descricao,
		&reminder.DataHora,
		&reminder.Concluido,
		&reminder.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &reminder, nil
}
