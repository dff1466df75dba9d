package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

const usersTable = "users"

var userColumns = []string{
	"u.id", "u.name", "u.email", "u.password_hash", "u.role", "u.is_temporary_password",
	"u.must_change_password", "u.last_password_change", "u.created_at", "u.updated_at",
}

type UserRepository interface {
	// Create grava o usuário e a atividade; email duplicado retorna ErrDuplicate
	Create(ctx context.Context, user *domain.User, activity *domain.Activity) error
	Update(ctx context.Context, user *domain.User, activity *domain.Activity) error
	// Delete remove o usuário; com leads atribuídos retorna ErrReferenced
	Delete(ctx context.Context, id string, activity *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// FirstByRole retorna o usuário mais antigo do papel, ou nil
	FirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User, activity *domain.Activity) error {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("id", "name", "email", "password_hash", "role", "is_temporary_password",
			"must_change_password", "last_password_change", "created_at", "updated_at").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsTemporaryPassword,
			user.MustChangePassword, user.LastPasswordChange, user.CreatedAt, user.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError(err, "erro ao inserir usuário")
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *userRepository) Update(ctx context.Context, user *domain.User, activity *domain.Activity) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("role", user.Role).
		Set("is_temporary_password", user.IsTemporaryPassword).
		Set("must_change_password", user.MustChangePassword).
		Set("last_password_change", user.LastPasswordChange).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError(err, "erro ao atualizar usuário")
		}

		if activity == nil {
			return nil
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *userRepository) Delete(ctx context.Context, id string, activity *domain.Activity) error {
	query, args, err := squirrel.
		Delete(usersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError(err, "erro ao excluir usuário")
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(u.email) = LOWER(?)", email))
}

func (r *userRepository) FirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable + " u").
		Where(squirrel.Eq{"u.role": role}).
		OrderBy("u.created_at ASC", "u.id ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar usuário por papel")
	}

	return user, nil
}

func (r *userRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable + " u").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar usuário")
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, nil)
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	return r.list(ctx, squirrel.Eq{"u.role": role})
}

func (r *userRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.User, error) {
	columns := append(append([]string{}, userColumns...), "(SELECT COUNT(*) FROM leads l WHERE l.responsavel_id = u.id)")

	queryBuilder := squirrel.
		Select(columns...).
		From(usersTable + " u").
		OrderBy("u.name ASC")

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar usuários")
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.IsTemporaryPassword,
			&user.MustChangePassword,
			&user.LastPasswordChange,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.LeadCount,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao processar usuário")
		}

		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return users, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsTemporaryPassword,
		&user.MustChangePassword,
		&user.LastPasswordChange,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
