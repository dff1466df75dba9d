// Package repository contém as implementações dos repositórios para acesso aos dados
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

const leadsTable = "leads"

var leadColumns = []string{
	"l.id", "l.razao_social", "l.nome_fantasia", "l.cnpj", "l.setor", "l.porte", "l.endereco",
	"l.municipio", "l.uf", "l.cep", "l.telefone_principal", "l.telefone_secundario", "l.email",
	"l.contato_principal", "l.cargo", "l.instituicoes_financeiras", "l.contratos_bancarios",
	"l.observacoes", "l.status", "l.prioridade", "l.responsavel_id", "u.name",
	"l.valor_estimado_recuperacao", "l.contrato_assinado", "l.valor_contrato", "l.data_assinatura",
	"l.proxima_acao", "l.observacoes_contato", "l.data_proxima_acao", "l.data_ultimo_contato",
	"l.created_at", "l.updated_at",
}

type LeadRepository interface {
	// Create persiste o lead e a atividade de criação na mesma transação
	Create(ctx context.Context, lead *domain.Lead, activity *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	// Update grava o estado completo do lead e a atividade da requisição na mesma transação
	Update(ctx context.Context, lead *domain.Lead, activity *domain.Activity) error
	Delete(ctx context.Context, id string, activity *domain.Activity) error
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.LeadSummary, error)
	CountByOwner(ctx context.Context, userID string) (int, error)
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead, activity *domain.Activity) error {
	query, args, err := squirrel.
		Insert(leadsTable).
		Columns(
			"id", "razao_social", "nome_fantasia", "cnpj", "setor", "porte", "endereco", "municipio",
			"uf", "cep", "telefone_principal", "telefone_secundario", "email", "contato_principal",
			"cargo", "instituicoes_financeiras", "contratos_bancarios", "observacoes", "status",
			"prioridade", "responsavel_id", "valor_estimado_recuperacao", "contrato_assinado",
			"proxima_acao", "data_proxima_acao", "created_at", "updated_at",
		).
		Values(
			lead.ID, lead.RazaoSocial, lead.NomeFantasia, lead.CNPJ, lead.Setor, lead.Porte, lead.Endereco, lead.Municipio,
			lead.UF, lead.CEP, lead.TelefonePrincipal, lead.TelefoneSecundario, lead.Email, lead.ContatoPrincipal,
			lead.Cargo, lead.InstituicoesFinanceiras, lead.ContratosBancarios, lead.Observacoes, lead.Status,
			lead.Prioridade, lead.ResponsavelID, lead.ValorEstimadoRecuperacao, lead.ContratoAssinado,
			lead.ProximaAcao, lead.DataProximaAcao, lead.CreatedAt, lead.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError(err, "erro ao inserir lead")
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query, args, err := squirrel.
		Select(leadColumns...).
		From(leadsTable + " l").
		LeftJoin(usersTable + " u ON u.id = l.responsavel_id").
		Where(squirrel.Eq{"l.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	lead, err := scanLead(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar lead")
	}

	return lead, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead, activity *domain.Activity) error {
	query, args, err := squirrel.
		Update(leadsTable).
		Set("status", lead.Status).
		Set("prioridade", lead.Prioridade).
		Set("responsavel_id", lead.ResponsavelID).
		Set("valor_estimado_recuperacao", lead.ValorEstimadoRecuperacao).
		Set("contrato_assinado", lead.ContratoAssinado).
		Set("valor_contrato", lead.ValorContrato).
		Set("data_assinatura", lead.DataAssinatura).
		Set("proxima_acao", lead.ProximaAcao).
		Set("observacoes_contato", lead.ObservacoesContato).
		Set("observacoes", lead.Observacoes).
		Set("data_proxima_acao", lead.DataProximaAcao).
		Set("data_ultimo_contato", lead.DataUltimoContato).
		Set("updated_at", lead.UpdatedAt).
		Where(squirrel.Eq{"id": lead.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return classifyError(err, "erro ao atualizar lead")
		}

		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return errors.Wrapf(sql.ErrNoRows, "lead %s não encontrado para atualização", lead.ID)
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *leadRepository) Delete(ctx context.Context, id string, activity *domain.Activity) error {
	query, args, err := squirrel.
		Delete(leadsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError(err, "erro ao excluir lead")
		}

		return insertActivity(ctx, tx, activity)
	})
}

func (r *leadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.LeadSummary, error) {
	queryBuilder := squirrel.
		Select(
			"l.id", "l.razao_social", "l.nome_fantasia", "l.municipio", "l.uf", "l.telefone_principal",
			"l.status", "l.prioridade", "l.responsavel_id", "u.name", "l.valor_estimado_recuperacao",
			"l.contrato_assinado", "l.proxima_acao", "l.data_proxima_acao", "l.data_ultimo_contato",
			"(SELECT COUNT(*) FROM interactions i WHERE i.lead_id = l.id)",
			"l.created_at", "l.updated_at",
		).
		From(leadsTable + " l").
		LeftJoin(usersTable + " u ON u.id = l.responsavel_id")

	// O escopo por responsável é aplicado no banco, nunca depois da leitura
	if filter.ResponsavelID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"l.responsavel_id": *filter.ResponsavelID})
	}

	if filter.Status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"l.status": *filter.Status})
	}

	if filter.CreatedFrom != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"l.created_at": *filter.CreatedFrom})
	}

	if filter.CreatedTo != nil {
		queryBuilder = queryBuilder.Where(squirrel.Lt{"l.created_at": *filter.CreatedTo})
	}

	switch filter.Order {
	case domain.OrderByPriority:
		queryBuilder = queryBuilder.OrderBy(
			"CASE l.prioridade WHEN 'ALTA' THEN 0 WHEN 'MEDIA' THEN 1 ELSE 2 END",
			"l.updated_at DESC",
		)
	default:
		queryBuilder = queryBuilder.OrderBy("l.created_at DESC")
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar leads")
	}
	defer rows.Close()

	leads := make([]*domain.LeadSummary, 0)
	for rows.Next() {
		var (
			lead            domain.LeadSummary
			responsavelName sql.NullString
		)

		if err := rows.Scan(
			&lead.ID,
			&lead.RazaoSocial,
			&lead.NomeFantasia,
			&lead.Municipio,
			&lead.UF,
			&lead.TelefonePrincipal,
			&lead.Status,
			&lead.Prioridade,
			&lead.ResponsavelID,
			&responsavelName,
			&lead.ValorEstimadoRecuperacao,
			&lead.ContratoAssinado,
			&lead.ProximaAcao,
			&lead.DataProximaAcao,
			&lead.DataUltimoContato,
			&lead.InteractionCount,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao processar lead")
		}

		lead.ResponsavelName = nullableString(responsavelName)
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return leads, nil
}

func (r *leadRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(leadsTable).
		Where(squirrel.Eq{"responsavel_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar leads do responsável")
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var (
		lead            domain.Lead
		responsavelName sql.NullString
		dataAssinatura  sql.NullTime
	)

	err := row.Scan(
		&lead.ID,
		&lead.RazaoSocial,
		&lead.NomeFantasia,
		&lead.CNPJ,
		&lead.Setor,
		&lead.Porte,
		&lead.Endereco,
		&lead.Municipio,
		&lead.UF,
		&lead.CEP,
		&lead.TelefonePrincipal,
		&lead.TelefoneSecundario,
		&lead.Email,
		&lead.ContatoPrincipal,
		&lead.Cargo,
		&lead.InstituicoesFinanceiras,
		&lead.ContratosBancarios,
		&lead.Observacoes,
		&lead.Status,
		&lead.Prioridade,
		&lead.ResponsavelID,
		&responsavelName,
		&lead.ValorEstimadoRecuperacao,
		&lead.ContratoAssinado,
		&lead.ValorContrato,
		&dataAssinatura,
		&lead.ProximaAcao,
		&lead.ObservacoesContato,
		&lead.DataProximaAcao,
		&lead.DataUltimoContato,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.ResponsavelName = nullableString(responsavelName)
	lead.DataAssinatura = nullableTime(dataAssinatura)

	return &lead, nil
}

func nullableTime(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}
