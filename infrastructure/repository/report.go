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

// ReportRepository expõe as agregações do portfólio; cada método é uma única consulta
type ReportRepository interface {
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountByPriority(ctx context.Context) ([]domain.PriorityCount, error)
	TopInstitutions(ctx context.Context, limit uint64) ([]domain.BankCount, error)
	// MonthlyAmounts soma os valores por mês de criação em [start, end), agrupando no fuso tz
	MonthlyAmounts(ctx context.Context, start, end time.Time, tz string) ([]domain.MonthlyAmounts, error)
	LeadStatsByOwner(ctx context.Context) ([]domain.OwnerLeadStats, error)
	InteractionStatsByUser(ctx context.Context, since time.Time) ([]domain.UserInteractionStats, error)
	Totals(ctx context.Context, recentSince time.Time) (*domain.PortfolioTotals, error)
	CountInteractionsSince(ctx context.Context, since time.Time) (int, error)
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	query, args, err := squirrel.
		Select("status", "COUNT(*)").
		From(leadsTable).
		GroupBy("status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agrupar leads por status")
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var count domain.StatusCount
		if err := rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, errors.Wrap(err, "erro ao processar contagem por status")
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return counts, nil
}

func (r *reportRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	query, args, err := squirrel.
		Select("prioridade", "COUNT(*)").
		From(leadsTable).
		GroupBy("prioridade").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agrupar leads por prioridade")
	}
	defer rows.Close()

	counts := make([]domain.PriorityCount, 0)
	for rows.Next() {
		var count domain.PriorityCount
		if err := rows.Scan(&count.Prioridade, &count.Count); err != nil {
			return nil, errors.Wrap(err, "erro ao processar contagem por prioridade")
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return counts, nil
}

func (r *reportRepository) TopInstitutions(ctx context.Context, limit uint64) ([]domain.BankCount, error) {
	query, args, err := squirrel.
		Select("instituicoes_financeiras", "COUNT(*) AS total").
		From(leadsTable).
		Where(squirrel.And{
			squirrel.NotEq{"instituicoes_financeiras": nil},
			squirrel.NotEq{"instituicoes_financeiras": ""},
		}).
		GroupBy("instituicoes_financeiras").
		OrderBy("total DESC", "instituicoes_financeiras ASC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agrupar leads por instituição")
	}
	defer rows.Close()

	counts := make([]domain.BankCount, 0)
	for rows.Next() {
		var count domain.BankCount
		if err := rows.Scan(&count.Instituicao, &count.Count); err != nil {
			return nil, errors.Wrap(err, "erro ao processar contagem por instituição")
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return counts, nil
}

func (r *reportRepository) MonthlyAmounts(ctx context.Context, start, end time.Time, tz string) ([]domain.MonthlyAmounts, error) {
	query, args, err := squirrel.
		Select().
		Column("to_char(date_trunc('month', created_at AT TIME ZONE ?), 'YYYY-MM') AS mes", tz).
		Columns(
			"COALESCE(SUM(valor_estimado_recuperacao), 0)",
			"COALESCE(SUM(valor_estimado_recuperacao) FILTER (WHERE contrato_assinado), 0)",
			"COALESCE(SUM(valor_estimado_recuperacao) FILTER (WHERE status = 'PERDIDO'), 0)",
		).
		From(leadsTable).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		GroupBy("mes").
		OrderBy("mes ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao somar valores mensais")
	}
	defer rows.Close()

	amounts := make([]domain.MonthlyAmounts, 0)
	for rows.Next() {
		var amount domain.MonthlyAmounts
		if err := rows.Scan(&amount.Month, &amount.Estimado, &amount.Fechado, &amount.Perdido); err != nil {
			return nil, errors.Wrap(err, "erro ao processar valores mensais")
		}
		amounts = append(amounts, amount)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return amounts, nil
}

func (r *reportRepository) LeadStatsByOwner(ctx context.Context) ([]domain.OwnerLeadStats, error) {
	query, args, err := squirrel.
		Select(
			"responsavel_id",
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE status <> 'NAO_CONTATADO')",
			"COUNT(*) FILTER (WHERE contrato_assinado)",
			"COALESCE(SUM(valor_estimado_recuperacao), 0)",
			"COALESCE(SUM(valor_estimado_recuperacao) FILTER (WHERE contrato_assinado), 0)",
		).
		From(leadsTable).
		Where(squirrel.NotEq{"responsavel_id": nil}).
		GroupBy("responsavel_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agrupar leads por responsável")
	}
	defer rows.Close()

	stats := make([]domain.OwnerLeadStats, 0)
	for rows.Next() {
		var stat domain.OwnerLeadStats
		if err := rows.Scan(
			&stat.ResponsavelID,
			&stat.TotalLeads,
			&stat.LeadsContatados,
			&stat.ContratosFechados,
			&stat.ValorTotal,
			&stat.ValorFechado,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao processar estatísticas do responsável")
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return stats, nil
}

func (r *reportRepository) InteractionStatsByUser(ctx context.Context, since time.Time) ([]domain.UserInteractionStats, error) {
	query, args, err := squirrel.
		Select("user_id").
		Column("COUNT(*) FILTER (WHERE created_at >= ?)", since).
		Column("MAX(created_at)").
		From(interactionsTable).
		GroupBy("user_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agrupar interações por usuário")
	}
	defer rows.Close()

	stats := make([]domain.UserInteractionStats, 0)
	for rows.Next() {
		var (
			stat            domain.UserInteractionStats
			lastInteraction sql.NullTime
		)
		if err := rows.Scan(&stat.UserID, &stat.RecentCount, &lastInteraction); err != nil {
			return nil, errors.Wrap(err, "erro ao processar estatísticas de interação")
		}
		stat.LastInteraction = nullableTime(lastInteraction)
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return stats, nil
}

func (r *reportRepository) Totals(ctx context.Context, recentSince time.Time) (*domain.PortfolioTotals, error) {
	query, args, err := squirrel.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(valor_estimado_recuperacao), 0)",
			"COUNT(*) FILTER (WHERE contrato_assinado)",
		).
		Column("COUNT(*) FILTER (WHERE created_at >= ?)", recentSince).
		From(leadsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var totals domain.PortfolioTotals
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&totals.TotalLeads,
		&totals.TotalValue,
		&totals.ContractedLeads,
		&totals.RecentLeads,
	); err != nil {
		return nil, errors.Wrap(err, "erro ao consultar totais do portfólio")
	}

	return &totals, nil
}

func (r *reportRepository) CountInteractionsSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(interactionsTable).
		Where(squirrel.GtOrEq{"created_at": since}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar interações recentes")
	}

	return count, nil
}
