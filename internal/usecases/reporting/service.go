// Package reporting agrega o portfólio de leads nos relatórios da diretoria
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/access"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/metrics"
)

const (
	MinMonths = 1
	MaxMonths = 24

	topInstitutions    = 10
	recentLeadsWindow  = 30 * 24 * time.Hour
	interactionsWindow = 7 * 24 * time.Hour
	salespersonWindow  = 30 * 24 * time.Hour

	cacheKeyPrefix = "reports:"
)

// Cache é o armazenamento opcional das respostas; nil desabilita o cache
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

type Reporter interface {
	FunnelReport(ctx context.Context, actor *domain.Actor) (*domain.FunnelReport, error)
	FinancialReport(ctx context.Context, actor *domain.Actor, months int) ([]domain.FinancialMonth, error)
	SalespersonReport(ctx context.Context, actor *domain.Actor) ([]domain.SalespersonPerformance, error)
	DashboardStats(ctx context.Context, actor *domain.Actor) (*domain.DashboardStats, error)
	// Refresh recalcula os relatórios e regrava o cache; sem cache não faz nada
	Refresh(ctx context.Context) error
}

type Service struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	cache      Cache
	cfg        config.Reports
	loc        *time.Location
	now        func() time.Time
}

func NewService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	cache Cache,
	cfg config.Reports,
) Reporter {
	return &Service{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		cache:      cache,
		cfg:        cfg,
		loc:        cfg.Location(),
		now:        time.Now,
	}
}

func (s *Service) FunnelReport(ctx context.Context, actor *domain.Actor) (*domain.FunnelReport, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	return cached(ctx, s, "funnel", s.funnel)
}

// FinancialReport soma os valores dos leads por mês de criação; months fora de 1..24 é inválido
func (s *Service) FinancialReport(ctx context.Context, actor *domain.Actor, months int) ([]domain.FinancialMonth, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	if months == 0 {
		months = s.defaultMonths()
	}

	if months < MinMonths || months > MaxMonths {
		return nil, domain.NewInvalidInputError(apiErrors.ErrInvalidReportInterval,
			fmt.Sprintf("meses deve estar entre %d e %d", MinMonths, MaxMonths))
	}

	return cached(ctx, s, fmt.Sprintf("financial:%d", months), func(ctx context.Context) ([]domain.FinancialMonth, error) {
		return s.financial(ctx, months)
	})
}

func (s *Service) SalespersonReport(ctx context.Context, actor *domain.Actor) ([]domain.SalespersonPerformance, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	return cached(ctx, s, "salespeople", s.salespeople)
}

func (s *Service) DashboardStats(ctx context.Context, actor *domain.Actor) (*domain.DashboardStats, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	return cached(ctx, s, "dashboard", s.dashboard)
}

func (s *Service) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	if _, err := s.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
		return err
	}

	funnel, err := s.funnel(ctx)
	if err != nil {
		return err
	}

	months := s.defaultMonths()
	financial, err := s.financial(ctx, months)
	if err != nil {
		return err
	}

	salespeople, err := s.salespeople(ctx)
	if err != nil {
		return err
	}

	dashboard, err := s.dashboard(ctx)
	if err != nil {
		return err
	}

	entries := map[string]any{
		"funnel":                            funnel,
		fmt.Sprintf("financial:%d", months): financial,
		"salespeople":                       salespeople,
		"dashboard":                         dashboard,
	}

	for key, value := range entries {
		if err := s.cache.SetJSON(ctx, cacheKeyPrefix+key, value, s.cfg.CacheTTL); err != nil {
			return err
		}
	}

	return nil
}

// cached consulta o cache antes de calcular; falhas do cache só geram aviso
func cached[T any](ctx context.Context, s *Service, key string, compute func(context.Context) (T, error)) (T, error) {
	if s.cache == nil {
		return compute(ctx)
	}

	var result T
	found, err := s.cache.GetJSON(ctx, cacheKeyPrefix+key, &result)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warnf("Falha ao ler relatório %s do cache", key)
	}
	metrics.RecordCacheLookup(key, found)
	if found {
		return result, nil
	}

	result, err = compute(ctx)
	if err != nil {
		return result, err
	}

	if err := s.cache.SetJSON(ctx, cacheKeyPrefix+key, result, s.cfg.CacheTTL); err != nil {
		log.ForContext(ctx).WithError(err).Warnf("Falha ao gravar relatório %s no cache", key)
	}

	return result, nil
}

func (s *Service) funnel(ctx context.Context) (*domain.FunnelReport, error) {
	counts, err := s.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao calcular o funil")
	}

	return BuildFunnel(counts), nil
}

func (s *Service) financial(ctx context.Context, months int) ([]domain.FinancialMonth, error) {
	starts, end := MonthWindow(s.now(), months, s.loc)

	amounts, err := s.reportRepo.MonthlyAmounts(ctx, starts[0], end, s.loc.String())
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao calcular o relatório financeiro")
	}

	return BuildFinancial(starts, amounts), nil
}

// salespeople usa três consultas agrupadas, independente da quantidade de vendedores
func (s *Service) salespeople(ctx context.Context) ([]domain.SalespersonPerformance, error) {
	now := s.now()

	vendedores, err := s.userRepo.ListByRole(ctx, domain.RoleVendedor)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao listar vendedores")
	}

	leadStats, err := s.reportRepo.LeadStatsByOwner(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao agregar leads por vendedor")
	}

	interactionStats, err := s.reportRepo.InteractionStatsByUser(ctx, now.Add(-salespersonWindow))
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao agregar interações por vendedor")
	}

	return BuildSalesperson(vendedores, leadStats, interactionStats, now), nil
}

func (s *Service) dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	now := s.now()

	totals, err := s.reportRepo.Totals(ctx, now.Add(-recentLeadsWindow))
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao calcular totais")
	}

	statusCounts, err := s.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao agrupar por status")
	}

	priorityCounts, err := s.reportRepo.CountByPriority(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao agrupar por prioridade")
	}

	banks, err := s.reportRepo.TopInstitutions(ctx, topInstitutions)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao agrupar por instituição")
	}

	recentInteractions, err := s.reportRepo.CountInteractionsSince(ctx, now.Add(-interactionsWindow))
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao contar interações recentes")
	}

	return BuildDashboard(totals, statusCounts, priorityCounts, banks, recentInteractions), nil
}

func (s *Service) defaultMonths() int {
	if s.cfg.DefaultMonths < MinMonths || s.cfg.DefaultMonths > MaxMonths {
		return 6
	}
	return s.cfg.DefaultMonths
}
