package reporting

import (
	"fmt"
	"time"

	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/utils"
)

var monthAbbreviations = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// MonthLabel formata o mês como "Mmm/AA", ex.: Mar/26
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s/%02d", monthAbbreviations[t.Month()-1], t.Year()%100)
}

// BuildFunnel emite as sete etapas na ordem do funil, inclusive as vazias
func BuildFunnel(counts []domain.StatusCount) *domain.FunnelReport {
	byStatus := make(map[domain.LeadStatus]int, len(counts))
	total := 0
	for _, c := range counts {
		byStatus[c.Status] += c.Count
		total += c.Count
	}

	stages := make([]domain.FunnelStage, 0, len(domain.PipelineStatuses))
	for _, status := range domain.PipelineStatuses {
		count := byStatus[status]
		stages = append(stages, domain.FunnelStage{
			Status:     status,
			Label:      status.Label(),
			Count:      count,
			Percentage: utils.Percentage(count, total),
		})
	}

	return &domain.FunnelReport{
		TotalLeads: total,
		Stages:     stages,
	}
}

// MonthWindow devolve o início de cada um dos últimos n meses (o atual incluso) e o fim exclusivo da janela
func MonthWindow(now time.Time, months int, loc *time.Location) ([]time.Time, time.Time) {
	current := utils.FirstDayOfMonth(now.In(loc))

	starts := make([]time.Time, 0, months)
	for i := months - 1; i >= 0; i-- {
		starts = append(starts, current.AddDate(0, -i, 0))
	}

	return starts, current.AddDate(0, 1, 0)
}

// BuildFinancial preenche os meses da janela com as somas do banco; meses sem leads ficam zerados
func BuildFinancial(starts []time.Time, amounts []domain.MonthlyAmounts) []domain.FinancialMonth {
	byMonth := make(map[string]domain.MonthlyAmounts, len(amounts))
	for _, a := range amounts {
		byMonth[a.Month] = a
	}

	result := make([]domain.FinancialMonth, 0, len(starts))
	for _, start := range starts {
		amount := byMonth[start.Format("2006-01")]
		result = append(result, domain.FinancialMonth{
			Mes:           MonthLabel(start),
			Inicio:        start,
			ValorEstimado: utils.RoundWithTwoDecimalPlace(amount.Estimado),
			ValorFechado:  utils.RoundWithTwoDecimalPlace(amount.Fechado),
			ValorPerdido:  utils.RoundWithTwoDecimalPlace(amount.Perdido),
		})
	}

	return result
}

// BuildSalesperson combina os agregados por responsável e por autor de interação para cada vendedor
func BuildSalesperson(
	vendedores []*domain.User,
	leadStats []domain.OwnerLeadStats,
	interactionStats []domain.UserInteractionStats,
	now time.Time,
) []domain.SalespersonPerformance {
	leadsByOwner := make(map[string]domain.OwnerLeadStats, len(leadStats))
	for _, s := range leadStats {
		leadsByOwner[s.ResponsavelID] = s
	}

	interactionsByUser := make(map[string]domain.UserInteractionStats, len(interactionStats))
	for _, s := range interactionStats {
		interactionsByUser[s.UserID] = s
	}

	result := make([]domain.SalespersonPerformance, 0, len(vendedores))
	for _, vendedor := range vendedores {
		leads := leadsByOwner[vendedor.ID]
		interactions := interactionsByUser[vendedor.ID]

		// sem nenhuma interação a última atividade é o momento do relatório
		lastActivity := now
		if interactions.LastInteraction != nil {
			lastActivity = *interactions.LastInteraction
		}

		result = append(result, domain.SalespersonPerformance{
			VendedorID:        vendedor.ID,
			VendedorName:      vendedor.Name,
			TotalLeads:        leads.TotalLeads,
			LeadsContatados:   leads.LeadsContatados,
			ContratosFechados: leads.ContratosFechados,
			ValorTotal:        utils.RoundWithTwoDecimalPlace(leads.ValorTotal),
			ValorFechado:      utils.RoundWithTwoDecimalPlace(leads.ValorFechado),
			Interacoes:        interactions.RecentCount,
			UltimaAtividade:   lastActivity,
			TaxaConversao:     utils.Percentage(leads.ContratosFechados, leads.TotalLeads),
		})
	}

	return result
}

func BuildDashboard(
	totals *domain.PortfolioTotals,
	statusCounts []domain.StatusCount,
	priorityCounts []domain.PriorityCount,
	banks []domain.BankCount,
	recentInteractions int,
) *domain.DashboardStats {
	byStatus := make(map[domain.LeadStatus]int, len(statusCounts))
	for _, c := range statusCounts {
		byStatus[c.Status] += c.Count
	}

	perStatus := make([]domain.StatusCount, 0, len(domain.PipelineStatuses))
	for _, status := range domain.PipelineStatuses {
		perStatus = append(perStatus, domain.StatusCount{
			Status: status,
			Label:  status.Label(),
			Count:  byStatus[status],
		})
	}

	byPriority := make(map[domain.Prioridade]int, len(priorityCounts))
	for _, c := range priorityCounts {
		byPriority[c.Prioridade] += c.Count
	}

	perPriority := make([]domain.PriorityCount, 0, len(domain.Prioridades))
	for _, prioridade := range domain.Prioridades {
		perPriority = append(perPriority, domain.PriorityCount{
			Prioridade: prioridade,
			Count:      byPriority[prioridade],
		})
	}

	if banks == nil {
		banks = []domain.BankCount{}
	}

	return &domain.DashboardStats{
		TotalLeads:         totals.TotalLeads,
		TotalValue:         utils.RoundWithTwoDecimalPlace(totals.TotalValue),
		ConversionRate:     utils.Percentage(totals.ContractedLeads, totals.TotalLeads),
		ContractedLeads:    totals.ContractedLeads,
		RecentLeads:        totals.RecentLeads,
		RecentInteractions: recentInteractions,
		LeadsPerStatus:     perStatus,
		LeadsPerPriority:   perPriority,
		LeadsPerBank:       banks,
	}
}
