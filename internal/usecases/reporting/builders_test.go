package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

func TestBuildFunnel(t *testing.T) {
	t.Run("sem leads todas as etapas ficam zeradas", func(t *testing.T) {
		report := BuildFunnel(nil)

		assert.Equal(t, 0, report.TotalLeads)
		require.Len(t, report.Stages, 7)
		for _, stage := range report.Stages {
			assert.Equal(t, 0, stage.Count)
			assert.Equal(t, float64(0), stage.Percentage)
		}
	})

	t.Run("percentuais somam aproximadamente 100", func(t *testing.T) {
		report := BuildFunnel([]domain.StatusCount{
			{Status: domain.StatusNaoContatado, Count: 1},
			{Status: domain.StatusPotencial, Count: 1},
			{Status: domain.StatusContratoAssinado, Count: 1},
		})

		total := 0.0
		for _, stage := range report.Stages {
			total += stage.Percentage
		}

		assert.Equal(t, 3, report.TotalLeads)
		assert.InDelta(t, 100, total, 0.05)
	})

	t.Run("rótulos e ordem do funil", func(t *testing.T) {
		report := BuildFunnel([]domain.StatusCount{{Status: domain.StatusPerdido, Count: 2}})

		labels := make([]string, 0, len(report.Stages))
		for _, stage := range report.Stages {
			labels = append(labels, stage.Label)
		}

		assert.Equal(t, []string{
			"Não Contatado", "Contato Realizado", "Qualificação", "Proposta Enviada",
			"Negociação", "Fechado Ganho", "Fechado Perdido",
		}, labels)
		assert.Equal(t, float64(100), report.Stages[6].Percentage)
	})
}

func TestMonthWindow(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	// 01:00 UTC de 1º de janeiro ainda é 31 de dezembro em São Paulo
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	starts, end := MonthWindow(now, 3, saoPaulo)

	require.Len(t, starts, 3)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, saoPaulo), starts[0])
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, saoPaulo), starts[2])
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, saoPaulo), end)
}

func TestBuildFinancial(t *testing.T) {
	starts, _ := MonthWindow(time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC), 3, time.UTC)

	t.Run("meses vazios ficam zerados e em ordem", func(t *testing.T) {
		months := BuildFinancial(starts, nil)

		require.Len(t, months, 3)
		assert.Equal(t, "Dez/25", months[0].Mes)
		assert.Equal(t, "Jan/26", months[1].Mes)
		assert.Equal(t, "Fev/26", months[2].Mes)
		for _, m := range months {
			assert.Zero(t, m.ValorEstimado)
			assert.Zero(t, m.ValorFechado)
			assert.Zero(t, m.ValorPerdido)
		}
	})

	t.Run("somas do banco caem no mês correto", func(t *testing.T) {
		months := BuildFinancial(starts, []domain.MonthlyAmounts{
			{Month: "2026-01", Estimado: 250000.004, Fechado: 100000, Perdido: 50000},
		})

		assert.Zero(t, months[0].ValorEstimado)
		assert.Equal(t, 250000.0, months[1].ValorEstimado)
		assert.Equal(t, 100000.0, months[1].ValorFechado)
		assert.Equal(t, 50000.0, months[1].ValorPerdido)
	})
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Mai/26", MonthLabel(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dez/09", MonthLabel(time.Date(2009, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBuildSalesperson(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	lastCall := now.Add(-36 * time.Hour)

	vendedores := []*domain.User{
		{ID: "vend-a", Name: "Ana"},
		{ID: "vend-b", Name: "Bruno"},
	}

	result := BuildSalesperson(vendedores,
		[]domain.OwnerLeadStats{
			{ResponsavelID: "vend-a", TotalLeads: 4, LeadsContatados: 3, ContratosFechados: 1, ValorTotal: 400000, ValorFechado: 100000},
		},
		[]domain.UserInteractionStats{
			{UserID: "vend-a", RecentCount: 5, LastInteraction: &lastCall},
			{UserID: "dir-1", RecentCount: 2, LastInteraction: &lastCall},
		},
		now,
	)

	require.Len(t, result, 2)

	ana := result[0]
	assert.Equal(t, "vend-a", ana.VendedorID)
	assert.Equal(t, 4, ana.TotalLeads)
	assert.Equal(t, 3, ana.LeadsContatados)
	assert.Equal(t, 1, ana.ContratosFechados)
	assert.Equal(t, 5, ana.Interacoes)
	assert.Equal(t, float64(25), ana.TaxaConversao)
	assert.True(t, ana.UltimaAtividade.Equal(lastCall))

	bruno := result[1]
	assert.Equal(t, 0, bruno.TotalLeads)
	assert.Equal(t, float64(0), bruno.TaxaConversao)
	assert.True(t, bruno.UltimaAtividade.Equal(now))
}

func TestBuildDashboard(t *testing.T) {
	t.Run("portfólio vazio", func(t *testing.T) {
		stats := BuildDashboard(&domain.PortfolioTotals{}, nil, nil, nil, 0)

		assert.Equal(t, float64(0), stats.ConversionRate)
		assert.Len(t, stats.LeadsPerStatus, 7)
		assert.Len(t, stats.LeadsPerPriority, 3)
		assert.NotNil(t, stats.LeadsPerBank)
	})

	t.Run("taxa de conversão e contagens", func(t *testing.T) {
		stats := BuildDashboard(
			&domain.PortfolioTotals{TotalLeads: 8, TotalValue: 800000, ContractedLeads: 2, RecentLeads: 3},
			[]domain.StatusCount{{Status: domain.StatusContratoAssinado, Count: 2}, {Status: domain.StatusPotencial, Count: 6}},
			[]domain.PriorityCount{{Prioridade: domain.PrioridadeAlta, Count: 5}, {Prioridade: domain.PrioridadeBaixa, Count: 3}},
			[]domain.BankCount{{Instituicao: "Banco do Brasil", Count: 4}},
			7,
		)

		assert.Equal(t, float64(25), stats.ConversionRate)
		assert.Equal(t, 7, stats.RecentInteractions)
		assert.Equal(t, 6, stats.LeadsPerStatus[1].Count)
		assert.Equal(t, domain.PrioridadeMedia, stats.LeadsPerPriority[1].Prioridade)
		assert.Equal(t, 0, stats.LeadsPerPriority[1].Count)
	})
}
