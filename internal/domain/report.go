package domain

import "time"

type FunnelStage struct {
	Status     LeadStatus `json:"status"`
	Label      string     `json:"label"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"`
}

type FunnelReport struct {
	TotalLeads int           `json:"totalLeads"`
	Stages     []FunnelStage `json:"stages"`
}

// FinancialMonth é um balde mensal do relatório financeiro, rotulado "Mmm/AA"
type FinancialMonth struct {
	Mes           string    `json:"mes"`
	Inicio        time.Time `json:"inicio"`
	ValorEstimado float64   `json:"valorEstimado"`
	ValorFechado  float64   `json:"valorFechado"`
	ValorPerdido  float64   `json:"valorPerdido"`
}

type SalespersonPerformance struct {
	VendedorID        string    `json:"vendedorId"`
	VendedorName      string    `json:"vendedorName"`
	TotalLeads        int       `json:"totalLeads"`
	LeadsContatados   int       `json:"leadsContatados"`
	ContratosFechados int       `json:"contratosFechados"`
	ValorTotal        float64   `json:"valorTotal"`
	ValorFechado      float64   `json:"valorFechado"`
	Interacoes        int       `json:"interacoes"`
	UltimaAtividade   time.Time `json:"ultimaAtividade"`
	TaxaConversao     float64   `json:"taxaConversao"`
}

type DashboardStats struct {
	TotalLeads         int             `json:"totalLeads"`
	TotalValue         float64         `json:"totalValue"`
	ConversionRate     float64         `json:"conversionRate"`
	ContractedLeads    int             `json:"contractedLeads"`
	RecentLeads        int             `json:"recentLeads"`
	RecentInteractions int             `json:"recentInteractions"`
	LeadsPerStatus     []StatusCount   `json:"leadsPerStatus"`
	LeadsPerPriority   []PriorityCount `json:"leadsPerPriority"`
	LeadsPerBank       []BankCount     `json:"leadsPerBank"`
}

type StatusCount struct {
	Status LeadStatus `json:"status"`
	Label  string     `json:"label"`
	Count  int        `json:"count"`
}

type PriorityCount struct {
	Prioridade Prioridade `json:"prioridade"`
	Count      int        `json:"count"`
}

type BankCount struct {
	Instituicao string `json:"instituicao"`
	Count       int    `json:"count"`
}

// MonthlyAmounts é a soma bruta por mês (chave AAAA-MM) retornada pelo banco
type MonthlyAmounts struct {
	Month    string
	Estimado float64
	Fechado  float64
	Perdido  float64
}

// OwnerLeadStats agrega os leads de um responsável
type OwnerLeadStats struct {
	ResponsavelID     string
	TotalLeads        int
	LeadsContatados   int
	ContratosFechados int
	ValorTotal        float64
	ValorFechado      float64
}

// UserInteractionStats agrega as interações registradas por um usuário
type UserInteractionStats struct {
	UserID          string
	RecentCount     int
	LastInteraction *time.Time
}

type PortfolioTotals struct {
	TotalLeads      int
	TotalValue      float64
	ContractedLeads int
	RecentLeads     int
}
