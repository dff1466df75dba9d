// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// LeadStatus representa a etapa do lead no funil de recuperação
type LeadStatus string

const (
	StatusNaoContatado     LeadStatus = "NAO_CONTATADO"
	StatusPotencial        LeadStatus = "POTENCIAL"
	StatusEmAnalise        LeadStatus = "EM_ANALISE"
	StatusProcessoIniciado LeadStatus = "PROCESSO_INICIADO"
	StatusValorRecuperado  LeadStatus = "VALOR_RECUPERADO"
	StatusContratoAssinado LeadStatus = "CONTRATO_ASSINADO" // terminal, ganho
	StatusPerdido          LeadStatus = "PERDIDO"           // terminal, perdido
)

// PipelineStatuses lista os status na ordem de progressão do funil
var PipelineStatuses = []LeadStatus{
	StatusNaoContatado,
	StatusPotencial,
	StatusEmAnalise,
	StatusProcessoIniciado,
	StatusValorRecuperado,
	StatusContratoAssinado,
	StatusPerdido,
}

var funnelLabels = map[LeadStatus]string{
	StatusNaoContatado:     "Não Contatado",
	StatusPotencial:        "Contato Realizado",
	StatusEmAnalise:        "Qualificação",
	StatusProcessoIniciado: "Proposta Enviada",
	StatusValorRecuperado:  "Negociação",
	StatusContratoAssinado: "Fechado Ganho",
	StatusPerdido:          "Fechado Perdido",
}

func (s LeadStatus) IsValid() bool {
	_, ok := funnelLabels[s]
	return ok
}

// Label retorna o nome da etapa do funil exibido nos relatórios
func (s LeadStatus) Label() string {
	if label, ok := funnelLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsTerminal indica se o status encerra o lead (ganho ou perdido)
func (s LeadStatus) IsTerminal() bool {
	return s == StatusContratoAssinado || s == StatusPerdido
}

type Prioridade string

const (
	PrioridadeAlta  Prioridade = "ALTA"
	PrioridadeMedia Prioridade = "MEDIA"
	PrioridadeBaixa Prioridade = "BAIXA"
)

var Prioridades = []Prioridade{PrioridadeAlta, PrioridadeMedia, PrioridadeBaixa}

func (p Prioridade) IsValid() bool {
	return p == PrioridadeAlta || p == PrioridadeMedia || p == PrioridadeBaixa
}

type Lead struct {
	ID                       string     `json:"id"`
	RazaoSocial              string     `json:"razaoSocial"`
	NomeFantasia             *string    `json:"nomeFantasia"`
	CNPJ                     *string    `json:"cnpj"`
	Setor                    *string    `json:"setor"`
	Porte                    *string    `json:"porte"`
	Endereco                 *string    `json:"endereco"`
	Municipio                *string    `json:"municipio"`
	UF                       *string    `json:"uf"`
	CEP                      *string    `json:"cep"`
	TelefonePrincipal        *string    `json:"telefonePrincipal"`
	TelefoneSecundario       *string    `json:"telefoneSecundario"`
	Email                    *string    `json:"email"`
	ContatoPrincipal         *string    `json:"contatoPrincipal"`
	Cargo                    *string    `json:"cargo"`
	InstituicoesFinanceiras  *string    `json:"instituicoesFinanceiras"`
	ContratosBancarios       *string    `json:"contratosBancarios"`
	Observacoes              *string    `json:"observacoes"`
	Status                   LeadStatus `json:"status"`
	Prioridade               Prioridade `json:"prioridade"`
	ResponsavelID            *string    `json:"responsavelId"`
	ResponsavelName          *string    `json:"responsavelName,omitempty"`
	ValorEstimadoRecuperacao *float64   `json:"valorEstimadoRecuperacao"`
	ContratoAssinado         bool       `json:"contratoAssinado"`
	ValorContrato            *float64   `json:"valorContrato"`
	DataAssinatura           *time.Time `json:"dataAssinatura"`
	ProximaAcao              *string    `json:"proximaAcao"`
	ObservacoesContato       *string    `json:"observacoesContato"`
	DataProximaAcao          *time.Time `json:"dataProximaAcao"`
	DataUltimoContato        *time.Time `json:"dataUltimoContato"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

// LeadSummary é a projeção usada nas listagens
type LeadSummary struct {
	ID                       string     `json:"id"`
	RazaoSocial              string     `json:"razaoSocial"`
	NomeFantasia             *string    `json:"nomeFantasia"`
	Municipio                *string    `json:"municipio"`
	UF                       *string    `json:"uf"`
	TelefonePrincipal        *string    `json:"telefonePrincipal"`
	Status                   LeadStatus `json:"status"`
	Prioridade               Prioridade `json:"prioridade"`
	ResponsavelID            *string    `json:"responsavelId"`
	ResponsavelName          *string    `json:"responsavelName"`
	ValorEstimadoRecuperacao *float64   `json:"valorEstimadoRecuperacao"`
	ContratoAssinado         bool       `json:"contratoAssinado"`
	ProximaAcao              *string    `json:"proximaAcao"`
	DataProximaAcao          *time.Time `json:"dataProximaAcao"`
	DataUltimoContato        *time.Time `json:"dataUltimoContato"`
	InteractionCount         int        `json:"interactionCount"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

// LeadDetail agrega o lead com seu histórico de contatos e lembretes em aberto
type LeadDetail struct {
	Lead
	Interactions []*Interaction `json:"interactions"`
	Reminders    []*Reminder    `json:"reminders"`
}

type LeadOrder int

const (
	// OrderByCreatedDesc lista os leads mais recentes primeiro
	OrderByCreatedDesc LeadOrder = iota
	// OrderByPriority lista por prioridade (ALTA primeiro) e depois pela última atualização
	OrderByPriority
)

type LeadFilter struct {
	ResponsavelID *string
	Status        *LeadStatus
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Order         LeadOrder
}

type CreateLeadRequest struct {
	RazaoSocial              string      `json:"razaoSocial" validate:"required,max=255"`
	NomeFantasia             *string     `json:"nomeFantasia" validate:"omitempty,max=255"`
	CNPJ                     *string     `json:"cnpj" validate:"omitempty,max=20"`
	Setor                    *string     `json:"setor"`
	Porte                    *string     `json:"porte"`
	Endereco                 *string     `json:"endereco"`
	Municipio                *string     `json:"municipio"`
	UF                       *string     `json:"uf" validate:"omitempty,len=2"`
	CEP                      *string     `json:"cep" validate:"omitempty,max=10"`
	TelefonePrincipal        *string     `json:"telefonePrincipal"`
	TelefoneSecundario       *string     `json:"telefoneSecundario"`
	Email                    *string     `json:"email" validate:"omitempty,email"`
	ContatoPrincipal         *string     `json:"contatoPrincipal"`
	Cargo                    *string     `json:"cargo"`
	InstituicoesFinanceiras  *string     `json:"instituicoesFinanceiras"`
	ContratosBancarios       *string     `json:"contratosBancarios"`
	Observacoes              *string     `json:"observacoes"`
	Prioridade               *Prioridade `json:"prioridade" validate:"omitempty,oneof=ALTA MEDIA BAIXA"`
	ValorEstimadoRecuperacao *float64    `json:"valorEstimadoRecuperacao" validate:"omitempty,gte=0"`
	ProximaAcao              *string     `json:"proximaAcao"`
	DataProximaAcao          *time.Time  `json:"dataProximaAcao"`
}

// UpdateLeadRequest contém apenas os campos enviados na requisição.
// Textos enviados vazios limpam o campo correspondente.
type UpdateLeadRequest struct {
	Status                   *LeadStatus `json:"status"`
	Prioridade               *Prioridade `json:"prioridade"`
	ResponsavelID            *string     `json:"responsavelId"`
	ProximaAcao              *string     `json:"proximaAcao"`
	DataProximaAcao          *time.Time  `json:"dataProximaAcao"`
	ObservacoesContato       *string     `json:"observacoesContato"`
	Observacoes              *string     `json:"observacoes"`
	ValorEstimadoRecuperacao *float64    `json:"valorEstimadoRecuperacao"`
	ValorContrato            *float64    `json:"valorContrato"`
	DataAssinatura           *time.Time  `json:"dataAssinatura"`
	ContratoAssinado         *bool       `json:"contratoAssinado"`
}
