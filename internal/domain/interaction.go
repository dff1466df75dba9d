package domain

import "time"

type InteractionType string

const (
	InteractionLigacao    InteractionType = "LIGACAO"
	InteractionEmail      InteractionType = "EMAIL"
	InteractionWhatsapp   InteractionType = "WHATSAPP"
	InteractionReuniao    InteractionType = "REUNIAO"
	InteractionProposta   InteractionType = "PROPOSTA"
	InteractionContrato   InteractionType = "CONTRATO"
	InteractionObservacao InteractionType = "OBSERVACAO"
)

// Interaction é um contato registrado entre vendedor e lead. Nunca é alterada após criada.
type Interaction struct {
	ID          string          `json:"id"`
	LeadID      string          `json:"leadId"`
	UserID      string          `json:"userId"`
	UserName    *string         `json:"userName,omitempty"`
	Tipo        InteractionType `json:"tipo"`
	Descricao   string          `json:"descricao"`
	Resultado   *string         `json:"resultado"`
	ProximoStep *string         `json:"proximoStep"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreateInteractionRequest struct {
	Tipo        InteractionType `json:"tipo" validate:"required,oneof=LIGACAO EMAIL WHATSAPP REUNIAO PROPOSTA CONTRATO OBSERVACAO"`
	Descricao   string          `json:"descricao" validate:"required"`
	Resultado   *string         `json:"resultado"`
	ProximoStep *string         `json:"proximoStep"`
}

// Reminder é um lembrete de próxima ação vinculado a um lead
type Reminder struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"leadId"`
	UserID    string    `json:"userId"`
	Titulo    string    `json:"titulo"`
	Descricao *string   `json:"descricao"`
	DataHora  time.Time `json:"dataHora"`
	Concluido bool      `json:"concluido"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReminderRequest struct {
	Titulo    string     `json:"titulo" validate:"required,max=255"`
	Descricao *string    `json:"descricao"`
	DataHora  *time.Time `json:"dataHora" validate:"required"`
}
