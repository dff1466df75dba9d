package domain

import "time"

type ActivityType string

const (
	ActivityLeadCreated      ActivityType = "LEAD_CREATED"
	ActivityLeadUpdated      ActivityType = "LEAD_UPDATED"
	ActivityLeadDeleted      ActivityType = "LEAD_DELETED"
	ActivityInteractionAdded ActivityType = "INTERACTION_ADDED"
	ActivityReminderCreated  ActivityType = "REMINDER_CREATED"
	ActivityUserCreated      ActivityType = "USER_CREATED"
	ActivityUserUpdated      ActivityType = "USER_UPDATED"
	ActivityUserDeleted      ActivityType = "USER_DELETED"
	ActivityPasswordReset    ActivityType = "PASSWORD_RESET"
	ActivityPasswordChanged  ActivityType = "PASSWORD_CHANGED"
)

// Activity é uma entrada imutável da trilha de auditoria
type Activity struct {
	ID        string           `json:"id"`
	LeadID    *string          `json:"leadId"`
	UserID    string           `json:"userId"`
	UserName  *string          `json:"userName,omitempty"`
	Tipo      ActivityType     `json:"tipo"`
	Descricao string           `json:"descricao"`
	Metadata  ActivityMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"createdAt"`
}

type ActivityMetadata struct {
	Changes       Changes `json:"changes,omitempty"`
	InteractionID *string `json:"interactionId,omitempty"`
	ReminderID    *string `json:"reminderId,omitempty"`
	TargetUserID  *string `json:"targetUserId,omitempty"`
	// LeadID preserva a referência de leads excluídos
	LeadID *string `json:"leadId,omitempty"`
}

// Changes mapeia o nome do campo para o par valor anterior/novo
type Changes map[string]FieldChange

type FieldChange struct {
	Old AuditValue `json:"old"`
	New AuditValue `json:"new"`
}

type AuditValueKind string

const (
	AuditNull   AuditValueKind = "null"
	AuditString AuditValueKind = "string"
	AuditNumber AuditValueKind = "number"
	AuditBool   AuditValueKind = "bool"
	AuditTime   AuditValueKind = "time"
)

// AuditValue é um valor tipado da trilha de auditoria; apenas o campo do Kind é preenchido
type AuditValue struct {
	Kind   AuditValueKind `json:"kind"`
	String *string        `json:"string,omitempty"`
	Number *float64       `json:"number,omitempty"`
	Bool   *bool          `json:"bool,omitempty"`
	Time   *time.Time     `json:"time,omitempty"`
}

func NullValue() AuditValue {
	return AuditValue{Kind: AuditNull}
}

func StringValue(s *string) AuditValue {
	if s == nil {
		return NullValue()
	}
	v := *s
	return AuditValue{Kind: AuditString, String: &v}
}

func TextValue(s string) AuditValue {
	return StringValue(&s)
}

func NumberValue(n *float64) AuditValue {
	if n == nil {
		return NullValue()
	}
	v := *n
	return AuditValue{Kind: AuditNumber, Number: &v}
}

func BoolValue(b bool) AuditValue {
	return AuditValue{Kind: AuditBool, Bool: &b}
}

func TimeValue(t *time.Time) AuditValue {
	if t == nil {
		return NullValue()
	}
	v := t.UTC()
	return AuditValue{Kind: AuditTime, Time: &v}
}

// Equal compara dois valores considerando o tipo
func (v AuditValue) Equal(other AuditValue) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case AuditString:
		return *v.String == *other.String
	case AuditNumber:
		return *v.Number == *other.Number
	case AuditBool:
		return *v.Bool == *other.Bool
	case AuditTime:
		return v.Time.Equal(*other.Time)
	default:
		return true
	}
}
