package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/utils"
)

// trackedFields são os campos comparados na auditoria; updatedAt e dataUltimoContato ficam de fora
var trackedFields = []struct {
	name  string
	value func(*domain.Lead) domain.AuditValue
}{
	{"status", func(l *domain.Lead) domain.AuditValue { return domain.TextValue(string(l.Status)) }},
	{"prioridade", func(l *domain.Lead) domain.AuditValue { return domain.TextValue(string(l.Prioridade)) }},
	{"responsavelId", func(l *domain.Lead) domain.AuditValue { return domain.StringValue(l.ResponsavelID) }},
	{"proximaAcao", func(l *domain.Lead) domain.AuditValue { return domain.StringValue(l.ProximaAcao) }},
	{"dataProximaAcao", func(l *domain.Lead) domain.AuditValue { return domain.TimeValue(l.DataProximaAcao) }},
	{"observacoesContato", func(l *domain.Lead) domain.AuditValue { return domain.StringValue(l.ObservacoesContato) }},
	{"observacoes", func(l *domain.Lead) domain.AuditValue { return domain.StringValue(l.Observacoes) }},
	{"valorEstimadoRecuperacao", func(l *domain.Lead) domain.AuditValue { return domain.NumberValue(l.ValorEstimadoRecuperacao) }},
	{"contratoAssinado", func(l *domain.Lead) domain.AuditValue { return domain.BoolValue(l.ContratoAssinado) }},
	{"valorContrato", func(l *domain.Lead) domain.AuditValue { return domain.NumberValue(l.ValorContrato) }},
	{"dataAssinatura", func(l *domain.Lead) domain.AuditValue { return domain.TimeValue(l.DataAssinatura) }},
}

// ApplyUpdate aplica a requisição ao lead e retorna os campos que mudaram de valor.
// Em caso de erro o lead não é alterado. A validação do novo responsável (existência e papel)
// é feita por quem chama, pois depende do banco.
func ApplyUpdate(lead *domain.Lead, req domain.UpdateLeadRequest, actor *domain.Actor, now time.Time) (domain.Changes, error) {
	next := *lead

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, domain.NewInvalidInputError(apiErrors.ErrInvalidStatus, fmt.Sprintf("Status inválido: %s", *req.Status))
		}
		next.Status = *req.Status
	}

	if req.Prioridade != nil {
		if !req.Prioridade.IsValid() {
			return nil, domain.NewInvalidInputError(apiErrors.ErrInvalidFormat, fmt.Sprintf("Prioridade inválida: %s", *req.Prioridade))
		}
		next.Prioridade = *req.Prioridade
	}

	if req.ResponsavelID != nil {
		assignee := cleanText(req.ResponsavelID)
		if !sameString(assignee, lead.ResponsavelID) {
			if !actor.IsDiretoria() {
				return nil, domain.NewForbiddenError("Apenas a diretoria pode atribuir leads")
			}
			next.ResponsavelID = assignee
		}
	}

	if req.ValorEstimadoRecuperacao != nil {
		value, err := money("valorEstimadoRecuperacao", *req.ValorEstimadoRecuperacao)
		if err != nil {
			return nil, err
		}
		next.ValorEstimadoRecuperacao = &value
	}

	if req.ProximaAcao != nil {
		next.ProximaAcao = cleanText(req.ProximaAcao)
	}

	if req.ObservacoesContato != nil {
		next.ObservacoesContato = cleanText(req.ObservacoesContato)
	}

	if req.Observacoes != nil {
		next.Observacoes = cleanText(req.Observacoes)
	}

	if req.DataProximaAcao != nil {
		value := *req.DataProximaAcao
		next.DataProximaAcao = &value
	}

	if err := applyContract(&next, req, now); err != nil {
		return nil, err
	}

	if next.Status != domain.StatusNaoContatado && next.ResponsavelID == nil {
		return nil, domain.NewInvalidInputError(apiErrors.ErrLeadWithoutOwner, "Lead fora de Não Contatado precisa de um responsável")
	}

	changes := Diff(lead, &next)

	next.UpdatedAt = now
	next.DataUltimoContato = &now

	*lead = next

	return changes, nil
}

// applyContract mantém contratoAssinado, valorContrato e dataAssinatura coerentes com o status resultante
func applyContract(lead *domain.Lead, req domain.UpdateLeadRequest, now time.Time) error {
	signed := lead.Status == domain.StatusContratoAssinado

	if req.ContratoAssinado != nil && *req.ContratoAssinado != signed {
		return domain.NewInvalidInputError(apiErrors.ErrInconsistentContract,
			"contratoAssinado deve acompanhar o status Contrato Assinado")
	}

	if !signed {
		if req.ValorContrato != nil || req.DataAssinatura != nil {
			return domain.NewInvalidInputError(apiErrors.ErrInconsistentContract,
				"Valor e data de assinatura só podem ser informados com o status Contrato Assinado")
		}

		lead.ContratoAssinado = false
		lead.ValorContrato = nil
		lead.DataAssinatura = nil
		return nil
	}

	lead.ContratoAssinado = true

	if req.ValorContrato != nil {
		value, err := money("valorContrato", *req.ValorContrato)
		if err != nil {
			return err
		}
		lead.ValorContrato = &value
	}

	if req.DataAssinatura != nil {
		value := *req.DataAssinatura
		lead.DataAssinatura = &value
	} else if lead.DataAssinatura == nil {
		signedAt := now
		lead.DataAssinatura = &signedAt
	}

	return nil
}

// Diff compara os campos auditados dos dois estados do lead
func Diff(before, after *domain.Lead) domain.Changes {
	changes := domain.Changes{}
	for _, field := range trackedFields {
		oldValue := field.value(before)
		newValue := field.value(after)
		if !oldValue.Equal(newValue) {
			changes[field.name] = domain.FieldChange{Old: oldValue, New: newValue}
		}
	}
	return changes
}

func money(field string, value float64) (float64, error) {
	if value < 0 {
		return 0, domain.NewInvalidInputError(apiErrors.ErrInvalidFormat, fmt.Sprintf("%s não pode ser negativo", field))
	}
	return utils.RoundWithTwoDecimalPlace(value), nil
}

// cleanText remove espaços das pontas; texto vazio vira nil
func cleanText(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
