package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

var (
	diretoria = &domain.Actor{ID: "dir-1", Name: "Diretora", Role: domain.RoleDiretoria}
	vendedor  = &domain.Actor{ID: "vend-1", Name: "Vendedor", Role: domain.RoleVendedor}
)

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

func statusPtr(s domain.LeadStatus) *domain.LeadStatus {
	return &s
}

func newLead(status domain.LeadStatus, owner *string) *domain.Lead {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lead := &domain.Lead{
		ID:                       "lead-1",
		RazaoSocial:              "Metalúrgica Horizonte Ltda",
		Status:                   status,
		Prioridade:               domain.PrioridadeMedia,
		ResponsavelID:            owner,
		ValorEstimadoRecuperacao: floatPtr(100000),
		CreatedAt:                created,
		UpdatedAt:                created,
	}
	if status == domain.StatusContratoAssinado {
		signedAt := created
		lead.ContratoAssinado = true
		lead.DataAssinatura = &signedAt
	}
	return lead
}

func TestApplyUpdate(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lead        *domain.Lead
		req         domain.UpdateLeadRequest
		actor       *domain.Actor
		wantErr     error
		wantChanges []string
		check       func(t *testing.T, lead *domain.Lead)
	}{
		{
			name:        "avança no funil",
			lead:        newLead(domain.StatusNaoContatado, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{Status: statusPtr(domain.StatusPotencial)},
			actor:       vendedor,
			wantChanges: []string{"status"},
		},
		{
			name:        "retrocesso é permitido e auditado",
			lead:        newLead(domain.StatusProcessoIniciado, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{Status: statusPtr(domain.StatusPotencial)},
			actor:       vendedor,
			wantChanges: []string{"status"},
		},
		{
			name:        "sai de PERDIDO",
			lead:        newLead(domain.StatusPerdido, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{Status: statusPtr(domain.StatusEmAnalise)},
			actor:       vendedor,
			wantChanges: []string{"status"},
		},
		{
			name:        "assinar contrato marca a flag e a data",
			lead:        newLead(domain.StatusValorRecuperado, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{Status: statusPtr(domain.StatusContratoAssinado), ValorContrato: floatPtr(35000.456)},
			actor:       vendedor,
			wantChanges: []string{"status", "contratoAssinado", "valorContrato", "dataAssinatura"},
			check: func(t *testing.T, lead *domain.Lead) {
				assert.True(t, lead.ContratoAssinado)
				require.NotNil(t, lead.DataAssinatura)
				assert.True(t, lead.DataAssinatura.Equal(now))
				require.NotNil(t, lead.ValorContrato)
				assert.Equal(t, 35000.46, *lead.ValorContrato)
			},
		},
		{
			name:        "sair de contrato assinado limpa os dados do contrato",
			lead:        newLead(domain.StatusContratoAssinado, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{Status: statusPtr(domain.StatusPerdido)},
			actor:       vendedor,
			wantChanges: []string{"status", "contratoAssinado", "dataAssinatura"},
			check: func(t *testing.T, lead *domain.Lead) {
				assert.False(t, lead.ContratoAssinado)
				assert.Nil(t, lead.DataAssinatura)
				assert.Nil(t, lead.ValorContrato)
			},
		},
		{
			name:    "status desconhecido",
			lead:    newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{Status: statusPtr("GANHO")},
			actor:   vendedor,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "contratoAssinado sem o status correspondente",
			lead:    newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{ContratoAssinado: boolPtr(true)},
			actor:   vendedor,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "contratoAssinado falso junto com o status de contrato",
			lead:    newLead(domain.StatusValorRecuperado, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{Status: statusPtr(domain.StatusContratoAssinado), ContratoAssinado: boolPtr(false)},
			actor:   vendedor,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "valor de contrato fora do status de contrato",
			lead:    newLead(domain.StatusEmAnalise, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{ValorContrato: floatPtr(1000)},
			actor:   vendedor,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "lead sem responsável não sai de NAO_CONTATADO",
			lead:    newLead(domain.StatusNaoContatado, nil),
			req:     domain.UpdateLeadRequest{Status: statusPtr(domain.StatusPotencial)},
			actor:   diretoria,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "remover o responsável de lead em andamento",
			lead:    newLead(domain.StatusEmAnalise, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{ResponsavelID: stringPtr("")},
			actor:   diretoria,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "vendedor não reatribui",
			lead:    newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{ResponsavelID: stringPtr("vend-2")},
			actor:   vendedor,
			wantErr: domain.ErrForbidden,
		},
		{
			name:        "vendedor reenviando o próprio id não é reatribuição",
			lead:        newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{ResponsavelID: stringPtr("vend-1")},
			actor:       vendedor,
			wantChanges: []string{},
		},
		{
			name:        "diretoria reatribui",
			lead:        newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{ResponsavelID: stringPtr("vend-2")},
			actor:       diretoria,
			wantChanges: []string{"responsavelId"},
		},
		{
			name:    "valor estimado negativo",
			lead:    newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:     domain.UpdateLeadRequest{ValorEstimadoRecuperacao: floatPtr(-1)},
			actor:   vendedor,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "campos de texto e valores",
			lead: newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req: domain.UpdateLeadRequest{
				ProximaAcao:              stringPtr("  Enviar proposta  "),
				ObservacoesContato:       stringPtr("Cliente pediu retorno"),
				ValorEstimadoRecuperacao: floatPtr(100000),
			},
			actor:       vendedor,
			wantChanges: []string{"proximaAcao", "observacoesContato"},
			check: func(t *testing.T, lead *domain.Lead) {
				require.NotNil(t, lead.ProximaAcao)
				assert.Equal(t, "Enviar proposta", *lead.ProximaAcao)
			},
		},
		{
			name:        "requisição sem mudanças efetivas",
			lead:        newLead(domain.StatusPotencial, stringPtr("vend-1")),
			req:         domain.UpdateLeadRequest{Status: statusPtr(domain.StatusPotencial)},
			actor:       vendedor,
			wantChanges: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.lead

			changes, err := ApplyUpdate(tt.lead, tt.req, tt.actor, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, *tt.lead, "lead não deve ser alterado em caso de erro")
				return
			}

			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantChanges, keys(changes))
			assert.True(t, tt.lead.UpdatedAt.Equal(now))
			require.NotNil(t, tt.lead.DataUltimoContato)
			assert.True(t, tt.lead.DataUltimoContato.Equal(now))

			for field, change := range changes {
				assert.False(t, change.Old.Equal(change.New), "campo %s sem mudança registrado", field)
			}

			if tt.check != nil {
				tt.check(t, tt.lead)
			}
		})
	}
}

// Para qualquer par de status, o resultado mantém contratoAssinado igual a status = CONTRATO_ASSINADO
func TestApplyUpdateKeepsContractFlagInSync(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	for _, from := range domain.PipelineStatuses {
		for _, to := range domain.PipelineStatuses {
			lead := newLead(from, stringPtr("vend-1"))

			_, err := ApplyUpdate(lead, domain.UpdateLeadRequest{Status: statusPtr(to)}, diretoria, now)
			require.NoError(t, err, "%s -> %s", from, to)

			assert.Equal(t, to, lead.Status)
			assert.Equal(t, to == domain.StatusContratoAssinado, lead.ContratoAssinado, "%s -> %s", from, to)
			if !lead.ContratoAssinado {
				assert.Nil(t, lead.DataAssinatura)
				assert.Nil(t, lead.ValorContrato)
			}
		}
	}
}

func TestApplyUpdateKeepsSigningDate(t *testing.T) {
	lead := newLead(domain.StatusContratoAssinado, stringPtr("vend-1"))
	signedAt := *lead.DataAssinatura

	changes, err := ApplyUpdate(lead, domain.UpdateLeadRequest{ValorContrato: floatPtr(5000)}, vendedor, signedAt.Add(48*time.Hour))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"valorContrato"}, keys(changes))
	assert.True(t, lead.DataAssinatura.Equal(signedAt))
}

func keys(changes domain.Changes) []string {
	result := make([]string, 0, len(changes))
	for k := range changes {
		result = append(result, k)
	}
	return result
}
