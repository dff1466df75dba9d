package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline/mocks"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestCreateLeadHandler(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		body       string
		setup      func(m *mocks.MockLeadManager)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "diretoria cadastra lead",
			claims: diretoriaClaims,
			body:   `{"razaoSocial":"Metalúrgica Horizonte Ltda"}`,
			setup: func(m *mocks.MockLeadManager) {
				m.EXPECT().
					CreateLead(gomock.Any(), diretoriaClaims.Actor(), domain.CreateLeadRequest{RazaoSocial: "Metalúrgica Horizonte Ltda"}).
					Return(&domain.Lead{ID: "lead-1", RazaoSocial: "Metalúrgica Horizonte Ltda", Status: domain.StatusNaoContatado}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "vendedor não cadastra lead",
			claims:     vendedorClaims,
			body:       `{"razaoSocial":"Metalúrgica Horizonte Ltda"}`,
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:       "sem autenticação",
			body:       `{"razaoSocial":"Metalúrgica Horizonte Ltda"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "corpo inválido",
			claims:     diretoriaClaims,
			body:       `{"razaoSocial":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "validação do caso de uso",
			claims: diretoriaClaims,
			body:   `{"razaoSocial":""}`,
			setup: func(m *mocks.MockLeadManager) {
				m.EXPECT().
					CreateLead(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, "razaoSocial é obrigatório"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockLeadManager(ctrl)
			if tt.setup != nil {
				tt.setup(service)
			}

			rec := serve(Leads(service, time.UTC), tt.claims, http.MethodPost, "/v1/leads", tt.body)

			if tt.wantCode != "" {
				requireErrorCode(t, rec, tt.wantStatus, tt.wantCode)
				return
			}

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, "lead-1", body["id"])
			assert.Equal(t, string(domain.StatusNaoContatado), body["status"])
		})
	}
}

func TestListAllLeadsHandlerFilters(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	t.Run("filtros repassados com dataFim inclusiva", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockLeadManager(ctrl)

		var got domain.LeadFilter
		service.EXPECT().
			ListAllLeads(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *domain.Actor, filter domain.LeadFilter) ([]*domain.LeadSummary, error) {
				got = filter
				return []*domain.LeadSummary{}, nil
			})

		rec := serve(Leads(service, loc), diretoriaClaims, http.MethodGet,
			"/v1/leads?status=POTENCIAL&responsavelId=vend-1&dataInicio=2026-03-01&dataFim=2026-03-31", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.Status)
		assert.Equal(t, domain.StatusPotencial, *got.Status)
		require.NotNil(t, got.ResponsavelID)
		assert.Equal(t, "vend-1", *got.ResponsavelID)
		require.NotNil(t, got.CreatedFrom)
		assert.True(t, got.CreatedFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)))
		require.NotNil(t, got.CreatedTo)
		assert.True(t, got.CreatedTo.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, loc)))
	})

	t.Run("sem filtros", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockLeadManager(ctrl)
		service.EXPECT().
			ListAllLeads(gomock.Any(), gomock.Any(), domain.LeadFilter{}).
			Return([]*domain.LeadSummary{{ID: "lead-1"}, {ID: "lead-2"}}, nil)

		rec := serve(Leads(service, loc), diretoriaClaims, http.MethodGet, "/v1/leads", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var leads []domain.LeadSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
		assert.Len(t, leads, 2)
	})

	t.Run("data em formato inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockLeadManager(ctrl)

		rec := serve(Leads(service, loc), diretoriaClaims, http.MethodGet, "/v1/leads?dataFim=31/03/2026", "")

		requireErrorCode(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidFormat)
	})
}

func TestLeadHandlersUsePathID(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockLeadManager(ctrl)
	routes := Leads(service, time.UTC)

	status := domain.StatusEmAnalise
	service.EXPECT().
		UpdateLead(gomock.Any(), vendedorClaims.Actor(), "lead-7", domain.UpdateLeadRequest{Status: &status}).
		Return(&domain.Lead{ID: "lead-7", Status: status}, nil)
	service.EXPECT().
		ListActivities(gomock.Any(), vendedorClaims.Actor(), "lead-7").
		Return([]*domain.Activity{}, nil)
	service.EXPECT().
		ListMyLeads(gomock.Any(), vendedorClaims.Actor()).
		Return([]*domain.LeadSummary{}, nil)
	service.EXPECT().
		DeleteLead(gomock.Any(), diretoriaClaims.Actor(), "lead-7").
		Return(nil)

	rec := serve(routes, vendedorClaims, http.MethodPut, "/v1/leads/lead-7", `{"status":"EM_ANALISE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EM_ANALISE", decodeResponse(t, rec)["status"])

	rec = serve(routes, vendedorClaims, http.MethodGet, "/v1/leads/lead-7/activities", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(routes, vendedorClaims, http.MethodGet, "/v1/me/leads", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(routes, vendedorClaims, http.MethodDelete, "/v1/leads/lead-7", "")
	requireErrorCode(t, rec, http.StatusForbidden, apiErrors.ErrInsufficientPrivilege)

	rec = serve(routes, diretoriaClaims, http.MethodDelete, "/v1/leads/lead-7", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetLeadHandlerErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "lead inexistente",
			err:         domain.NewNotFoundError(apiErrors.ErrLeadNotFound, "Lead não encontrado"),
			wantStatus:  http.StatusNotFound,
			wantCode:    apiErrors.ErrLeadNotFound,
			wantMessage: "Lead não encontrado",
		},
		{
			name:        "lead de outro vendedor",
			err:         domain.NewForbiddenError("Lead atribuído a outro vendedor"),
			wantStatus:  http.StatusForbidden,
			wantCode:    apiErrors.ErrInsufficientPrivilege,
			wantMessage: "Lead atribuído a outro vendedor",
		},
		{
			name:        "falha de banco não expõe detalhes",
			err:         domain.NewInternalError(errors.New("connection refused"), "Erro ao buscar lead"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apiErrors.ErrDatabaseOperation,
			wantMessage: "Erro interno no servidor",
		},
		{
			name:        "erro não mapeado",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apiErrors.ErrInternalServer,
			wantMessage: "Erro interno no servidor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockLeadManager(ctrl)
			service.EXPECT().
				GetLead(gomock.Any(), vendedorClaims.Actor(), "lead-1").
				Return(nil, tt.err)

			rec := serve(Leads(service, time.UTC), vendedorClaims, http.MethodGet, "/v1/leads/lead-1", "")

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}
