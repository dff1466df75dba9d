package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/utils"
)

func CreateLead(service pipeline.LeadManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateLeadRequest
		if !decodeBody(w, r, &req) {
			return
		}

		lead, err := service.CreateLead(r.Context(), actorFrom(r), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, lead)
	}
}

// ListAllLeads aceita os filtros status, responsavelId, dataInicio e dataFim (AAAA-MM-DD, inclusivas)
func ListAllLeads(service pipeline.LeadManager, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := domain.LeadFilter{
			ResponsavelID: utils.StringPtr(query.Get("responsavelId")),
		}

		if status := query.Get("status"); status != "" {
			leadStatus := domain.LeadStatus(status)
			filter.Status = &leadStatus
		}

		from, err := utils.ParseDate(query.Get("dataInicio"), loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "dataInicio deve estar no formato AAAA-MM-DD", nil)
			return
		}

		to, err := utils.ParseDate(query.Get("dataFim"), loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "dataFim deve estar no formato AAAA-MM-DD", nil)
			return
		}

		if to != nil {
			end := to.AddDate(0, 0, 1)
			to = &end
		}

		filter.CreatedFrom = from
		filter.CreatedTo = to

		leads, err := service.ListAllLeads(r.Context(), actorFrom(r), filter)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, leads)
	}
}

func ListMyLeads(service pipeline.LeadManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := service.ListMyLeads(r.Context(), actorFrom(r))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, leads)
	}
}

func GetLead(service pipeline.LeadManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := service.GetLead(r.Context(), actorFrom(r), param(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, detail)
	}
}

func UpdateLead(service pipeline.LeadManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateLeadRequest
		if !decodeBody(w, r, &req) {
			return
		}

		lead, err := service.UpdateLead(r.Context(), actorFrom(r), param(r, "id"), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, lead)
	}
}

func DeleteLead(service pipeline.LeadManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteLead(r.Context(), actorFrom(r), param(r, "id")); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListActivities(service pipeline.LeadManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activities, err := service.ListActivities(r.Context(), actorFrom(r), param(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, activities)
	}
}
