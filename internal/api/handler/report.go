package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/recovery-crm-api/internal/usecases/reporting"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
)

func FunnelReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.FunnelReport(r.Context(), actorFrom(r))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

// FinancialReport lê a janela em ?meses=N; ausente usa o padrão configurado
func FinancialReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months := 0

		if raw := r.URL.Query().Get("meses"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < reporting.MinMonths {
				apiErrors.WriteError(w, apiErrors.ErrInvalidReportInterval,
					fmt.Sprintf("meses deve estar entre %d e %d", reporting.MinMonths, reporting.MaxMonths), nil)
				return
			}
			months = parsed
		}

		report, err := service.FinancialReport(r.Context(), actorFrom(r), months)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func SalespersonReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.SalespersonReport(r.Context(), actorFrom(r))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func DashboardStats(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.DashboardStats(r.Context(), actorFrom(r))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	}
}
