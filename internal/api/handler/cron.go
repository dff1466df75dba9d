package handler

import (
	"net/http"

	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeReportCache = "report-cache"
)

// CronJob é implementado pelos serviços do pacote scheduler
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ReportCacheWarmer CronJob
}

func (s CronJobServices) jobs() map[string]CronJob {
	jobs := make(map[string]CronJob)
	if s.ReportCacheWarmer != nil {
		jobs[CronJobTypeReportCache] = s.ReportCacheWarmer
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := param(r, "type")

		job, exists := services.jobs()[cronType]
		if !exists {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeReportCache, nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Execução manual de cron job solicitada")

		started := job.TriggerManualSync()

		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Cron job já está em execução"
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
