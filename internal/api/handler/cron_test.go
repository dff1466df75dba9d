package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
)

type fakeCronJob struct {
	running  bool
	triggers int
}

func (f *fakeCronJob) TriggerManualSync() bool {
	f.triggers++
	return !f.running
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.running}
}

func TestRunCronJobHandler(t *testing.T) {
	job := &fakeCronJob{}
	routes := CronJobs(CronJobServices{ReportCacheWarmer: job})

	rec := serve(routes, diretoriaClaims, http.MethodPost, "/v1/cron/report-cache/run", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, true, decodeResponse(t, rec)["started"])

	job.running = true
	rec = serve(routes, diretoriaClaims, http.MethodPost, "/v1/cron/report-cache/run", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, false, decodeResponse(t, rec)["started"])
	assert.Equal(t, 2, job.triggers)

	rec = serve(routes, diretoriaClaims, http.MethodPost, "/v1/cron/meta-sync/run", "")
	requireErrorCode(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)

	rec = serve(routes, vendedorClaims, http.MethodPost, "/v1/cron/report-cache/run", "")
	requireErrorCode(t, rec, http.StatusForbidden, apiErrors.ErrInsufficientPrivilege)
	assert.Equal(t, 2, job.triggers)
}

func TestGetCronStatusHandler(t *testing.T) {
	routes := CronJobs(CronJobServices{ReportCacheWarmer: &fakeCronJob{running: true}})

	rec := serve(routes, diretoriaClaims, http.MethodGet, "/v1/cron/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	status, ok := decodeResponse(t, rec)[CronJobTypeReportCache].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, status["sync_running"])
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name         string
		db           Pinger
		wantStatus   int
		wantStatusID string
	}{
		{name: "banco disponível", db: fakePinger{}, wantStatus: http.StatusOK, wantStatusID: "ok"},
		{name: "banco indisponível", db: fakePinger{err: errors.New("connection refused")}, wantStatus: http.StatusServiceUnavailable, wantStatusID: "degraded"},
		{name: "sem banco configurado", db: nil, wantStatus: http.StatusOK, wantStatusID: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(Healthcheck(tt.db), nil, http.MethodGet, "/healthcheck", "")

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatusID, decodeResponse(t, rec)["status"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(Healthcheck(nil), nil, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
