// Package scheduler contém os serviços de agendamento executados em segundo plano
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
)

const reportRefreshTimeout = 2 * time.Minute

// ReportRefresher recalcula os relatórios e regrava o cache
type ReportRefresher interface {
	Refresh(ctx context.Context) error
}

type ReportCacheWarmerConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

type ReportCacheWarmerService struct {
	scheduler           *gocron.Scheduler
	reporter            ReportRefresher
	config              ReportCacheWarmerConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewReportCacheWarmerService(reporter ReportRefresher, cfg *config.Config) *ReportCacheWarmerService {
	warmerConfig := ReportCacheWarmerConfig{
		CronSchedule: cfg.ReportCacheWarmer.CronSchedule, // Default: a cada 10 minutos
		SyncEnabled:  cfg.ReportCacheWarmer.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(cfg.Reports.Location())

	log.L.WithFields(log.Fields{
		"cron_schedule": warmerConfig.CronSchedule,
	}).Info("Configuração do aquecimento do cache de relatórios carregada")

	return &ReportCacheWarmerService{
		scheduler: scheduler,
		reporter:  reporter,
		config:    warmerConfig,
	}
}

func (s *ReportCacheWarmerService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Cron de aquecimento do cache de relatórios desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de aquecimento do cache de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshReports(ctx); err != nil {
			log.L.WithError(err).Error("Erro no aquecimento do cache de relatórios")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento do cache de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando cron de aquecimento do cache de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshReports executa uma rodada de aquecimento; rodadas concorrentes são ignoradas
func (s *ReportCacheWarmerService) RefreshReports(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Warn("Aquecimento do cache de relatórios já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, reportRefreshTimeout)
	defer cancel()

	log.ForContext(ctx).Info("Iniciando aquecimento do cache de relatórios")

	err := s.reporter.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	log.ForContext(ctx).Info("Aquecimento do cache de relatórios concluído")
	return nil
}

// TriggerManualSync inicia manualmente uma rodada de aquecimento
func (s *ReportCacheWarmerService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("Aquecimento do cache de relatórios já em andamento, ignorando solicitação manual")
		return false
	}

	log.L.Info("Iniciando aquecimento manual do cache de relatórios")
	go func() {
		if err := s.RefreshReports(context.Background()); err != nil {
			log.L.WithError(err).Error("Erro no aquecimento manual do cache de relatórios")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *ReportCacheWarmerService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
