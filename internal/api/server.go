package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/recovery-crm-api/internal/api/handler"
	"github.com/vfg2006/recovery-crm-api/internal/api/handler/router"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/interacting"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/reporting"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Authenticator     authenticating.Authenticator
	Leads             pipeline.LeadManager
	Interactions      interacting.InteractionLogger
	Reports           reporting.Reporter
	ReportCacheWarmer handler.CronJob
	LoginLimiter      *middleware.RateLimiter
	Database          handler.Pinger
}

func New(cfg *config.Config, services Services) (*Server, error) {
	cronServices := handler.CronJobServices{
		ReportCacheWarmer: services.ReportCacheWarmer,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Authentication(services.Authenticator, services.LoginLimiter)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Leads(services.Leads, cfg.Reports.Location())...),
		router.WithRoutes(handler.Interactions(services.Interactions)...),
		router.WithRoutes(handler.Reports(services.Reports)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	// LoggingMiddleware fica por fora do recover para registrar também o 500 do panic
	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.LogPanicMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.L.Info("Servidor HTTP desligado com sucesso")
	return nil
}
