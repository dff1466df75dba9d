package main

import (
	"context"

	"github.com/vfg2006/recovery-crm-api/infrastructure/cache"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/internal/api"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/internal/scheduler"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/interacting"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/reporting"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/middleware"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := pgConn.Migrate(ctx); err != nil {
			log.L.WithError(err).Fatal("Erro ao aplicar o schema do banco")
		}
		log.L.Info("Schema do banco aplicado com sucesso")
	}

	// Interface nil desabilita o cache; um *cache.Client nil não serviria
	var reportCache reporting.Cache
	if cfg.Redis.URL != "" {
		redisClient, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.L.WithError(err).Warn("Redis indisponível, relatórios serão calculados sem cache")
		} else {
			defer redisClient.Close()
			reportCache = redisClient
			log.L.Info("Cache de relatórios habilitado")
		}
	}

	leadRepo := repository.NewLeadRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	activityRepo := repository.NewActivityRepository(pgConn)
	interactionRepo := repository.NewInteractionRepository(pgConn)
	reminderRepo := repository.NewReminderRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, leadRepo, cfg.Auth)
	reportInvalidator := reporting.NewCacheInvalidator(reportCache)
	leadManager := pipeline.NewService(leadRepo, userRepo, interactionRepo, reminderRepo, activityRepo, reportInvalidator)
	interactionLogger := interacting.NewService(leadRepo, interactionRepo, reminderRepo, reportInvalidator)
	reporter := reporting.NewService(reportRepo, userRepo, reportCache, cfg.Reports)

	reportCacheWarmer := scheduler.NewReportCacheWarmerService(reporter, cfg)
	if err := reportCacheWarmer.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o aquecimento do cache de relatórios")
	}

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRequestsPerMinute, cfg.RateLimit.LoginBurst)
	loginLimiter.Start(ctx)

	server, err := api.New(cfg, api.Services{
		Authenticator:     authenticator,
		Leads:             leadManager,
		Interactions:      interactionLogger,
		Reports:           reporter,
		ReportCacheWarmer: reportCacheWarmer,
		LoginLimiter:      loginLimiter,
		Database:          pgConn,
	})
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		log.L.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
