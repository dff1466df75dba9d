// Importa a planilha de clientes como leads NAO_CONTATADO, pelo mesmo fluxo do cadastro manual.
//
//	go run ./infrastructure/migration/script -file Base_CRM.xlsx -actor diretoria@empresa.com.br
package main

import (
	"context"
	"flag"
	"time"

	"github.com/vfg2006/recovery-crm-api/infrastructure/cache"
	"github.com/vfg2006/recovery-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/reporting"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
)

func main() {
	file := flag.String("file", "", "caminho da planilha .xlsx")
	sheet := flag.String("sheet", defaultSheet, "aba com os clientes")
	actorEmail := flag.String("actor", "", "email do usuário da diretoria que registra a importação")
	flag.Parse()

	if *file == "" || *actorEmail == "" {
		flag.Usage()
		log.L.Fatal("Parâmetros -file e -actor são obrigatórios")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	userRepo := repository.NewUserRepository(conn)
	leadManager := pipeline.NewService(
		repository.NewLeadRepository(conn),
		userRepo,
		repository.NewInteractionRepository(conn),
		repository.NewReminderRepository(conn),
		repository.NewActivityRepository(conn),
		nil, // o cache é invalidado uma vez, ao final
	)

	user, err := userRepo.GetByEmail(ctx, *actorEmail)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao buscar usuário da importação")
	}
	if user == nil || user.Role != domain.RoleDiretoria {
		log.L.Fatalf("Usuário %s não encontrado ou não pertence à diretoria", *actorEmail)
	}

	rows, err := readRows(*file, *sheet)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao ler planilha")
	}

	log.L.Infof("Encontradas %d linhas para importar", len(rows)-1)
	startTime := time.Now()

	result, err := importRows(ctx, leadManager, &domain.Actor{ID: user.ID, Name: user.Name, Role: user.Role}, rows)
	if err != nil {
		log.L.WithError(err).Fatal("Erro na importação")
	}

	log.L.Infof("Importação concluída em %v. Sucesso: %d, Erros: %d, Linhas vazias: %d",
		time.Since(startTime), result.Imported, result.Failed, result.Skipped)

	if result.Imported > 0 && cfg.Redis.URL != "" {
		redisClient, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.L.WithError(err).Warn("Redis indisponível, relatórios em cache expiram pelo TTL")
			return
		}
		defer redisClient.Close()

		reporting.NewCacheInvalidator(redisClient).Invalidate(ctx)
	}
}
