package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/recovery-crm-api/internal/api/handler/router"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/interacting"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/pipeline"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/reporting"
	"github.com/vfg2006/recovery-crm-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// Authentication registra login e rotas do próprio usuário; o login passa pelo limitador quando informado
func Authentication(service authenticating.Authenticator, loginLimiter *middleware.RateLimiter) []router.Route {
	var loginMiddlewares middlewares
	if loginLimiter != nil {
		loginMiddlewares = append(loginMiddlewares, loginLimiter.Middleware())
	}

	return []router.Route{
		{
			Path:        "/v1/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: loginMiddlewares,
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteUser(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/users/:id/reset-password",
			Method:      http.MethodPost,
			Handler:     ResetPassword(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
	}
}

// Leads registra o funil; a posse do lead é verificada no caso de uso
func Leads(service pipeline.LeadManager, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/leads",
			Method:      http.MethodPost,
			Handler:     CreateLead(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/leads",
			Method:      http.MethodGet,
			Handler:     ListAllLeads(service, loc),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/me/leads",
			Method:      http.MethodGet,
			Handler:     ListMyLeads(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id",
			Method:      http.MethodGet,
			Handler:     GetLead(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id",
			Method:      http.MethodPut,
			Handler:     UpdateLead(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteLead(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/leads/:id/activities",
			Method:      http.MethodGet,
			Handler:     ListActivities(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Interactions(service interacting.InteractionLogger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/leads/:id/interactions",
			Method:      http.MethodPost,
			Handler:     LogInteraction(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id/interactions",
			Method:      http.MethodGet,
			Handler:     ListInteractions(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id/reminders",
			Method:      http.MethodPost,
			Handler:     CreateReminder(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id/reminders/:reminder_id/complete",
			Method:      http.MethodPut,
			Handler:     CompleteReminder(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/funnel",
			Method:      http.MethodGet,
			Handler:     FunnelReport(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/reports/financial",
			Method:      http.MethodGet,
			Handler:     FinancialReport(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/reports/salespeople",
			Method:      http.MethodGet,
			Handler:     SalespersonReport(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/reports/dashboard",
			Method:      http.MethodGet,
			Handler:     DashboardStats(service),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.DiretoriaOnly()},
		},
	}
}
