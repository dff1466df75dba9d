package middleware

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
)

// CorrelationIDHeader propaga o ID de correlação entre cliente e servidor
const CorrelationIDHeader = "X-Correlation-ID"

const (
	requestTraceKey      contextKey = "request_trace"
	slowRequestThreshold            = 500 * time.Millisecond
)

// requestTrace é criado pelo LoggingMiddleware e preenchido pelas camadas internas:
// o AuthMiddleware grava quem fez a requisição e o router grava o padrão da rota
type requestTrace struct {
	route     string
	actorID   string
	actorRole domain.Role
}

func traceFromContext(ctx context.Context) *requestTrace {
	trace, _ := ctx.Value(requestTraceKey).(*requestTrace)
	return trace
}

func (t *requestTrace) fields() log.Fields {
	fields := log.Fields{}
	if t == nil {
		return fields
	}
	if t.route != "" {
		fields["route"] = t.route
	}
	if t.actorID != "" {
		fields["actor_id"] = t.actorID
		fields["actor_role"] = t.actorRole
	}
	return fields
}

// LoggingMiddleware registra uma linha por requisição com status, duração, rota e usuário autenticado
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Reaproveita o ID enviado pelo cliente ou gera um novo
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(CorrelationIDHeader))
			trace := &requestTrace{}
			ctx = context.WithValue(ctx, requestTraceKey, trace)
			w.Header().Set(CorrelationIDHeader, correlationID)

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r.WithContext(ctx))

			elapsed := time.Since(start)

			fields := trace.fields()
			fields["method"] = r.Method
			fields["path"] = r.URL.Path
			fields["status_code"] = recorder.statusCode
			fields["duration_ms"] = elapsed.Milliseconds()
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}

			logger := log.ForContext(ctx).WithFields(fields)

			switch {
			case recorder.statusCode >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case recorder.statusCode >= http.StatusBadRequest:
				logger.Warn("Requisição recusada")
			default:
				logger.Info("Requisição finalizada")
			}

			if elapsed > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", elapsed)
			}
		})
	}
}

// LogPanicMiddleware converte um panic do handler em 500 e registra a pilha com a rota e o usuário
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					fields := traceFromContext(r.Context()).fields()
					fields["panic_error"] = err
					fields["method"] = r.Method
					fields["path"] = r.URL.Path
					fields["stack_trace"] = string(stack)

					log.ForContext(r.Context()).WithFields(fields).Error("Erro não tratado na aplicação")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
