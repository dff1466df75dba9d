package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/recovery-crm-api/pkg/metrics"
)

// statusRecorder captura o status code escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Metrics registra contagem e duração das requisições usando o padrão da rota como rótulo;
// o mesmo padrão aparece no log da requisição
func Metrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trace := traceFromContext(r.Context()); trace != nil {
				trace.route = route
			}

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			metrics.ObserveHTTPRequest(r.Method, route, strconv.Itoa(recorder.statusCode), time.Since(start).Seconds())
		})
	}
}
