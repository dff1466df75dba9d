package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeError traduz os erros dos casos de uso; falhas internas são logadas e respondidas sem detalhes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err).WithField("path", r.URL.Path)

	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		logger.Error("Erro não mapeado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
		return
	}

	if domainErr.Err == domain.ErrInternal {
		logger.Error(domainErr.Message())
		apiErrors.WriteError(w, domainErr.Code, "Erro interno no servidor", nil)
		return
	}

	apiErrors.WriteError(w, domainErr.Code, domainErr.Message(), nil)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// decodeBody lê o JSON da requisição; em caso de erro já responde ao cliente
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

func actorFrom(r *http.Request) *domain.Actor {
	return middleware.ActorFromContext(r.Context())
}

func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
