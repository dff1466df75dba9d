package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/internal/api/handler/router"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/middleware"
)

var (
	diretoriaClaims = &domain.Claims{UserID: "dir-1", UserName: "Diretora", UserRole: domain.RoleDiretoria}
	vendedorClaims  = &domain.Claims{UserID: "vend-1", UserName: "Ana", UserRole: domain.RoleVendedor}
)

// serve passa a requisição pelo router real, com as claims já gravadas no contexto
func serve(routes []router.Route, claims *domain.Claims, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	require.Equal(t, status, rec.Code)
	require.Equal(t, code, decodeResponse(t, rec)["code"])
}
