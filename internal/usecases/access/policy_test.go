package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func TestCanReadAndMutate(t *testing.T) {
	diretoria := &domain.Actor{ID: "dir-1", Name: "Diretora", Role: domain.RoleDiretoria}
	vendedorA := &domain.Actor{ID: "vend-a", Name: "Ana", Role: domain.RoleVendedor}
	vendedorB := &domain.Actor{ID: "vend-b", Name: "Bruno", Role: domain.RoleVendedor}

	ownedByA := &domain.Lead{ID: "lead-1", ResponsavelID: stringPtr("vend-a")}
	unassigned := &domain.Lead{ID: "lead-2"}

	tests := []struct {
		name    string
		actor   *domain.Actor
		lead    *domain.Lead
		wantErr error
	}{
		{name: "diretoria acessa qualquer lead", actor: diretoria, lead: ownedByA},
		{name: "diretoria acessa lead sem responsável", actor: diretoria, lead: unassigned},
		{name: "vendedor acessa o próprio lead", actor: vendedorA, lead: ownedByA},
		{name: "vendedor não acessa lead de outro", actor: vendedorB, lead: ownedByA, wantErr: domain.ErrForbidden},
		{name: "vendedor não acessa lead sem responsável", actor: vendedorA, lead: unassigned, wantErr: domain.ErrForbidden},
		{name: "sem usuário autenticado", actor: nil, lead: ownedByA, wantErr: domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, check := range []func(*domain.Actor, *domain.Lead) error{CanRead, CanMutate} {
				err := check(tt.actor, tt.lead)
				if tt.wantErr == nil {
					assert.NoError(t, err)
					continue
				}
				assert.True(t, errors.Is(err, tt.wantErr), "esperado %v, obtido %v", tt.wantErr, err)
			}
		})
	}
}

func TestRequireDiretoria(t *testing.T) {
	assert.NoError(t, RequireDiretoria(&domain.Actor{ID: "d", Role: domain.RoleDiretoria}))
	assert.ErrorIs(t, RequireDiretoria(&domain.Actor{ID: "v", Role: domain.RoleVendedor}), domain.ErrForbidden)
	assert.ErrorIs(t, RequireDiretoria(nil), domain.ErrUnauthenticated)
	assert.ErrorIs(t, RequireDiretoria(&domain.Actor{Role: domain.RoleDiretoria}), domain.ErrUnauthenticated)
}

func TestLeadScope(t *testing.T) {
	diretoria := &domain.Actor{ID: "dir-1", Role: domain.RoleDiretoria}
	vendedor := &domain.Actor{ID: "vend-1", Role: domain.RoleVendedor}

	tests := []struct {
		name      string
		actor     *domain.Actor
		portfolio Portfolio
		expected  *string
		wantErr   error
	}{
		{name: "diretoria no portfólio completo", actor: diretoria, portfolio: FullPortfolio},
		{name: "diretoria na própria carteira", actor: diretoria, portfolio: OwnPortfolio, expected: stringPtr("dir-1")},
		{name: "vendedor na própria carteira", actor: vendedor, portfolio: OwnPortfolio, expected: stringPtr("vend-1")},
		{name: "vendedor no portfólio completo", actor: vendedor, portfolio: FullPortfolio, wantErr: domain.ErrForbidden},
		{name: "sem usuário no portfólio completo", actor: nil, portfolio: FullPortfolio, wantErr: domain.ErrUnauthenticated},
		{name: "sem usuário na própria carteira", actor: nil, portfolio: OwnPortfolio, wantErr: domain.ErrUnauthenticated},
		{name: "usuário sem id", actor: &domain.Actor{Role: domain.RoleDiretoria}, portfolio: FullPortfolio, wantErr: domain.ErrUnauthenticated},
		{name: "carteira desconhecida", actor: diretoria, portfolio: Portfolio(99), wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := LeadScope(tt.actor, tt.portfolio)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, scope)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, scope)
		})
	}
}
