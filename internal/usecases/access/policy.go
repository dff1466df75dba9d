// Package access centraliza as regras de autorização sobre leads, usuários e relatórios
package access

import (
	"github.com/vfg2006/recovery-crm-api/internal/domain"
)

// RequireActor falha quando a requisição não traz um usuário autenticado
func RequireActor(actor *domain.Actor) error {
	if actor == nil || actor.ID == "" {
		return domain.NewUnauthenticatedError()
	}
	return nil
}

// RequireDiretoria libera apenas a diretoria
func RequireDiretoria(actor *domain.Actor) error {
	if err := RequireActor(actor); err != nil {
		return err
	}

	if !actor.IsDiretoria() {
		return domain.NewForbiddenError("Operação restrita à diretoria")
	}

	return nil
}

// CanRead libera a diretoria e o vendedor responsável pelo lead
func CanRead(actor *domain.Actor, lead *domain.Lead) error {
	return ownsOrDiretoria(actor, lead, "Você não tem acesso a este lead")
}

// CanMutate segue a mesma regra de leitura; vendedores só alteram os próprios leads
func CanMutate(actor *domain.Actor, lead *domain.Lead) error {
	return ownsOrDiretoria(actor, lead, "Você não pode alterar este lead")
}

func ownsOrDiretoria(actor *domain.Actor, lead *domain.Lead, denied string) error {
	if err := RequireActor(actor); err != nil {
		return err
	}

	if actor.IsDiretoria() {
		return nil
	}

	if lead != nil && lead.ResponsavelID != nil && *lead.ResponsavelID == actor.ID {
		return nil
	}

	return domain.NewForbiddenError(denied)
}

// Portfolio identifica qual carteira de leads uma listagem enxerga
type Portfolio int

const (
	// OwnPortfolio são os leads cujo responsável é o próprio usuário, para qualquer papel
	OwnPortfolio Portfolio = iota
	// FullPortfolio é o portfólio inteiro, restrito à diretoria
	FullPortfolio
)

// LeadScope retorna o filtro de responsável imposto à listagem. nil só sai para a diretoria no portfólio completo;
// sem usuário autenticado ou com carteira desconhecida a resposta é erro, nunca um filtro vazio
func LeadScope(actor *domain.Actor, portfolio Portfolio) (*string, error) {
	if err := RequireActor(actor); err != nil {
		return nil, err
	}

	switch portfolio {
	case OwnPortfolio:
		id := actor.ID
		return &id, nil
	case FullPortfolio:
		if err := RequireDiretoria(actor); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return nil, domain.NewForbiddenError("Carteira de leads desconhecida")
}
