// Package pipeline implementa o funil de recuperação: criação, atualização de status e listagem de leads
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/access"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/metrics"
	"github.com/vfg2006/recovery-crm-api/pkg/phone"
	"github.com/vfg2006/recovery-crm-api/pkg/utils"
	"github.com/vfg2006/recovery-crm-api/pkg/validation"
)

type LeadManager interface {
	CreateLead(ctx context.Context, actor *domain.Actor, req domain.CreateLeadRequest) (*domain.Lead, error)
	GetLead(ctx context.Context, actor *domain.Actor, id string) (*domain.LeadDetail, error)
	UpdateLead(ctx context.Context, actor *domain.Actor, id string, req domain.UpdateLeadRequest) (*domain.Lead, error)
	DeleteLead(ctx context.Context, actor *domain.Actor, id string) error
	ListAllLeads(ctx context.Context, actor *domain.Actor, filter domain.LeadFilter) ([]*domain.LeadSummary, error)
	ListMyLeads(ctx context.Context, actor *domain.Actor) ([]*domain.LeadSummary, error)
	ListActivities(ctx context.Context, actor *domain.Actor, id string) ([]*domain.Activity, error)
}

// ReportInvalidator descarta os relatórios agregados que uma mutação deixou desatualizados
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	leadRepo        repository.LeadRepository
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
	reminderRepo    repository.ReminderRepository
	activityRepo    repository.ActivityRepository
	reports         ReportInvalidator
	now             func() time.Time
}

func NewService(
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	interactionRepo repository.InteractionRepository,
	reminderRepo repository.ReminderRepository,
	activityRepo repository.ActivityRepository,
	reports ReportInvalidator,
) LeadManager {
	return &Service{
		leadRepo:        leadRepo,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		reminderRepo:    reminderRepo,
		activityRepo:    activityRepo,
		reports:         reports,
		now:             time.Now,
	}
}

// CreateLead cria o lead em NAO_CONTATADO, atribuído ao primeiro vendedor cadastrado (ou sem responsável)
func (s *Service) CreateLead(ctx context.Context, actor *domain.Actor, req domain.CreateLeadRequest) (*domain.Lead, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	req.RazaoSocial = strings.TrimSpace(req.RazaoSocial)
	if messages := validation.Struct(req); len(messages) > 0 {
		return nil, domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, strings.Join(messages, "; "))
	}

	now := s.now()
	lead := &domain.Lead{
		ID:                      utils.NewID(),
		RazaoSocial:             req.RazaoSocial,
		NomeFantasia:            cleanText(req.NomeFantasia),
		CNPJ:                    cleanText(req.CNPJ),
		Setor:                   cleanText(req.Setor),
		Porte:                   cleanText(req.Porte),
		Endereco:                cleanText(req.Endereco),
		Municipio:               cleanText(req.Municipio),
		UF:                      upper(cleanText(req.UF)),
		CEP:                     cleanText(req.CEP),
		TelefonePrincipal:       phone.NormalizePtr(req.TelefonePrincipal, phone.DefaultRegion),
		TelefoneSecundario:      phone.NormalizePtr(req.TelefoneSecundario, phone.DefaultRegion),
		Email:                   lower(cleanText(req.Email)),
		ContatoPrincipal:        cleanText(req.ContatoPrincipal),
		Cargo:                   cleanText(req.Cargo),
		InstituicoesFinanceiras: cleanText(req.InstituicoesFinanceiras),
		ContratosBancarios:      cleanText(req.ContratosBancarios),
		Observacoes:             cleanText(req.Observacoes),
		Status:                  domain.StatusNaoContatado,
		Prioridade:              domain.PrioridadeMedia,
		ProximaAcao:             cleanText(req.ProximaAcao),
		DataProximaAcao:         req.DataProximaAcao,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if req.Prioridade != nil {
		lead.Prioridade = *req.Prioridade
	}

	if req.ValorEstimadoRecuperacao != nil {
		value := utils.RoundWithTwoDecimalPlace(*req.ValorEstimadoRecuperacao)
		lead.ValorEstimadoRecuperacao = &value
	}

	vendedor, err := s.userRepo.FirstByRole(ctx, domain.RoleVendedor)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao buscar vendedor para atribuição")
	}

	if vendedor != nil {
		lead.ResponsavelID = &vendedor.ID
		lead.ResponsavelName = &vendedor.Name
	}

	activity := newActivity(actor, &lead.ID, domain.ActivityLeadCreated,
		fmt.Sprintf("Lead %s foi criado", lead.RazaoSocial), domain.ActivityMetadata{}, now)

	if err := s.leadRepo.Create(ctx, lead, activity); err != nil {
		return nil, domain.NewInternalError(err, "Erro ao criar lead")
	}
	s.invalidateReports(ctx)

	log.ForContext(ctx).WithFields(log.Fields{
		"lead_id":        lead.ID,
		"actor_id":       actor.ID,
		"responsavel_id": lead.ResponsavelID,
	}).Info("Lead criado")

	return lead, nil
}

// GetLead retorna o lead com as interações (mais recentes primeiro) e os lembretes em aberto
func (s *Service) GetLead(ctx context.Context, actor *domain.Actor, id string) (*domain.LeadDetail, error) {
	lead, err := s.readableLead(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.ListByLead(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao buscar interações do lead")
	}

	reminders, err := s.reminderRepo.ListOpenByLead(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao buscar lembretes do lead")
	}

	return &domain.LeadDetail{
		Lead:         *lead,
		Interactions: interactions,
		Reminders:    reminders,
	}, nil
}

// UpdateLead aplica a requisição pelo ApplyUpdate e grava o lead com uma única atividade LEAD_UPDATED,
// mesmo quando nenhum campo muda de valor
func (s *Service) UpdateLead(ctx context.Context, actor *domain.Actor, id string, req domain.UpdateLeadRequest) (*domain.Lead, error) {
	if err := access.RequireActor(actor); err != nil {
		return nil, err
	}

	lead, err := s.getLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.CanMutate(actor, lead); err != nil {
		return nil, err
	}

	if req.ResponsavelID != nil && actor.IsDiretoria() {
		if err := s.validateAssignee(ctx, req.ResponsavelID); err != nil {
			return nil, err
		}
	}

	previousStatus := lead.Status
	now := s.now()

	changes, err := ApplyUpdate(lead, req, actor, now)
	if err != nil {
		return nil, err
	}

	activity := newActivity(actor, &lead.ID, domain.ActivityLeadUpdated,
		fmt.Sprintf("Lead %s foi atualizado", lead.RazaoSocial), domain.ActivityMetadata{Changes: changes}, now)

	if err := s.leadRepo.Update(ctx, lead, activity); err != nil {
		return nil, domain.NewInternalError(err, "Erro ao atualizar lead")
	}
	s.invalidateReports(ctx)

	if lead.Status != previousStatus {
		metrics.RecordStatusTransition(string(previousStatus), string(lead.Status))
		if lead.Status.IsTerminal() {
			log.ForContext(ctx).WithFields(log.Fields{
				"lead_id":  lead.ID,
				"status":   lead.Status,
				"actor_id": actor.ID,
			}).Info("Lead encerrado")
		}
	}

	if _, reassigned := changes["responsavelId"]; reassigned {
		lead.ResponsavelName = nil
		if lead.ResponsavelID != nil {
			if owner, err := s.userRepo.GetByID(ctx, *lead.ResponsavelID); err == nil && owner != nil {
				lead.ResponsavelName = &owner.Name
			}
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"lead_id":  lead.ID,
		"actor_id": actor.ID,
		"changes":  len(changes),
	}).Info("Lead atualizado")

	return lead, nil
}

// validateAssignee exige que o novo responsável seja um vendedor existente; vazio remove a atribuição
func (s *Service) validateAssignee(ctx context.Context, responsavelID *string) error {
	assignee := cleanText(responsavelID)
	if assignee == nil {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, *assignee)
	if err != nil {
		return domain.NewInternalError(err, "Erro ao buscar responsável")
	}

	if user == nil || user.Role != domain.RoleVendedor {
		return domain.NewInvalidInputError(apiErrors.ErrInvalidAssignee, "Responsável deve ser um vendedor cadastrado")
	}

	return nil
}

func (s *Service) DeleteLead(ctx context.Context, actor *domain.Actor, id string) error {
	if err := access.RequireDiretoria(actor); err != nil {
		return err
	}

	lead, err := s.getLead(ctx, id)
	if err != nil {
		return err
	}

	// lead_id fica vazio porque a linha deixa de existir; a referência segue nos metadados
	activity := newActivity(actor, nil, domain.ActivityLeadDeleted,
		fmt.Sprintf("Lead %s foi excluído", lead.RazaoSocial),
		domain.ActivityMetadata{LeadID: &lead.ID}, s.now())

	if err := s.leadRepo.Delete(ctx, id, activity); err != nil {
		return domain.NewInternalError(err, "Erro ao excluir lead")
	}
	s.invalidateReports(ctx)

	log.ForContext(ctx).WithFields(log.Fields{
		"lead_id":  id,
		"actor_id": actor.ID,
	}).Info("Lead excluído")

	return nil
}

func (s *Service) ListAllLeads(ctx context.Context, actor *domain.Actor, filter domain.LeadFilter) ([]*domain.LeadSummary, error) {
	scope, err := access.LeadScope(actor, access.FullPortfolio)
	if err != nil {
		return nil, err
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewInvalidInputError(apiErrors.ErrInvalidStatus, fmt.Sprintf("Status inválido: %s", *filter.Status))
	}

	if scope != nil {
		filter.ResponsavelID = scope
	}

	filter.Order = domain.OrderByCreatedDesc

	leads, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao listar leads")
	}

	return leads, nil
}

// ListMyLeads lista os leads do próprio usuário; sem leads o resultado é vazio
func (s *Service) ListMyLeads(ctx context.Context, actor *domain.Actor) ([]*domain.LeadSummary, error) {
	scope, err := access.LeadScope(actor, access.OwnPortfolio)
	if err != nil {
		return nil, err
	}

	leads, err := s.leadRepo.List(ctx, domain.LeadFilter{
		ResponsavelID: scope,
		Order:         domain.OrderByPriority,
	})
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao listar leads do usuário")
	}

	return leads, nil
}

func (s *Service) ListActivities(ctx context.Context, actor *domain.Actor, id string) ([]*domain.Activity, error) {
	if _, err := s.readableLead(ctx, actor, id); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListByLead(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao listar atividades do lead")
	}

	return activities, nil
}

func (s *Service) readableLead(ctx context.Context, actor *domain.Actor, id string) (*domain.Lead, error) {
	if err := access.RequireActor(actor); err != nil {
		return nil, err
	}

	lead, err := s.getLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.CanRead(actor, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

func (s *Service) getLead(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError(errors.Wrapf(err, "lead %s", id), "Erro ao buscar lead")
	}

	if lead == nil {
		return nil, domain.NewNotFoundError(apiErrors.ErrLeadNotFound, "Lead não encontrado")
	}

	return lead, nil
}

func (s *Service) invalidateReports(ctx context.Context) {
	if s.reports != nil {
		s.reports.Invalidate(ctx)
	}
}

func newActivity(actor *domain.Actor, leadID *string, tipo domain.ActivityType, descricao string, metadata domain.ActivityMetadata, now time.Time) *domain.Activity {
	return &domain.Activity{
		ID:        utils.NewID(),
		LeadID:    leadID,
		UserID:    actor.ID,
		Tipo:      tipo,
		Descricao: descricao,
		Metadata:  metadata,
		CreatedAt: now,
	}
}

func upper(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.ToUpper(*value)
	return &v
}

func lower(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.ToLower(*value)
	return &v
}
