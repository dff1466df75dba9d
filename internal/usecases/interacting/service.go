// Package interacting registra os contatos com os leads e os lembretes de próxima ação
package interacting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/access"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/utils"
	"github.com/vfg2006/recovery-crm-api/pkg/validation"
)

type InteractionLogger interface {
	LogInteraction(ctx context.Context, actor *domain.Actor, leadID string, req domain.CreateInteractionRequest) (*domain.Interaction, error)
	ListInteractions(ctx context.Context, actor *domain.Actor, leadID string) ([]*domain.Interaction, error)
	CreateReminder(ctx context.Context, actor *domain.Actor, leadID string, req domain.CreateReminderRequest) (*domain.Reminder, error)
	CompleteReminder(ctx context.Context, actor *domain.Actor, leadID, reminderID string) error
}

// ReportInvalidator descarta os relatórios agregados que uma mutação deixou desatualizados
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	leadRepo        repository.LeadRepository
	interactionRepo repository.InteractionRepository
	reminderRepo    repository.ReminderRepository
	reports         ReportInvalidator
	now             func() time.Time
}

func NewService(
	leadRepo repository.LeadRepository,
	interactionRepo repository.InteractionRepository,
	reminderRepo repository.ReminderRepository,
	reports ReportInvalidator,
) InteractionLogger {
	return &Service{
		leadRepo:        leadRepo,
		interactionRepo: interactionRepo,
		reminderRepo:    reminderRepo,
		reports:         reports,
		now:             time.Now,
	}
}

// LogInteraction grava a interação, atualiza o último contato do lead e registra INTERACTION_ADDED na mesma transação
func (s *Service) LogInteraction(ctx context.Context, actor *domain.Actor, leadID string, req domain.CreateInteractionRequest) (*domain.Interaction, error) {
	if err := access.RequireActor(actor); err != nil {
		return nil, err
	}

	req.Descricao = strings.TrimSpace(req.Descricao)
	if messages := validation.Struct(req); len(messages) > 0 {
		return nil, domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, strings.Join(messages, "; "))
	}

	lead, err := s.mutableLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	interaction := &domain.Interaction{
		ID:          utils.NewID(),
		LeadID:      lead.ID,
		UserID:      actor.ID,
		UserName:    &actor.Name,
		Tipo:        req.Tipo,
		Descricao:   req.Descricao,
		Resultado:   trimmed(req.Resultado),
		ProximoStep: trimmed(req.ProximoStep),
		CreatedAt:   now,
	}

	activity := &domain.Activity{
		ID:        utils.NewID(),
		LeadID:    &lead.ID,
		UserID:    actor.ID,
		Tipo:      domain.ActivityInteractionAdded,
		Descricao: fmt.Sprintf("Nova interação adicionada: %s", interaction.Tipo),
		Metadata:  domain.ActivityMetadata{InteractionID: &interaction.ID},
		CreatedAt: now,
	}

	if err := s.interactionRepo.Create(ctx, interaction, now, activity); err != nil {
		return nil, domain.NewInternalError(err, "Erro ao registrar interação")
	}

	// último contato e contagem de interações alimentam os relatórios
	if s.reports != nil {
		s.reports.Invalidate(ctx)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"lead_id":  lead.ID,
		"actor_id": actor.ID,
		"tipo":     interaction.Tipo,
	}).Info("Interação registrada")

	return interaction, nil
}

// ListInteractions retorna o histórico de contatos do lead, do mais recente ao mais antigo
func (s *Service) ListInteractions(ctx context.Context, actor *domain.Actor, leadID string) ([]*domain.Interaction, error) {
	if err := access.RequireActor(actor); err != nil {
		return nil, err
	}

	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if err := access.CanRead(actor, lead); err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao listar interações")
	}

	return interactions, nil
}

func (s *Service) CreateReminder(ctx context.Context, actor *domain.Actor, leadID string, req domain.CreateReminderRequest) (*domain.Reminder, error) {
	if err := access.RequireActor(actor); err != nil {
		return nil, err
	}

	req.Titulo = strings.TrimSpace(req.Titulo)
	if messages := validation.Struct(req); len(messages) > 0 {
		return nil, domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, strings.Join(messages, "; "))
	}

	lead, err := s.mutableLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	reminder := &domain.Reminder{
		ID:        utils.NewID(),
		LeadID:    lead.ID,
		UserID:    actor.ID,
		Titulo:    req.Titulo,
		Descricao: trimmed(req.Descricao),
		DataHora:  *req.DataHora,
		CreatedAt: now,
	}

	activity := &domain.Activity{
		ID:        utils.NewID(),
		LeadID:    &lead.ID,
		UserID:    actor.ID,
		Tipo:      domain.ActivityReminderCreated,
		Descricao: fmt.Sprintf("Lembrete criado: %s", reminder.Titulo),
		Metadata:  domain.ActivityMetadata{ReminderID: &reminder.ID},
		CreatedAt: now,
	}

	if err := s.reminderRepo.Create(ctx, reminder, activity); err != nil {
		return nil, domain.NewInternalError(err, "Erro ao criar lembrete")
	}

	return reminder, nil
}

// CompleteReminder marca o lembrete como concluído; concluir de novo não tem efeito
func (s *Service) CompleteReminder(ctx context.Context, actor *domain.Actor, leadID, reminderID string) error {
	if err := access.RequireActor(actor); err != nil {
		return err
	}

	reminder, err := s.reminderRepo.GetByID(ctx, reminderID)
	if err != nil {
		return domain.NewInternalError(err, "Erro ao buscar lembrete")
	}

	if reminder == nil || reminder.LeadID != leadID {
		return domain.NewNotFoundError(apiErrors.ErrReminderNotFound, "Lembrete não encontrado")
	}

	if _, err := s.mutableLead(ctx, actor, reminder.LeadID); err != nil {
		return err
	}

	if reminder.Concluido {
		return nil
	}

	if err := s.reminderRepo.Complete(ctx, reminderID); err != nil {
		return domain.NewInternalError(err, "Erro ao concluir lembrete")
	}

	return nil
}

func (s *Service) mutableLead(ctx context.Context, actor *domain.Actor, leadID string) (*domain.Lead, error) {
	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if err := access.CanMutate(actor, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

func (s *Service) getLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao buscar lead")
	}

	if lead == nil {
		return nil, domain.NewNotFoundError(apiErrors.ErrLeadNotFound, "Lead não encontrado")
	}

	return lead, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}

	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
