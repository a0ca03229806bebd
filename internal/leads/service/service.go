// Package service implements the lead-management use cases: lead CRUD,
// qualification, interaction logging, stage moves and score maintenance.
package service

import (
	"context"
	"errors"
	"time"

	"conectaleads_backend/internal/events"
	"conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/leads/pipeline"
	"conectaleads_backend/internal/leads/repository"
	"conectaleads_backend/internal/leads/scoring"
	"conectaleads_backend/platform/apperr"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/phone"

	"github.com/google/uuid"
)

// StageProvider supplies the stage list of a pipeline. Implemented by the
// pipelines repository; the leads service never reaches into that schema
// directly.
type StageProvider interface {
	ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error)
}

// Store is the persistence surface the use cases need. Implemented by the
// leads repository; narrowed to an interface so the service logic is testable
// without a database.
type Store interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	GetByPhone(ctx context.Context, phone string) (domain.Lead, error)
	List(ctx context.Context, params repository.ListLeadsParams) ([]domain.Lead, int, error)
	ListForBoard(ctx context.Context, pipelineID *uuid.UUID) ([]domain.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (domain.Lead, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage string, pipelineID, pipelineStageID *uuid.UUID) (domain.Lead, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score int, overridden bool) (domain.Lead, error)
	TouchLastContact(ctx context.Context, id uuid.UUID, at time.Time) error
	SetLastMessageIntent(ctx context.Context, id uuid.UUID, intent *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetQualification(ctx context.Context, leadID uuid.UUID) (*domain.Qualification, error)
	UpsertQualification(ctx context.Context, params repository.UpsertQualificationParams) (domain.Qualification, error)
	AppendInteraction(ctx context.Context, params repository.AppendInteractionParams) (domain.Interaction, error)
	ListInteractions(ctx context.Context, leadID uuid.UUID) ([]domain.Interaction, error)
}

type Service struct {
	repo   Store
	stages StageProvider
	bus    events.Bus
	log    *logger.Logger
}

func New(repo Store, stages StageProvider, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, stages: stages, bus: bus, log: log}
}

// Compile-time check that the repository satisfies Store
var _ Store = (*repository.Repository)(nil)

type CreateLeadInput struct {
	Name   string
	Phone  string
	Email  *string
	Source *string
}

// Create registers a new lead. The phone number is normalized to E.164 before
// the duplicate check so that "(11) 98765-4321" and "+5511987654321" collide.
func (s *Service) Create(ctx context.Context, input CreateLeadInput) (domain.Lead, error) {
	normalized := phone.NormalizeE164(input.Phone)
	if normalized == "" {
		return domain.Lead{}, apperr.Validation("phone is required").WithOp("leads.Create")
	}

	if _, err := s.repo.GetByPhone(ctx, normalized); err == nil {
		return domain.Lead{}, apperr.Conflict("a lead with this phone already exists").WithOp("leads.Create")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to check for duplicate lead", err).WithOp("leads.Create")
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:   input.Name,
		Phone:  normalized,
		Email:  input.Email,
		Source: input.Source,
		Stage:  "new",
	})
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err).WithOp("leads.Create")
	}

	source := ""
	if lead.Source != nil {
		source = *lead.Source
	}
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Source:    source,
	})

	return lead, nil
}

// FindOrCreateByPhone returns the existing lead matching the phone number or
// creates one. Used by the webhook relays, where every inbound message must
// land on a lead.
func (s *Service) FindOrCreateByPhone(ctx context.Context, phoneNumber, name, source string) (domain.Lead, bool, error) {
	normalized := phone.NormalizeE164(phoneNumber)
	if normalized == "" {
		return domain.Lead{}, false, apperr.Validation("phone is required").WithOp("leads.FindOrCreateByPhone")
	}

	lead, err := s.repo.GetByPhone(ctx, normalized)
	if err == nil {
		return lead, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, false, apperr.Wrap(apperr.KindInternal, "failed to look up lead by phone", err).WithOp("leads.FindOrCreateByPhone")
	}

	if name == "" {
		name = normalized
	}
	created, err := s.Create(ctx, CreateLeadInput{Name: name, Phone: normalized, Source: &source})
	if err != nil {
		return domain.Lead{}, false, err
	}
	return created, true, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to fetch lead", err).WithOp("leads.Get")
	}
	return lead, nil
}

func (s *Service) List(ctx context.Context, params repository.ListLeadsParams) ([]domain.Lead, int, error) {
	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list leads", err).WithOp("leads.List")
	}
	return leads, total, nil
}

type UpdateLeadInput struct {
	Name   *string
	Phone  *string
	Email  *string
	Source *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateLeadInput) (domain.Lead, error) {
	if input.Phone != nil {
		normalized := phone.NormalizeE164(*input.Phone)
		input.Phone = &normalized
	}

	lead, err := s.repo.Update(ctx, id, repository.UpdateLeadParams{
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Source: input.Source,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err).WithOp("leads.Update")
	}
	return lead, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete lead", err).WithOp("leads.Delete")
	}
	return nil
}

type QualifyInput struct {
	Urgency          string
	InterestType     string
	CategoryInterest string
	BudgetRange      string
	Notes            string
}

// Qualify upserts the lead's qualification answers and triggers a score
// recomputation through the LeadQualified event.
func (s *Service) Qualify(ctx context.Context, leadID uuid.UUID, input QualifyInput) (domain.Qualification, error) {
	if _, err := s.Get(ctx, leadID); err != nil {
		return domain.Qualification{}, err
	}

	qual, err := s.repo.UpsertQualification(ctx, repository.UpsertQualificationParams{
		LeadID:           leadID,
		Urgency:          input.Urgency,
		InterestType:     input.InterestType,
		CategoryInterest: input.CategoryInterest,
		BudgetRange:      input.BudgetRange,
		Notes:            input.Notes,
	})
	if err != nil {
		return domain.Qualification{}, apperr.Wrap(apperr.KindInternal, "failed to save qualification", err).WithOp("leads.Qualify")
	}

	s.bus.Publish(ctx, events.LeadQualified{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
	})

	return qual, nil
}

func (s *Service) GetQualification(ctx context.Context, leadID uuid.UUID) (*domain.Qualification, error) {
	qual, err := s.repo.GetQualification(ctx, leadID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch qualification", err).WithOp("leads.GetQualification")
	}
	return qual, nil
}

type RecordInteractionInput struct {
	Type    string
	Channel *string
	Content string
}

// RecordInteraction appends one row to the lead's interaction log, marks the
// lead as contacted now, and publishes InteractionRecorded so the score stays
// current without the caller knowing about scoring.
func (s *Service) RecordInteraction(ctx context.Context, leadID uuid.UUID, input RecordInteractionInput) (domain.Interaction, error) {
	if _, err := s.Get(ctx, leadID); err != nil {
		return domain.Interaction{}, err
	}

	interaction, err := s.repo.AppendInteraction(ctx, repository.AppendInteractionParams{
		LeadID:  leadID,
		Type:    input.Type,
		Channel: input.Channel,
		Content: input.Content,
	})
	if err != nil {
		return domain.Interaction{}, apperr.Wrap(apperr.KindInternal, "failed to record interaction", err).WithOp("leads.RecordInteraction")
	}

	if err := s.repo.TouchLastContact(ctx, leadID, time.Now().UTC()); err != nil {
		s.log.DatabaseError("leads.TouchLastContact", err)
	}

	channel := ""
	if interaction.Channel != nil {
		channel = *interaction.Channel
	}
	s.bus.Publish(ctx, events.InteractionRecorded{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          leadID,
		InteractionID:   interaction.ID,
		InteractionType: interaction.Type,
		Channel:         channel,
	})

	return interaction, nil
}

func (s *Service) ListInteractions(ctx context.Context, leadID uuid.UUID) ([]domain.Interaction, error) {
	interactions, err := s.repo.ListInteractions(ctx, leadID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list interactions", err).WithOp("leads.ListInteractions")
	}
	return interactions, nil
}

// stagesFor returns the stage list the lead's board uses: the pipeline's
// stages when one is assigned, the flat defaults otherwise.
func (s *Service) stagesFor(ctx context.Context, pipelineID *uuid.UUID) ([]domain.Stage, error) {
	if pipelineID == nil {
		return pipeline.DefaultStages(), nil
	}
	stages, err := s.stages.ListStages(ctx, *pipelineID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch pipeline stages", err).WithOp("leads.stagesFor")
	}
	if len(stages) == 0 {
		return pipeline.DefaultStages(), nil
	}
	return stages, nil
}

// MoveStage moves the lead to the target stage, keeping the legacy flat key
// and the pipeline references synchronized in a single write. A target stage
// outside the lead's board fails closed; nothing is persisted.
func (s *Service) MoveStage(ctx context.Context, leadID, targetStageID uuid.UUID, pipelineID *uuid.UUID) (domain.Lead, error) {
	lead, err := s.Get(ctx, leadID)
	if err != nil {
		return domain.Lead{}, err
	}

	boardPipeline := pipelineID
	if boardPipeline == nil {
		boardPipeline = lead.PipelineID
	}
	stages, err := s.stagesFor(ctx, boardPipeline)
	if err != nil {
		return domain.Lead{}, err
	}

	moved, err := pipeline.MoveToStage(lead, targetStageID, stages)
	if errors.Is(err, pipeline.ErrInvalidStage) {
		return domain.Lead{}, apperr.Validation("stage does not belong to pipeline").WithOp("leads.MoveStage")
	}
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to move lead", err).WithOp("leads.MoveStage")
	}

	updated, err := s.repo.UpdateStage(ctx, leadID, moved.Stage, moved.PipelineID, moved.PipelineStageID)
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to persist stage move", err).WithOp("leads.MoveStage")
	}

	if lead.Stage != updated.Stage {
		s.bus.Publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    leadID,
			OldStage:  lead.Stage,
			NewStage:  updated.Stage,
		})
	}

	return updated, nil
}

// Board returns the kanban view of a pipeline: its stages in order and the
// leads grouped per stage. Every lead of the board appears in exactly one
// bucket.
type BoardView struct {
	Stages []domain.Stage
	Leads  map[uuid.UUID][]domain.Lead
}

func (s *Service) Board(ctx context.Context, pipelineID *uuid.UUID) (BoardView, error) {
	stages, err := s.stagesFor(ctx, pipelineID)
	if err != nil {
		return BoardView{}, err
	}

	leads, err := s.repo.ListForBoard(ctx, pipelineID)
	if err != nil {
		return BoardView{}, apperr.Wrap(apperr.KindInternal, "failed to list board leads", err).WithOp("leads.Board")
	}

	sorted := pipeline.SortStages(stages)
	return BoardView{
		Stages: sorted,
		Leads:  pipeline.GroupByStage(leads, sorted),
	}, nil
}

// RecalculateScore recomputes the lead's score from its current qualification
// and interaction history. An explicit recalculation always applies and
// clears any manual override; event-driven recomputes (force=false) leave
// overridden scores alone.
func (s *Service) RecalculateScore(ctx context.Context, leadID uuid.UUID, force bool) (domain.Lead, error) {
	lead, err := s.Get(ctx, leadID)
	if err != nil {
		return domain.Lead{}, err
	}

	if lead.ScoreOverridden && !force {
		return lead, nil
	}

	qual, err := s.repo.GetQualification(ctx, leadID)
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to fetch qualification", err).WithOp("leads.RecalculateScore")
	}
	interactions, err := s.repo.ListInteractions(ctx, leadID)
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to fetch interactions", err).WithOp("leads.RecalculateScore")
	}

	newScore := scoring.Compute(lead, qual, interactions, time.Now().UTC())
	if newScore == lead.Score && !lead.ScoreOverridden {
		return lead, nil
	}

	updated, err := s.repo.UpdateScore(ctx, leadID, newScore, false)
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to persist score", err).WithOp("leads.RecalculateScore")
	}

	s.bus.Publish(ctx, events.LeadScoreRecalculated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		OldScore:  lead.Score,
		NewScore:  updated.Score,
	})

	return updated, nil
}

// OverrideScore sets the score by hand. The override is sticky: automatic
// recomputes skip the lead until an explicit recalculation clears the flag.
func (s *Service) OverrideScore(ctx context.Context, leadID uuid.UUID, score int) (domain.Lead, error) {
	if score < 0 {
		return domain.Lead{}, apperr.Validation("score must not be negative").WithOp("leads.OverrideScore")
	}

	lead, err := s.Get(ctx, leadID)
	if err != nil {
		return domain.Lead{}, err
	}

	updated, err := s.repo.UpdateScore(ctx, leadID, score, true)
	if err != nil {
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to persist score override", err).WithOp("leads.OverrideScore")
	}

	s.bus.Publish(ctx, events.LeadScoreRecalculated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		OldScore:  lead.Score,
		NewScore:  score,
	})

	return updated, nil
}

// SetMessageIntent records the detected intent of the lead's latest inbound
// message. Used by the inbox when a price inquiry is detected.
func (s *Service) SetMessageIntent(ctx context.Context, leadID uuid.UUID, intent string) error {
	var value *string
	if intent != "" {
		value = &intent
	}
	if err := s.repo.SetLastMessageIntent(ctx, leadID, value); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to set message intent", err).WithOp("leads.SetMessageIntent")
	}
	return nil
}

// Classification returns the temperature label for the lead's current score.
func (s *Service) Classification(lead domain.Lead) scoring.Temperature {
	return scoring.Classify(lead.Score)
}
