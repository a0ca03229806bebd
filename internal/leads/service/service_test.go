package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/leads/repository"
	"conectaleads_backend/platform/apperr"
	"conectaleads_backend/platform/events"
	"conectaleads_backend/platform/logger"

	"github.com/google/uuid"
)

type scoreWrite struct {
	score      int
	overridden bool
}

// fakeStore serves one lead and records score writes. Methods the score
// tests never reach return zero values.
type fakeStore struct {
	lead          domain.Lead
	qualification *domain.Qualification
	interactions  []domain.Interaction
	scoreWrites   []scoreWrite
}

func (f *fakeStore) Create(ctx context.Context, params repository.CreateLeadParams) (domain.Lead, error) {
	return domain.Lead{}, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	if id != f.lead.ID {
		return domain.Lead{}, repository.ErrNotFound
	}
	return f.lead, nil
}

func (f *fakeStore) GetByPhone(ctx context.Context, phone string) (domain.Lead, error) {
	return domain.Lead{}, repository.ErrNotFound
}

func (f *fakeStore) List(ctx context.Context, params repository.ListLeadsParams) ([]domain.Lead, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) ListForBoard(ctx context.Context, pipelineID *uuid.UUID) ([]domain.Lead, error) {
	return nil, nil
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (domain.Lead, error) {
	return f.lead, nil
}

func (f *fakeStore) UpdateStage(ctx context.Context, id uuid.UUID, stage string, pipelineID, pipelineStageID *uuid.UUID) (domain.Lead, error) {
	return f.lead, nil
}

func (f *fakeStore) UpdateScore(ctx context.Context, id uuid.UUID, score int, overridden bool) (domain.Lead, error) {
	f.scoreWrites = append(f.scoreWrites, scoreWrite{score: score, overridden: overridden})
	updated := f.lead
	updated.Score = score
	updated.ScoreOverridden = overridden
	return updated, nil
}

func (f *fakeStore) TouchLastContact(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (f *fakeStore) SetLastMessageIntent(ctx context.Context, id uuid.UUID, intent *string) error {
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeStore) GetQualification(ctx context.Context, leadID uuid.UUID) (*domain.Qualification, error) {
	return f.qualification, nil
}

func (f *fakeStore) UpsertQualification(ctx context.Context, params repository.UpsertQualificationParams) (domain.Qualification, error) {
	return domain.Qualification{}, nil
}

func (f *fakeStore) AppendInteraction(ctx context.Context, params repository.AppendInteractionParams) (domain.Interaction, error) {
	return domain.Interaction{}, nil
}

func (f *fakeStore) ListInteractions(ctx context.Context, leadID uuid.UUID) ([]domain.Interaction, error) {
	return f.interactions, nil
}

func newTestService(store *fakeStore) *Service {
	log := logger.New("development")
	return New(store, nil, events.NewInMemoryBus(log), log)
}

func TestRecalculateScore_SkipsOverriddenLead(t *testing.T) {
	store := &fakeStore{
		lead: domain.Lead{ID: uuid.New(), Score: 90, ScoreOverridden: true},
		qualification: &domain.Qualification{
			Urgency: domain.UrgencyBuyToday,
		},
	}
	svc := newTestService(store)

	lead, err := svc.RecalculateScore(context.Background(), store.lead.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Score != 90 || !lead.ScoreOverridden {
		t.Fatalf("overridden score must survive an automatic recompute, got score=%d overridden=%v",
			lead.Score, lead.ScoreOverridden)
	}
	if len(store.scoreWrites) != 0 {
		t.Fatalf("expected no score writes, got %d", len(store.scoreWrites))
	}
}

func TestRecalculateScore_ForceClearsOverride(t *testing.T) {
	store := &fakeStore{
		lead: domain.Lead{ID: uuid.New(), Score: 90, ScoreOverridden: true},
		qualification: &domain.Qualification{
			Urgency: domain.UrgencyBuyToday,
		},
	}
	svc := newTestService(store)

	lead, err := svc.RecalculateScore(context.Background(), store.lead.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.scoreWrites) != 1 {
		t.Fatalf("expected exactly one score write, got %d", len(store.scoreWrites))
	}
	write := store.scoreWrites[0]
	if write.overridden {
		t.Fatal("explicit recalculation must clear the override flag")
	}
	if write.score != 40 {
		t.Fatalf("expected recomputed score 40 (urgency only), got %d", write.score)
	}
	if lead.ScoreOverridden {
		t.Fatal("returned lead must no longer be overridden")
	}
}

func TestRecalculateScore_NoWriteWhenUnchanged(t *testing.T) {
	store := &fakeStore{
		lead: domain.Lead{ID: uuid.New(), Score: 0},
	}
	svc := newTestService(store)

	if _, err := svc.RecalculateScore(context.Background(), store.lead.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.scoreWrites) != 0 {
		t.Fatalf("unchanged score must not be rewritten, got %d writes", len(store.scoreWrites))
	}
}

func TestOverrideScore_RejectsNegative(t *testing.T) {
	store := &fakeStore{lead: domain.Lead{ID: uuid.New()}}
	svc := newTestService(store)

	_, err := svc.OverrideScore(context.Background(), store.lead.ID, -5)
	if err == nil {
		t.Fatal("expected validation error for negative score")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.scoreWrites) != 0 {
		t.Fatalf("rejected override must not write, got %d writes", len(store.scoreWrites))
	}
}

func TestOverrideScore_MarksSticky(t *testing.T) {
	store := &fakeStore{lead: domain.Lead{ID: uuid.New(), Score: 10}}
	svc := newTestService(store)

	lead, err := svc.OverrideScore(context.Background(), store.lead.ID, 75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.scoreWrites) != 1 || !store.scoreWrites[0].overridden {
		t.Fatalf("override must persist with the sticky flag set, writes=%+v", store.scoreWrites)
	}
	if lead.Score != 75 || !lead.ScoreOverridden {
		t.Fatalf("unexpected lead after override: score=%d overridden=%v", lead.Score, lead.ScoreOverridden)
	}
}
