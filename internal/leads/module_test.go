package leads

import (
	"context"
	"testing"

	"conectaleads_backend/internal/events"
	platformevents "conectaleads_backend/platform/events"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"

	"github.com/google/uuid"
)

type enqueuedRecalc struct {
	leadID uuid.UUID
	force  bool
}

type fakeScoreQueue struct {
	enqueued []enqueuedRecalc
}

func (q *fakeScoreQueue) EnqueueScoreRecalculate(ctx context.Context, leadID uuid.UUID, force bool) error {
	q.enqueued = append(q.enqueued, enqueuedRecalc{leadID: leadID, force: force})
	return nil
}

// Recomputes triggered by domain events must go through the worker queue, not
// run on the publishing goroutine. The queue absorbs the event before any
// repository call, so no database is needed here.
func TestModule_EventSubscriptionsEnqueueRecalculation(t *testing.T) {
	log := logger.New("development")
	bus := platformevents.NewInMemoryBus(log)
	queue := &fakeScoreQueue{}

	NewModule(nil, nil, queue, bus, validator.New(), log)

	leadID := uuid.New()
	published := []events.Event{
		events.InteractionRecorded{BaseEvent: events.NewBaseEvent(), LeadID: leadID},
		events.LeadQualified{BaseEvent: events.NewBaseEvent(), LeadID: leadID},
	}
	for _, event := range published {
		if err := bus.PublishSync(context.Background(), event); err != nil {
			t.Fatalf("publish %s: %v", event.EventName(), err)
		}
	}

	if len(queue.enqueued) != 2 {
		t.Fatalf("expected 2 enqueued recalculations, got %d", len(queue.enqueued))
	}
	for i, got := range queue.enqueued {
		if got.leadID != leadID {
			t.Fatalf("enqueue %d: expected lead %s, got %s", i, leadID, got.leadID)
		}
		if got.force {
			t.Fatalf("enqueue %d: event-driven recompute must not force past a manual override", i)
		}
	}
}
