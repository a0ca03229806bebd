package pipeline

import (
	"errors"
	"testing"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func testStages(pipelineID uuid.UUID) []domain.Stage {
	return []domain.Stage{
		{ID: uuid.New(), PipelineID: pipelineID, Key: "proposal", Name: "Proposta", OrderIndex: 2},
		{ID: uuid.New(), PipelineID: pipelineID, Key: "new", Name: "Novo", OrderIndex: 0},
		{ID: uuid.New(), PipelineID: pipelineID, Key: "qualifying", Name: "Qualificando", OrderIndex: 1},
	}
}

func TestSortStages_OrdersByOrderIndexWithoutMutating(t *testing.T) {
	stages := testStages(uuid.New())
	firstInput := stages[0].Key

	sorted := SortStages(stages)

	if len(sorted) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(sorted))
	}
	for i, want := range []string{"new", "qualifying", "proposal"} {
		if sorted[i].Key != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, sorted[i].Key)
		}
	}
	if stages[0].Key != firstInput {
		t.Fatal("input slice must not be reordered")
	}
}

func TestResolveStage_PipelineReferenceWinsOverFlatKey(t *testing.T) {
	stages := testStages(uuid.New())
	target := stages[0] // proposal
	lead := domain.Lead{Stage: "new", PipelineStageID: &target.ID}

	stage, ok := ResolveStage(lead, stages)
	if !ok || stage.ID != target.ID {
		t.Fatalf("expected pipeline stage reference to win, got %q", stage.Key)
	}
}

func TestResolveStage_FlatKeyFallback(t *testing.T) {
	stages := testStages(uuid.New())
	lead := domain.Lead{Stage: "qualifying"}

	stage, ok := ResolveStage(lead, stages)
	if !ok || stage.Key != "qualifying" {
		t.Fatalf("expected flat key match, got %q", stage.Key)
	}
}

func TestResolveStage_UnknownFallsBackToFirstStage(t *testing.T) {
	stages := testStages(uuid.New())
	lead := domain.Lead{Stage: "archived"}

	stage, ok := ResolveStage(lead, stages)
	if !ok || stage.Key != "new" {
		t.Fatalf("expected first stage fallback, got %q", stage.Key)
	}
}

func TestResolveStage_Idempotent(t *testing.T) {
	stages := testStages(uuid.New())
	lead := domain.Lead{Stage: "proposal"}

	first, _ := ResolveStage(lead, stages)
	second, _ := ResolveStage(lead, stages)
	if first.ID != second.ID {
		t.Fatalf("resolution must be stable, got %q then %q", first.Key, second.Key)
	}
}

func TestMoveToStage_SynchronizesBothStageKeys(t *testing.T) {
	pipelineID := uuid.New()
	stages := testStages(pipelineID)
	target := stages[0] // proposal
	lead := domain.Lead{ID: uuid.New(), Stage: "new"}

	moved, err := MoveToStage(lead, target.ID, stages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.Stage != "proposal" {
		t.Fatalf("legacy key not synchronized, got %q", moved.Stage)
	}
	if moved.PipelineStageID == nil || *moved.PipelineStageID != target.ID {
		t.Fatal("pipeline stage reference not synchronized")
	}
	if moved.PipelineID == nil || *moved.PipelineID != pipelineID {
		t.Fatal("pipeline reference not synchronized")
	}
	if lead.Stage != "new" || lead.PipelineStageID != nil {
		t.Fatal("input lead must not be mutated")
	}
}

func TestMoveToStage_DefaultStageClearsPipelineReference(t *testing.T) {
	stages := DefaultStages()
	stageID := uuid.New()
	lead := domain.Lead{Stage: "new", PipelineStageID: &stageID}

	var won domain.Stage
	for _, s := range stages {
		if s.Key == "won" {
			won = s
		}
	}

	moved, err := MoveToStage(lead, won.ID, stages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.Stage != "won" || moved.PipelineStageID != nil {
		t.Fatalf("expected flat move, got stage %q", moved.Stage)
	}
}

func TestMoveToStage_RejectsUnknownTarget(t *testing.T) {
	stages := testStages(uuid.New())
	lead := domain.Lead{ID: uuid.New(), Stage: "new"}

	_, err := MoveToStage(lead, uuid.New(), stages)
	if !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
	if lead.Stage != "new" {
		t.Fatal("failed move must not change the lead")
	}
}

func TestGroupByStage_NeverDropsALead(t *testing.T) {
	stages := testStages(uuid.New())
	leads := []domain.Lead{
		{ID: uuid.New(), Stage: "new"},
		{ID: uuid.New(), Stage: "proposal"},
		{ID: uuid.New(), Stage: "does-not-exist"},
		{ID: uuid.New()},
	}

	grouped := GroupByStage(leads, stages)

	total := 0
	for _, bucket := range grouped {
		total += len(bucket)
	}
	if total != len(leads) {
		t.Fatalf("expected %d leads across buckets, got %d", len(leads), total)
	}

	// Unresolvable leads land in the first stage.
	first := SortStages(stages)[0]
	if len(grouped[first.ID]) != 3 {
		t.Fatalf("expected 3 leads in first stage, got %d", len(grouped[first.ID]))
	}
}

func TestGroupByStage_EmptyStageListBucketsUnderNil(t *testing.T) {
	leads := []domain.Lead{
		{ID: uuid.New(), Stage: "new"},
		{ID: uuid.New(), Stage: "proposal"},
	}

	grouped := GroupByStage(leads, nil)

	if len(grouped) != 1 {
		t.Fatalf("expected only the nil bucket, got %d buckets", len(grouped))
	}
	bucket := grouped[uuid.Nil]
	if len(bucket) != len(leads) {
		t.Fatalf("expected all %d leads under uuid.Nil, got %d", len(leads), len(bucket))
	}
	if bucket[0].ID != leads[0].ID || bucket[1].ID != leads[1].ID {
		t.Fatal("nil bucket must preserve input order")
	}
}

func TestGroupByStage_PreservesInputOrderWithinBucket(t *testing.T) {
	stages := testStages(uuid.New())
	a := domain.Lead{ID: uuid.New(), Stage: "new"}
	b := domain.Lead{ID: uuid.New(), Stage: "new"}
	c := domain.Lead{ID: uuid.New(), Stage: "new"}

	grouped := GroupByStage([]domain.Lead{a, b, c}, stages)
	first := SortStages(stages)[0]
	bucket := grouped[first.ID]

	if len(bucket) != 3 || bucket[0].ID != a.ID || bucket[1].ID != b.ID || bucket[2].ID != c.ID {
		t.Fatal("bucket must preserve input order")
	}
}

func TestDefaultStages_StableIDs(t *testing.T) {
	first := DefaultStages()
	second := DefaultStages()

	if len(first) != 6 {
		t.Fatalf("expected 6 default stages, got %d", len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("default stage IDs must be deterministic, mismatch at %d", i)
		}
	}
}
