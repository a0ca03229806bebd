// Package pipeline implements the stage model used by the kanban board and
// the lead detail views. All functions are pure: they take already-fetched
// stage lists and lead records and never touch storage.
//
// Stages carry no transition graph; any stage may move to any other stage.
// Stricter transition policies belong in a check layered in front of
// MoveToStage.
package pipeline

import (
	"errors"
	"sort"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// ErrInvalidStage is returned by MoveToStage when the target stage does not
// belong to the supplied stage list. Callers must treat the move as a no-op
// and revert any optimistic update.
var ErrInvalidStage = errors.New("stage does not belong to pipeline")

// Default flat stage keys, in board order, used by leads that predate
// pipeline adoption and carry only the legacy stage column.
var defaultStageKeys = []struct {
	key  string
	name string
}{
	{"new", "Novo"},
	{"qualifying", "Qualificando"},
	{"proposal", "Proposta"},
	{"negotiation", "Negociação"},
	{"won", "Ganho"},
	{"lost", "Perdido"},
}

// DefaultStages returns the flat stage set used when a lead has no pipeline
// assigned. Stage IDs are derived deterministically from the key so that
// grouping output is stable across calls and processes.
func DefaultStages() []domain.Stage {
	stages := make([]domain.Stage, 0, len(defaultStageKeys))
	for i, s := range defaultStageKeys {
		stages = append(stages, domain.Stage{
			ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte("conectaleads:stage:"+s.key)),
			Key:        s.key,
			Name:       s.name,
			OrderIndex: i,
		})
	}
	return stages
}

// SortStages returns a fresh slice ordered by OrderIndex ascending. The input
// is never mutated; every call reflects the data it was given.
func SortStages(stages []domain.Stage) []domain.Stage {
	sorted := append([]domain.Stage(nil), stages...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	return sorted
}

// ResolveStage finds the stage a lead currently occupies. Resolution order:
// the lead's pipeline stage reference, then the legacy flat key, then the
// first stage of the board. The fallback chain exists because leads may
// predate pipeline adoption. Returns false only when stages is empty.
func ResolveStage(lead domain.Lead, stages []domain.Stage) (domain.Stage, bool) {
	sorted := SortStages(stages)
	if len(sorted) == 0 {
		return domain.Stage{}, false
	}

	if lead.PipelineStageID != nil {
		for _, stage := range sorted {
			if stage.ID == *lead.PipelineStageID {
				return stage, true
			}
		}
	}

	if lead.Stage != "" {
		for _, stage := range sorted {
			if stage.Key == lead.Stage {
				return stage, true
			}
		}
	}

	return sorted[0], true
}

// MoveToStage returns a copy of the lead placed on the target stage, with the
// pipeline stage reference and the legacy flat key kept in lockstep so both
// kinds of consumers agree. It fails closed with ErrInvalidStage when the
// target is not in the supplied list; the input lead is never mutated.
func MoveToStage(lead domain.Lead, targetStageID uuid.UUID, stages []domain.Stage) (domain.Lead, error) {
	for _, stage := range stages {
		if stage.ID != targetStageID {
			continue
		}

		moved := lead
		moved.Stage = stage.Key
		if stage.PipelineID == uuid.Nil {
			// Flat default stage: the lead stays pipeline-less.
			moved.PipelineStageID = nil
		} else {
			stageID := stage.ID
			pipelineID := stage.PipelineID
			moved.PipelineStageID = &stageID
			moved.PipelineID = &pipelineID
		}
		return moved, nil
	}

	return domain.Lead{}, ErrInvalidStage
}

// GroupByStage partitions leads into per-stage buckets for kanban rendering.
// Leads whose stage cannot be resolved land in the first stage, so no lead is
// ever dropped: with an empty stage list every lead lands under uuid.Nil.
// Order within a bucket preserves the input order; the caller decides the
// sort.
func GroupByStage(leads []domain.Lead, stages []domain.Stage) map[uuid.UUID][]domain.Lead {
	sorted := SortStages(stages)
	grouped := make(map[uuid.UUID][]domain.Lead, len(sorted))
	for _, stage := range sorted {
		grouped[stage.ID] = []domain.Lead{}
	}
	if len(sorted) == 0 {
		if len(leads) > 0 {
			grouped[uuid.Nil] = append([]domain.Lead(nil), leads...)
		}
		return grouped
	}

	for _, lead := range leads {
		stage, _ := ResolveStage(lead, sorted)
		grouped[stage.ID] = append(grouped[stage.ID], lead)
	}
	return grouped
}
