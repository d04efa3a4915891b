package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/pkg/eventbus"
)

// ReorderCommand is one drag gesture: move the entry to the given zero-based
// index within its year group's reorderable sequence.
type ReorderCommand struct {
	EntryID  uuid.UUID
	Kind     entry.Kind
	Year     int
	NewIndex int
}

// ReorderService renumbers the manual sort order of a year group. All writes
// it issues belong to the caller's transaction, so the renumbering is applied
// as a single unit or not at all.
type ReorderService struct {
	repo      entry.Repository
	publisher eventbus.EventBus
}

func NewReorderService(repo entry.Repository, publisher eventbus.EventBus) *ReorderService {
	return &ReorderService{repo: repo, publisher: publisher}
}

// Reorder validates the command, moves the entry to its target index and
// persists fresh dense zero-based sort order values for every entry whose
// position changed. It returns the full renumbered year group so callers can
// reconcile their local state.
//
// The server re-validates everything the client-side gate already checked:
// the client is never trusted alone.
func (s *ReorderService) Reorder(ctx context.Context, cmd ReorderCommand) ([]entry.Entry, error) {
	if !cmd.Kind.Valid() {
		return nil, entry.ErrInvalidKind
	}

	moved, err := s.repo.GetByID(ctx, cmd.EntryID)
	if err != nil {
		return nil, err
	}
	if moved.Kind() != cmd.Kind {
		return nil, entry.ErrNotFound
	}
	if moved.Year() != cmd.Year {
		return nil, entry.ErrYearMismatch
	}
	if !moved.Reorderable() {
		return nil, entry.ErrNotReorderable
	}

	group, err := s.repo.YearGroup(ctx, cmd.Kind, cmd.Year)
	if err != nil {
		return nil, err
	}

	resequenced, err := entry.MoveToIndex(group, cmd.EntryID, cmd.NewIndex)
	if err != nil {
		return nil, err
	}

	updates := entry.Renumber(resequenced)
	if len(updates) > 0 {
		if err := s.repo.UpdateOrders(ctx, updates); err != nil {
			return nil, err
		}
	}

	result := make([]entry.Entry, 0, len(resequenced))
	for i, e := range resequenced {
		result = append(result, e.WithSortOrder(i))
	}

	if s.publisher != nil && len(updates) > 0 {
		s.publisher.Publish(entry.ReorderedEvent{
			Kind:       cmd.Kind,
			Year:       cmd.Year,
			MovedID:    cmd.EntryID,
			NewIndex:   cmd.NewIndex,
			Group:      result,
			OccurredAt: time.Now(),
		})
	}

	return result, nil
}
