package entry

import (
	"time"

	"github.com/google/uuid"
)

type CreatedEvent struct {
	Entry      Entry
	OccurredAt time.Time
}

type UpdatedEvent struct {
	Entry      Entry
	OccurredAt time.Time
}

type DeletedEvent struct {
	ID         uuid.UUID
	Kind       Kind
	Year       int
	OccurredAt time.Time
}

// ReorderedEvent is published after a year group has been renumbered.
type ReorderedEvent struct {
	Kind       Kind
	Year       int
	MovedID    uuid.UUID
	NewIndex   int
	Group      []Entry
	OccurredAt time.Time
}
