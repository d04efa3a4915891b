package entry

import (
	"github.com/google/uuid"
)

// MoveToIndex removes the entry with the given id from the group and
// reinserts it at the target index. The relative order of all other entries
// is preserved. The group is expected to be a complete year group sorted by
// current sort order.
func MoveToIndex(group []Entry, id uuid.UUID, target int) ([]Entry, error) {
	if target < 0 || target >= len(group) {
		return nil, ErrInvalidPosition
	}

	from := -1
	for i, e := range group {
		if e.ID() == id {
			from = i
			break
		}
	}
	if from == -1 {
		return nil, ErrNotFound
	}

	out := make([]Entry, 0, len(group))
	out = append(out, group[:from]...)
	out = append(out, group[from+1:]...)

	out = append(out, Entry{})
	copy(out[target+1:], out[target:])
	out[target] = group[from]
	return out, nil
}

// Renumber walks the sequence and assigns dense zero-based sort order values,
// returning an update for every entry whose value changed.
func Renumber(group []Entry) []OrderUpdate {
	updates := make([]OrderUpdate, 0, len(group))
	for i, e := range group {
		if e.SortOrder() != i {
			updates = append(updates, OrderUpdate{ID: e.ID(), SortOrder: i})
		}
	}
	return updates
}
