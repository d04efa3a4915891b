package entry_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
)

func makeGroup(t *testing.T, titles ...string) []entry.Entry {
	t.Helper()
	group := make([]entry.Entry, 0, len(titles))
	for i, title := range titles {
		group = append(group, entry.New(entry.KindWork, title, 1782).WithSortOrder(i))
	}
	return group
}

func titles(group []entry.Entry) []string {
	out := make([]string, len(group))
	for i, e := range group {
		out[i] = e.Title()
	}
	return out
}

func TestMoveToIndex(t *testing.T) {
	t.Parallel()

	t.Run("moves entry toward the front", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C", "D")

		out, err := entry.MoveToIndex(group, group[2].ID(), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B", "D"}, titles(out))
	})

	t.Run("moves entry toward the back", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C", "D")

		out, err := entry.MoveToIndex(group, group[0].ID(), 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "D", "A"}, titles(out))
	})

	t.Run("same index keeps order", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C")

		out, err := entry.MoveToIndex(group, group[1].ID(), 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, titles(out))
	})

	t.Run("preserves relative order of the rest", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C", "D", "E")

		out, err := entry.MoveToIndex(group, group[3].ID(), 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "D", "B", "C", "E"}, titles(out))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C")

		_, err := entry.MoveToIndex(group, group[2].ID(), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, titles(group))
	})

	t.Run("rejects out of range targets", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C")

		_, err := entry.MoveToIndex(group, group[0].ID(), -1)
		assert.ErrorIs(t, err, entry.ErrInvalidPosition)

		_, err = entry.MoveToIndex(group, group[0].ID(), 3)
		assert.ErrorIs(t, err, entry.ErrInvalidPosition)
	})

	t.Run("rejects unknown ids", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B")

		_, err := entry.MoveToIndex(group, uuid.New(), 0)
		assert.ErrorIs(t, err, entry.ErrNotFound)
	})

	t.Run("rejects any target in an empty group", func(t *testing.T) {
		t.Parallel()

		_, err := entry.MoveToIndex(nil, uuid.New(), 0)
		assert.ErrorIs(t, err, entry.ErrInvalidPosition)
	})
}

func TestRenumber(t *testing.T) {
	t.Parallel()

	t.Run("returns only changed entries", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C", "D")
		moved, err := entry.MoveToIndex(group, group[2].ID(), 0)
		require.NoError(t, err)

		updates := entry.Renumber(moved)
		require.Len(t, updates, 3)
		assert.Equal(t, entry.OrderUpdate{ID: group[2].ID(), SortOrder: 0}, updates[0])
		assert.Equal(t, entry.OrderUpdate{ID: group[0].ID(), SortOrder: 1}, updates[1])
		assert.Equal(t, entry.OrderUpdate{ID: group[1].ID(), SortOrder: 2}, updates[2])
	})

	t.Run("no updates for an already dense group", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C")

		assert.Empty(t, entry.Renumber(group))
	})

	t.Run("compacts gaps after a removal", func(t *testing.T) {
		t.Parallel()
		group := makeGroup(t, "A", "B", "C", "D")
		remaining := []entry.Entry{group[0], group[2], group[3]}

		updates := entry.Renumber(remaining)
		require.Len(t, updates, 2)
		assert.Equal(t, entry.OrderUpdate{ID: group[2].ID(), SortOrder: 1}, updates[0])
		assert.Equal(t, entry.OrderUpdate{ID: group[3].ID(), SortOrder: 2}, updates[1])
	})

	t.Run("empty group yields no updates", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, entry.Renumber(nil))
	})
}
