package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/modules/catalog/infrastructure/persistence"
	"github.com/amadeus-works/koechel/modules/catalog/services"
	"github.com/amadeus-works/koechel/pkg/eventbus"
)

func intPtr(v int) *int { return &v }

func seedGroup(t *testing.T, repo *persistence.InmemCatalogRepository, kind entry.Kind, year int, titles ...string) []entry.Entry {
	t.Helper()
	out := make([]entry.Entry, 0, len(titles))
	for i, title := range titles {
		created, err := repo.Create(context.Background(), entry.New(kind, title, year).WithSortOrder(i))
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func groupTitles(group []entry.Entry) []string {
	out := make([]string, len(group))
	for i, e := range group {
		out[i] = e.Title()
	}
	return out
}

func requireDenseOrders(t *testing.T, group []entry.Entry) {
	t.Helper()
	for i, e := range group {
		require.Equal(t, i, e.SortOrder(), "entry %q at position %d", e.Title(), i)
	}
}

func TestReorderService_MoveWithinYearGroup(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group := seedGroup(t, repo, entry.KindWork, 1782, "A", "B", "C", "D")
	svc := services.NewReorderService(repo, nil)

	result, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID:  group[2].ID(),
		Kind:     entry.KindWork,
		Year:     1782,
		NewIndex: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D"}, groupTitles(result))
	requireDenseOrders(t, result)

	persisted, err := repo.YearGroup(context.Background(), entry.KindWork, 1782)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D"}, groupTitles(persisted))
	requireDenseOrders(t, persisted)
}

func TestReorderService_SequentialMoves(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group := seedGroup(t, repo, entry.KindWork, 1782, "A", "B", "C", "D")
	svc := services.NewReorderService(repo, nil)

	_, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID: group[2].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 0,
	})
	require.NoError(t, err)

	result, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID: group[0].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "D", "A"}, groupTitles(result))
	requireDenseOrders(t, result)
}

func TestReorderService_NoOpMovePersistsNothing(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group := seedGroup(t, repo, entry.KindWork, 1782, "A", "B", "C")
	bus := eventbus.NewEventPublisher(nil)
	fired := 0
	bus.Subscribe(func(entry.ReorderedEvent) { fired++ })
	svc := services.NewReorderService(repo, bus)

	// Injected failure proves no write is attempted for a same-position move.
	repo.UpdateOrdersErr = errors.New("should not be called")

	result, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID: group[1].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, groupTitles(result))
	assert.Zero(t, fired)
}

func TestReorderService_OtherYearsUntouched(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group82 := seedGroup(t, repo, entry.KindWork, 1782, "A", "B")
	seedGroup(t, repo, entry.KindWork, 1783, "X", "Y")
	seedGroup(t, repo, entry.KindChronicle, 1782, "Arrival", "Departure")
	svc := services.NewReorderService(repo, nil)

	_, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID: group82[1].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 0,
	})
	require.NoError(t, err)

	other, err := repo.YearGroup(context.Background(), entry.KindWork, 1783)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, groupTitles(other))
	requireDenseOrders(t, other)

	chronicle, err := repo.YearGroup(context.Background(), entry.KindChronicle, 1782)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arrival", "Departure"}, groupTitles(chronicle))
	requireDenseOrders(t, chronicle)
}

func TestReorderService_Validation(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group := seedGroup(t, repo, entry.KindWork, 1782, "A", "B", "C")
	dated, err := repo.Create(context.Background(),
		entry.New(entry.KindWork, "Premiere", 1782).WithDate(intPtr(7), intPtr(16)))
	require.NoError(t, err)
	svc := services.NewReorderService(repo, nil)

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: group[0].ID(), Kind: "symphony", Year: 1782, NewIndex: 0,
		})
		assert.ErrorIs(t, err, entry.ErrInvalidKind)
	})

	t.Run("unknown entry", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: uuid.New(), Kind: entry.KindWork, Year: 1782, NewIndex: 0,
		})
		assert.ErrorIs(t, err, entry.ErrNotFound)
	})

	t.Run("kind mismatch reads as not found", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: group[0].ID(), Kind: entry.KindChronicle, Year: 1782, NewIndex: 0,
		})
		assert.ErrorIs(t, err, entry.ErrNotFound)
	})

	t.Run("year mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: group[0].ID(), Kind: entry.KindWork, Year: 1781, NewIndex: 0,
		})
		assert.ErrorIs(t, err, entry.ErrYearMismatch)
	})

	t.Run("dated entry is not reorderable", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: dated.ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 0,
		})
		assert.ErrorIs(t, err, entry.ErrNotReorderable)
	})

	t.Run("target beyond group", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: group[0].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 3,
		})
		assert.ErrorIs(t, err, entry.ErrInvalidPosition)
	})

	t.Run("negative target", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Reorder(context.Background(), services.ReorderCommand{
			EntryID: group[0].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: -1,
		})
		assert.ErrorIs(t, err, entry.ErrInvalidPosition)
	})
}

func TestReorderService_PersistenceFailureLeavesGroupIntact(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group := seedGroup(t, repo, entry.KindWork, 1782, "A", "B", "C", "D")
	bus := eventbus.NewEventPublisher(nil)
	fired := 0
	bus.Subscribe(func(entry.ReorderedEvent) { fired++ })
	svc := services.NewReorderService(repo, bus)

	repo.UpdateOrdersErr = errors.New("connection reset")

	_, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID: group[3].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 0,
	})
	require.Error(t, err)
	assert.Zero(t, fired)

	persisted, err := repo.YearGroup(context.Background(), entry.KindWork, 1782)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, groupTitles(persisted))
	requireDenseOrders(t, persisted)
}

func TestReorderService_PublishesReorderedEvent(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemCatalogRepository()
	group := seedGroup(t, repo, entry.KindWork, 1782, "A", "B", "C")
	bus := eventbus.NewEventPublisher(nil)
	var got entry.ReorderedEvent
	bus.Subscribe(func(ev entry.ReorderedEvent) { got = ev })
	svc := services.NewReorderService(repo, bus)

	_, err := svc.Reorder(context.Background(), services.ReorderCommand{
		EntryID: group[2].ID(), Kind: entry.KindWork, Year: 1782, NewIndex: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, group[2].ID(), got.MovedID)
	assert.Equal(t, entry.KindWork, got.Kind)
	assert.Equal(t, 1782, got.Year)
	assert.Equal(t, 0, got.NewIndex)
	assert.Equal(t, []string{"C", "A", "B"}, groupTitles(got.Group))
}
