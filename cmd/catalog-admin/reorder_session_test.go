package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-works/koechel/modules/catalog/presentation/viewmodels"
)

type fakeAPI struct {
	entries      []viewmodels.EntryListItem
	listCalls    int
	reorderCalls int
	reorderErr   error
	onReorder    func()

	gotEntryID  string
	gotNewIndex int
	gotYear     int
	gotKind     string
}

func (f *fakeAPI) ListEntries(_ context.Context, _ viewDescriptor) ([]viewmodels.EntryListItem, error) {
	f.listCalls++
	out := make([]viewmodels.EntryListItem, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeAPI) Reorder(_ context.Context, entryID string, newIndex int, year int, kind string) ([]viewmodels.EntryListItem, error) {
	f.reorderCalls++
	f.gotEntryID = entryID
	f.gotNewIndex = newIndex
	f.gotYear = year
	f.gotKind = kind
	if f.onReorder != nil {
		f.onReorder()
	}
	if f.reorderErr != nil {
		return nil, f.reorderErr
	}

	group := make([]viewmodels.EntryListItem, 0, len(f.entries))
	var moved viewmodels.EntryListItem
	for _, item := range f.entries {
		if item.Month != nil || item.Day != nil || item.Year != year {
			continue
		}
		if item.ID == entryID {
			moved = item
			continue
		}
		group = append(group, item)
	}
	group = append(group[:newIndex], append([]viewmodels.EntryListItem{moved}, group[newIndex:]...)...)
	for i := range group {
		group[i].SortOrder = i
	}
	f.entries = group
	return group, nil
}

func item(id string, year, order int) viewmodels.EntryListItem {
	return viewmodels.EntryListItem{ID: id, Kind: "work", Title: "Entry " + id, Year: year, SortOrder: order}
}

func datedItem(id string, year, month, order int) viewmodels.EntryListItem {
	m := month
	it := item(id, year, order)
	it.Month = &m
	return it
}

func testView(year int) viewDescriptor {
	y := year
	return viewDescriptor{Kind: "work", Year: &y, SortBy: "year", SortDesc: true}
}

func ids(items []viewmodels.EntryListItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestReorderSession_MoveSendsSingleRequest(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{entries: []viewmodels.EntryListItem{
		item("a", 1782, 0),
		item("b", 1782, 1),
		item("c", 1782, 2),
		item("d", 1782, 3),
	}}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))

	require.NoError(t, session.Move(context.Background(), "c", "a"))

	assert.Equal(t, 1, api.reorderCalls)
	assert.Equal(t, "c", api.gotEntryID)
	assert.Equal(t, 0, api.gotNewIndex)
	assert.Equal(t, 1782, api.gotYear)
	assert.Equal(t, "work", api.gotKind)
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(session.Entries()))
	for i, it := range session.Entries() {
		assert.Equal(t, i, it.SortOrder)
	}
	assert.Equal(t, stateSynced, session.State())
}

func TestReorderSession_SelfDropIsNoOp(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{entries: []viewmodels.EntryListItem{
		item("a", 1782, 0),
		item("b", 1782, 1),
	}}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))

	require.NoError(t, session.Move(context.Background(), "a", "a"))

	assert.Zero(t, api.reorderCalls)
	assert.Equal(t, []string{"a", "b"}, ids(session.Entries()))
}

func TestReorderSession_DatedTargetIsNoOp(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{entries: []viewmodels.EntryListItem{
		item("a", 1782, 0),
		item("b", 1782, 1),
		datedItem("dated", 1782, 3, 0),
	}}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))

	require.NoError(t, session.Move(context.Background(), "a", "dated"))
	require.NoError(t, session.Move(context.Background(), "dated", "a"))

	assert.Zero(t, api.reorderCalls)
}

func TestReorderSession_GateRefusesFilteredView(t *testing.T) {
	t.Parallel()

	views := []viewDescriptor{
		func() viewDescriptor { v := testView(1782); v.Query = "sym"; return v }(),
		func() viewDescriptor { v := testView(1782); v.Genre = "opera"; return v }(),
		func() viewDescriptor { v := testView(1782); v.SortBy = "title"; return v }(),
		func() viewDescriptor { v := testView(1782); v.SortDesc = false; return v }(),
		func() viewDescriptor { v := testView(1782); v.Year = nil; return v }(),
	}

	for _, view := range views {
		api := &fakeAPI{entries: []viewmodels.EntryListItem{
			item("a", 1782, 0),
			item("b", 1782, 1),
		}}
		session := newReorderSession(api, view, nil)
		require.NoError(t, session.Load(context.Background()))

		err := session.Move(context.Background(), "a", "b")
		require.ErrorIs(t, err, errReorderLocked)
		assert.Zero(t, api.reorderCalls)
	}
}

func TestReorderSession_FailureRestoresAndRefetches(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		entries: []viewmodels.EntryListItem{
			item("a", 1782, 0),
			item("b", 1782, 1),
			item("c", 1782, 2),
		},
		reorderErr: errors.New("boom"),
	}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))
	listCallsBefore := api.listCalls

	err := session.Move(context.Background(), "c", "a")
	require.Error(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, ids(session.Entries()))
	assert.Equal(t, listCallsBefore+1, api.listCalls)
	assert.Equal(t, stateSynced, session.State())
	assert.Equal(t, exitReorder, exitCode(err))
}

func TestReorderSession_MoveAfterFailureIsAccepted(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		entries: []viewmodels.EntryListItem{
			item("a", 1782, 0),
			item("b", 1782, 1),
		},
		reorderErr: errors.New("boom"),
	}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))

	require.Error(t, session.Move(context.Background(), "b", "a"))

	api.reorderErr = nil
	require.NoError(t, session.Move(context.Background(), "b", "a"))
	assert.Equal(t, []string{"b", "a"}, ids(session.Entries()))
}

func TestReorderSession_RefusesMoveWhileWritePending(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{entries: []viewmodels.EntryListItem{
		item("a", 1782, 0),
		item("b", 1782, 1),
	}}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))

	var nestedErr error
	api.onReorder = func() {
		nestedErr = session.Move(context.Background(), "a", "b")
	}

	require.NoError(t, session.Move(context.Background(), "b", "a"))
	require.ErrorIs(t, nestedErr, errMovePending)
	assert.Equal(t, 1, api.reorderCalls)
}

func TestReorderSession_OtherYearEntriesUntouched(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{entries: []viewmodels.EntryListItem{
		item("a", 1782, 0),
		item("b", 1782, 1),
		item("x", 1783, 0),
	}}
	session := newReorderSession(api, testView(1782), nil)
	require.NoError(t, session.Load(context.Background()))

	require.NoError(t, session.Move(context.Background(), "a", "x"))
	assert.Zero(t, api.reorderCalls)

	require.NoError(t, session.Move(context.Background(), "b", "a"))
	var other viewmodels.EntryListItem
	for _, it := range session.Entries() {
		if it.ID == "x" {
			other = it
		}
	}
	assert.Equal(t, 1783, other.Year)
	assert.Equal(t, 0, other.SortOrder)
}
