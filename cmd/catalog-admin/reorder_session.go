package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/modules/catalog/presentation/viewmodels"
)

// viewDescriptor captures the list view the admin is looking at. The reorder
// gate is evaluated against it before any move is attempted.
type viewDescriptor struct {
	Kind     string
	Year     *int
	Query    string
	Genre    string
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

func (v viewDescriptor) gate() entry.ViewState {
	return entry.ViewState{
		SortBy:   entry.SortField(v.SortBy),
		SortDesc: v.SortDesc,
		Year:     v.Year,
		Query:    v.Query,
		Genre:    v.Genre,
	}
}

var (
	errMovePending   = errors.New("a reorder is already in flight")
	errReorderLocked = errors.New("reordering is not available in this view")
)

type sessionState int

const (
	stateSynced sessionState = iota
	statePendingWrite
	stateReverting
)

type reorderAPI interface {
	ListEntries(ctx context.Context, view viewDescriptor) ([]viewmodels.EntryListItem, error)
	Reorder(ctx context.Context, entryID string, newIndex int, year int, kind string) ([]viewmodels.EntryListItem, error)
}

// reorderSession holds the client-side copy of the entry list and applies
// moves optimistically: the list is rearranged locally first, then a single
// reorder request is sent. On success the server's renumbered group replaces
// the optimistic guess; on failure the pre-move snapshot is restored and the
// list refetched.
type reorderSession struct {
	api     reorderAPI
	view    viewDescriptor
	log     *logrus.Logger
	entries []viewmodels.EntryListItem
	state   sessionState
}

func newReorderSession(api reorderAPI, view viewDescriptor, log *logrus.Logger) *reorderSession {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &reorderSession{api: api, view: view, log: log, state: stateSynced}
}

func (s *reorderSession) Load(ctx context.Context) error {
	items, err := s.api.ListEntries(ctx, s.view)
	if err != nil {
		return err
	}
	s.entries = items
	s.state = stateSynced
	return nil
}

func (s *reorderSession) Entries() []viewmodels.EntryListItem {
	out := make([]viewmodels.EntryListItem, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *reorderSession) State() sessionState {
	return s.state
}

func (s *reorderSession) reorderable(item viewmodels.EntryListItem) bool {
	return s.view.gate().Eligible(item.Year, item.Month, item.Day)
}

// subsetIndex returns the position of id within the reorderable subset of the
// current list, or -1 when the entry is absent or not eligible.
func (s *reorderSession) subsetIndex(id string) int {
	idx := 0
	for _, item := range s.entries {
		if !s.reorderable(item) {
			continue
		}
		if item.ID == id {
			return idx
		}
		idx++
	}
	return -1
}

// Move drags the entry dragID onto the position of dropID. Drops onto the
// entry itself, onto dated entries or onto entries outside the selected year
// are silently ignored. Only one move may be in flight at a time; a second
// call while the first is pending is refused.
func (s *reorderSession) Move(ctx context.Context, dragID, dropID string) error {
	if s.state != stateSynced {
		return withCode(exitReorder, errMovePending)
	}
	if !s.view.gate().ReorderAllowed() {
		return withCode(exitValidation, errReorderLocked)
	}
	if dragID == dropID {
		return nil
	}

	dragIdx := s.subsetIndex(dragID)
	dropIdx := s.subsetIndex(dropID)
	if dragIdx < 0 || dropIdx < 0 {
		return nil
	}

	snapshot := make([]viewmodels.EntryListItem, len(s.entries))
	copy(snapshot, s.entries)

	s.applyLocalMove(dragID, dropIdx)
	s.state = statePendingWrite
	s.log.WithFields(logrus.Fields{
		"entry-id": dragID,
		"from":     dragIdx,
		"to":       dropIdx,
	}).Debug("applied optimistic move")

	group, err := s.api.Reorder(ctx, dragID, dropIdx, *s.view.Year, s.view.Kind)
	if err != nil {
		s.state = stateReverting
		s.entries = snapshot
		s.log.WithError(err).Warn("reorder rejected, restoring previous order")
		if loadErr := s.Load(ctx); loadErr != nil {
			// Keep the restored snapshot when the refetch also fails.
			s.state = stateSynced
		}
		return withCode(exitReorder, fmt.Errorf("move %s: %w", dragID, err))
	}

	s.adoptServerGroup(group)
	s.state = stateSynced
	return nil
}

// applyLocalMove rearranges the reorderable subset in place so dragID lands
// at targetIdx, renumbering the subset's sort orders densely from zero. The
// relative positions of dated entries are untouched.
func (s *reorderSession) applyLocalMove(dragID string, targetIdx int) {
	subset := make([]viewmodels.EntryListItem, 0, len(s.entries))
	for _, item := range s.entries {
		if s.reorderable(item) {
			subset = append(subset, item)
		}
	}

	var moved viewmodels.EntryListItem
	rest := make([]viewmodels.EntryListItem, 0, len(subset)-1)
	for _, item := range subset {
		if item.ID == dragID {
			moved = item
			continue
		}
		rest = append(rest, item)
	}
	reordered := make([]viewmodels.EntryListItem, 0, len(subset))
	reordered = append(reordered, rest[:targetIdx]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[targetIdx:]...)
	for i := range reordered {
		reordered[i].SortOrder = i
	}

	next := 0
	for i, item := range s.entries {
		if !s.reorderable(item) {
			continue
		}
		s.entries[i] = reordered[next]
		next++
	}
}

// adoptServerGroup replaces the reorderable slots of the local list with the
// authoritative group returned by the server, keeping dated entries in place.
func (s *reorderSession) adoptServerGroup(group []viewmodels.EntryListItem) {
	next := 0
	for i, item := range s.entries {
		if !s.reorderable(item) {
			continue
		}
		if next < len(group) {
			s.entries[i] = group[next]
			next++
		}
	}
}
