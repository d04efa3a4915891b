package persistence

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
)

// InmemCatalogRepository is a thread-safe in-memory implementation used by
// service and controller tests. UpdateOrders is all-or-nothing: it validates
// every update before applying any, and the injectable UpdateOrdersErr hook
// simulates a persistence failure without partial writes.
type InmemCatalogRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry.Entry

	UpdateOrdersErr error
}

func NewInmemCatalogRepository() *InmemCatalogRepository {
	return &InmemCatalogRepository{
		entries: make(map[uuid.UUID]entry.Entry),
	}
}

func (r *InmemCatalogRepository) GetPaginated(_ context.Context, params *entry.FindParams) ([]entry.Entry, int64, error) {
	if params == nil {
		params = &entry.FindParams{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entry.Entry
	for _, e := range r.entries {
		if params.Kind != "" && e.Kind() != params.Kind {
			continue
		}
		if params.Year != nil && e.Year() != *params.Year {
			continue
		}
		if q := strings.TrimSpace(params.Q); q != "" && !strings.Contains(strings.ToLower(e.Title()), strings.ToLower(q)) {
			continue
		}
		if g := strings.TrimSpace(params.Genre); g != "" && !strings.EqualFold(e.Genre(), g) {
			continue
		}
		matched = append(matched, e)
	}

	sortEntries(matched, params)
	total := int64(len(matched))

	if params.Offset > 0 {
		if params.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[params.Offset:]
		}
	}
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	return matched, total, nil
}

func (r *InmemCatalogRepository) GetByID(_ context.Context, id uuid.UUID) (entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, found := r.entries[id]
	if !found {
		return entry.Entry{}, entry.ErrNotFound
	}
	return e, nil
}

func (r *InmemCatalogRepository) Create(_ context.Context, e entry.Entry) (entry.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	hydrated := entry.Hydrate(
		e.ID(), e.Kind(), e.Title(), e.Genre(), e.Note(), e.KoechelNo(),
		e.Year(), e.Month(), e.Day(), e.SortOrder(), now, now,
	)
	r.entries[hydrated.ID()] = hydrated
	return hydrated, nil
}

func (r *InmemCatalogRepository) Update(_ context.Context, e entry.Entry) (entry.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, found := r.entries[e.ID()]
	if !found {
		return entry.Entry{}, entry.ErrNotFound
	}
	updated := entry.Hydrate(
		e.ID(), e.Kind(), e.Title(), e.Genre(), e.Note(), e.KoechelNo(),
		e.Year(), e.Month(), e.Day(), e.SortOrder(), existing.CreatedAt(), time.Now(),
	)
	r.entries[updated.ID()] = updated
	return updated, nil
}

func (r *InmemCatalogRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.entries[id]; !found {
		return entry.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *InmemCatalogRepository) YearGroup(_ context.Context, kind entry.Kind, year int) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var group []entry.Entry
	for _, e := range r.entries {
		if e.Kind() == kind && e.Year() == year && e.Reorderable() {
			group = append(group, e)
		}
	}
	sort.Slice(group, func(i, j int) bool {
		if group[i].SortOrder() != group[j].SortOrder() {
			return group[i].SortOrder() < group[j].SortOrder()
		}
		return group[i].CreatedAt().Before(group[j].CreatedAt())
	})
	return group, nil
}

func (r *InmemCatalogRepository) UpdateOrders(_ context.Context, updates []entry.OrderUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateOrdersErr != nil {
		return r.UpdateOrdersErr
	}

	for _, u := range updates {
		if _, found := r.entries[u.ID]; !found {
			return entry.ErrNotFound
		}
	}
	now := time.Now()
	for _, u := range updates {
		e := r.entries[u.ID]
		r.entries[u.ID] = entry.Hydrate(
			e.ID(), e.Kind(), e.Title(), e.Genre(), e.Note(), e.KoechelNo(),
			e.Year(), e.Month(), e.Day(), u.SortOrder, e.CreatedAt(), now,
		)
	}
	return nil
}

func sortEntries(entries []entry.Entry, params *entry.FindParams) {
	desc := params.SortDesc
	switch params.SortBy {
	case entry.SortFieldTitle:
		sort.Slice(entries, func(i, j int) bool {
			if desc {
				return entries[i].Title() > entries[j].Title()
			}
			return entries[i].Title() < entries[j].Title()
		})
	default:
		sort.Slice(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.Year() != b.Year() {
				if desc {
					return a.Year() > b.Year()
				}
				return a.Year() < b.Year()
			}
			if deref(a.Month()) != deref(b.Month()) {
				return deref(a.Month()) < deref(b.Month())
			}
			if deref(a.Day()) != deref(b.Day()) {
				return deref(a.Day()) < deref(b.Day())
			}
			return a.SortOrder() < b.SortOrder()
		})
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
