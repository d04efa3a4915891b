package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/pkg/eventbus"
)

// CatalogService is the CRUD boundary around catalog entries. It owns the
// append-at-end and compact-after-removal rules that keep every year group's
// sort order values a dense zero-based range, so the reorder operation stays
// well-defined.
type CatalogService struct {
	repo      entry.Repository
	publisher eventbus.EventBus
}

func NewCatalogService(repo entry.Repository, publisher eventbus.EventBus) *CatalogService {
	return &CatalogService{repo: repo, publisher: publisher}
}

func (s *CatalogService) GetPaginated(ctx context.Context, params *entry.FindParams) ([]entry.Entry, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
		params.Genre = strings.TrimSpace(params.Genre)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (entry.Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, dto *entry.CreateDTO) (entry.Entry, error) {
	if dto == nil {
		return entry.Entry{}, errors.New("missing dto")
	}
	dto.Normalize()
	e := dto.ToEntity()

	if e.Reorderable() {
		group, err := s.repo.YearGroup(ctx, e.Kind(), e.Year())
		if err != nil {
			return entry.Entry{}, err
		}
		e = e.WithSortOrder(len(group))
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return entry.Entry{}, err
	}

	if s.publisher != nil {
		s.publisher.Publish(entry.CreatedEvent{Entry: created, OccurredAt: time.Now()})
	}
	return created, nil
}

// Update applies field changes without ever touching the manual sort order
// directly. When an entry leaves its year group (year change, or month/day
// gained) the old group is compacted; when it joins one (year change, or
// month/day dropped) it is appended at the end.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, dto *entry.UpdateDTO) (entry.Entry, error) {
	if dto == nil {
		return entry.Entry{}, errors.New("missing dto")
	}
	dto.Normalize()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entry.Entry{}, err
	}

	next := existing.
		WithTitle(dto.Title).
		WithGenre(dto.Genre).
		WithNote(dto.Note).
		WithKoechelNo(dto.KoechelNo).
		WithYear(dto.Year).
		WithDate(dto.Month, dto.Day)

	leftGroup := existing.Reorderable() &&
		(!next.Reorderable() || next.Year() != existing.Year())
	joinedGroup := next.Reorderable() &&
		(!existing.Reorderable() || next.Year() != existing.Year())

	if joinedGroup {
		group, err := s.repo.YearGroup(ctx, next.Kind(), next.Year())
		if err != nil {
			return entry.Entry{}, err
		}
		next = next.WithSortOrder(len(group))
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return entry.Entry{}, err
	}

	if leftGroup {
		if err := s.compactYearGroup(ctx, existing.Kind(), existing.Year()); err != nil {
			return entry.Entry{}, err
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(entry.UpdatedEvent{Entry: updated, OccurredAt: time.Now()})
	}
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if existing.Reorderable() {
		if err := s.compactYearGroup(ctx, existing.Kind(), existing.Year()); err != nil {
			return err
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(entry.DeletedEvent{
			ID:         id,
			Kind:       existing.Kind(),
			Year:       existing.Year(),
			OccurredAt: time.Now(),
		})
	}
	return nil
}

// compactYearGroup closes any gap left by an entry that departed the group.
func (s *CatalogService) compactYearGroup(ctx context.Context, kind entry.Kind, year int) error {
	group, err := s.repo.YearGroup(ctx, kind, year)
	if err != nil {
		return err
	}
	updates := entry.Renumber(group)
	if len(updates) == 0 {
		return nil
	}
	return s.repo.UpdateOrders(ctx, updates)
}
