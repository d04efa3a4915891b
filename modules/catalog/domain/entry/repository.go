package entry

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("catalog entry not found")
	ErrNotReorderable  = errors.New("entry is not eligible for manual ordering")
	ErrInvalidPosition = errors.New("invalid target position")
	ErrYearMismatch    = errors.New("entry does not belong to the given year")
	ErrInvalidKind     = errors.New("invalid entry kind")
)

type SortField string

const (
	SortFieldYear  SortField = "year"
	SortFieldTitle SortField = "title"
)

type FindParams struct {
	Kind     Kind
	Year     *int
	Q        string
	Genre    string
	SortBy   SortField
	SortDesc bool
	Limit    int
	Offset   int
}

// OrderUpdate assigns a fresh sort order value to a single entry.
type OrderUpdate struct {
	ID        uuid.UUID
	SortOrder int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Entry, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Entry, error)
	Create(ctx context.Context, e Entry) (Entry, error)
	Update(ctx context.Context, e Entry) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// YearGroup returns the reorderable entries of one kind and year,
	// sorted by their current sort order ascending.
	YearGroup(ctx context.Context, kind Kind, year int) ([]Entry, error)

	// UpdateOrders persists new sort order values. Callers are responsible
	// for running it inside a transaction so the renumbering is atomic.
	UpdateOrders(ctx context.Context, updates []OrderUpdate) error
}
