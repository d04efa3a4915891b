package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind separates the two catalog collections that share manual ordering
// semantics: musical works and chronicle (biography timeline) records.
type Kind string

const (
	KindWork      Kind = "work"
	KindChronicle Kind = "chronicle"
)

func (k Kind) Valid() bool {
	return k == KindWork || k == KindChronicle
}

// Entry is a catalog record positioned by (year, month?, day?) and, for
// entries without month/day precision, by a manually maintained sort order
// within its year group.
type Entry struct {
	id        uuid.UUID
	kind      Kind
	title     string
	genre     string
	note      string
	koechelNo string
	year      int
	month     *int
	day       *int
	sortOrder int
	createdAt time.Time
	updatedAt time.Time
}

func New(kind Kind, title string, year int) Entry {
	return Entry{
		id:    uuid.New(),
		kind:  kind,
		title: strings.TrimSpace(title),
		year:  year,
	}
}

func Hydrate(
	id uuid.UUID,
	kind Kind,
	title string,
	genre string,
	note string,
	koechelNo string,
	year int,
	month *int,
	day *int,
	sortOrder int,
	createdAt time.Time,
	updatedAt time.Time,
) Entry {
	return Entry{
		id:        id,
		kind:      kind,
		title:     strings.TrimSpace(title),
		genre:     strings.TrimSpace(genre),
		note:      note,
		koechelNo: strings.TrimSpace(koechelNo),
		year:      year,
		month:     month,
		day:       day,
		sortOrder: sortOrder,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (e Entry) ID() uuid.UUID        { return e.id }
func (e Entry) Kind() Kind           { return e.kind }
func (e Entry) Title() string        { return e.title }
func (e Entry) Genre() string        { return e.genre }
func (e Entry) Note() string         { return e.note }
func (e Entry) KoechelNo() string    { return e.koechelNo }
func (e Entry) Year() int            { return e.year }
func (e Entry) Month() *int          { return e.month }
func (e Entry) Day() *int            { return e.day }
func (e Entry) SortOrder() int       { return e.sortOrder }
func (e Entry) CreatedAt() time.Time { return e.createdAt }
func (e Entry) UpdatedAt() time.Time { return e.updatedAt }
func (e Entry) IsZero() bool         { return e.id == uuid.Nil }

// Reorderable reports whether the entry participates in manual ordering.
// Entries carrying month/day precision are positioned by date, never by hand.
func (e Entry) Reorderable() bool {
	return e.month == nil && e.day == nil
}

func (e Entry) WithTitle(title string) Entry {
	e.title = strings.TrimSpace(title)
	return e
}

func (e Entry) WithGenre(genre string) Entry {
	e.genre = strings.TrimSpace(genre)
	return e
}

func (e Entry) WithNote(note string) Entry {
	e.note = note
	return e
}

func (e Entry) WithKoechelNo(no string) Entry {
	e.koechelNo = strings.TrimSpace(no)
	return e
}

func (e Entry) WithYear(year int) Entry {
	e.year = year
	return e
}

// WithDate sets month/day precision. Passing nil for both makes the entry
// reorderable again.
func (e Entry) WithDate(month, day *int) Entry {
	e.month = month
	e.day = day
	return e
}

func (e Entry) WithSortOrder(order int) Entry {
	e.sortOrder = order
	return e
}
