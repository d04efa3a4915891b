package models

import (
	"time"

	"github.com/google/uuid"
)

type CatalogEntry struct {
	ID        uuid.UUID
	Kind      string
	Title     string
	Genre     string
	Note      string
	KoechelNo string
	Year      int
	Month     *int
	Day       *int
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
