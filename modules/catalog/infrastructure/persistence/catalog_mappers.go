package persistence

import (
	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/modules/catalog/infrastructure/persistence/models"
)

func toDomainEntry(row *models.CatalogEntry) entry.Entry {
	return entry.Hydrate(
		row.ID,
		entry.Kind(row.Kind),
		row.Title,
		row.Genre,
		row.Note,
		row.KoechelNo,
		row.Year,
		row.Month,
		row.Day,
		row.SortOrder,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDBEntry(e entry.Entry) *models.CatalogEntry {
	return &models.CatalogEntry{
		ID:        e.ID(),
		Kind:      string(e.Kind()),
		Title:     e.Title(),
		Genre:     e.Genre(),
		Note:      e.Note(),
		KoechelNo: e.KoechelNo(),
		Year:      e.Year(),
		Month:     e.Month(),
		Day:       e.Day(),
		SortOrder: e.SortOrder(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
}
