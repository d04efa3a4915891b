package mappers

import (
	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/modules/catalog/presentation/viewmodels"
)

func EntryToListItem(e entry.Entry) viewmodels.EntryListItem {
	return viewmodels.EntryListItem{
		ID:        e.ID().String(),
		Kind:      string(e.Kind()),
		Title:     e.Title(),
		Genre:     e.Genre(),
		Note:      e.Note(),
		KoechelNo: e.KoechelNo(),
		Year:      e.Year(),
		Month:     e.Month(),
		Day:       e.Day(),
		SortOrder: e.SortOrder(),
	}
}

func EntriesToListItems(entries []entry.Entry) []viewmodels.EntryListItem {
	out := make([]viewmodels.EntryListItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryToListItem(e))
	}
	return out
}
