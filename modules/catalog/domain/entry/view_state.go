package entry

import "strings"

// ViewState is an immutable descriptor of the admin list view: sort, year
// filter, free-text search and genre filter. It is passed in explicitly so
// the reorder gate stays a pure function of its inputs.
type ViewState struct {
	SortBy   SortField
	SortDesc bool
	Year     *int
	Query    string
	Genre    string
}

// ReorderAllowed reports whether manual reordering is permitted for this
// view. Reordering only makes sense when the admin is looking at exactly one
// coherent, complete, manually-ordered year group: the canonical sort
// (year descending), a single selected year, and no search or genre filter
// that could hide group members or split them across pages.
func (v ViewState) ReorderAllowed() bool {
	if v.SortBy != SortFieldYear || !v.SortDesc {
		return false
	}
	if v.Year == nil {
		return false
	}
	if strings.TrimSpace(v.Query) != "" {
		return false
	}
	if strings.TrimSpace(v.Genre) != "" {
		return false
	}
	return true
}

// Eligible reports whether an entry with the given year and date precision
// belongs to this view's reorderable subset. Dated entries (month/day set)
// and entries of other years never do. Callers working on serialized entry
// representations share this predicate instead of re-deriving it.
func (v ViewState) Eligible(year int, month, day *int) bool {
	if v.Year == nil || year != *v.Year {
		return false
	}
	return month == nil && day == nil
}

// ReorderableSubset applies the gate and, when reordering is allowed,
// returns the entries of the selected year eligible for drag-and-drop in
// their current order.
func ReorderableSubset(v ViewState, entries []Entry) ([]Entry, bool) {
	if !v.ReorderAllowed() {
		return nil, false
	}
	subset := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if v.Eligible(e.Year(), e.Month(), e.Day()) {
			subset = append(subset, e)
		}
	}
	return subset, true
}
