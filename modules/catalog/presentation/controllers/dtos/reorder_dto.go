package dtos

// ReorderRequest is the body of PATCH /catalog/api/entries/reorder.
// NewOrder is the zero-based target index within the year group's
// reorderable sequence. Pointers distinguish absent fields from zero values.
type ReorderRequest struct {
	EntryID  string `json:"entryId"`
	NewOrder *int   `json:"newOrder"`
	Year     *int   `json:"year"`
	Kind     string `json:"kind"`
}
