package viewmodels

type EntryListItem struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Genre     string `json:"genre,omitempty"`
	Note      string `json:"note,omitempty"`
	KoechelNo string `json:"koechelNo,omitempty"`
	Year      int    `json:"year"`
	Month     *int   `json:"month,omitempty"`
	Day       *int   `json:"day,omitempty"`
	SortOrder int    `json:"sortOrder"`
}
