package entry

import (
	"strings"
)

type CreateDTO struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Note      string `json:"note"`
	KoechelNo string `json:"koechelNo"`
	Year      int    `json:"year"`
	Month     *int   `json:"month"`
	Day       *int   `json:"day"`
}

type UpdateDTO struct {
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Note      string `json:"note"`
	KoechelNo string `json:"koechelNo"`
	Year      int    `json:"year"`
	Month     *int   `json:"month"`
	Day       *int   `json:"day"`
}

func (d *CreateDTO) Normalize() {
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	d.Title = strings.TrimSpace(d.Title)
	d.Genre = strings.TrimSpace(d.Genre)
	d.KoechelNo = strings.TrimSpace(d.KoechelNo)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	errs := map[string]string{}
	if !Kind(d.Kind).Valid() {
		errs["Kind"] = "kind must be 'work' or 'chronicle'"
	}
	if d.Title == "" {
		errs["Title"] = "title is required"
	}
	if d.Year == 0 {
		errs["Year"] = "year is required"
	}
	validateDate(d.Month, d.Day, errs)
	return errs, len(errs) == 0
}

func (d *UpdateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Genre = strings.TrimSpace(d.Genre)
	d.KoechelNo = strings.TrimSpace(d.KoechelNo)
}

func (d *UpdateDTO) Ok() (map[string]string, bool) {
	errs := map[string]string{}
	if d.Title == "" {
		errs["Title"] = "title is required"
	}
	if d.Year == 0 {
		errs["Year"] = "year is required"
	}
	validateDate(d.Month, d.Day, errs)
	return errs, len(errs) == 0
}

func validateDate(month, day *int, errs map[string]string) {
	if month != nil && (*month < 1 || *month > 12) {
		errs["Month"] = "month must be between 1 and 12"
	}
	if day != nil && (*day < 1 || *day > 31) {
		errs["Day"] = "day must be between 1 and 31"
	}
	if day != nil && month == nil {
		errs["Day"] = "day requires a month"
	}
}

func (d *CreateDTO) ToEntity() Entry {
	return New(Kind(d.Kind), d.Title, d.Year).
		WithGenre(d.Genre).
		WithNote(d.Note).
		WithKoechelNo(d.KoechelNo).
		WithDate(d.Month, d.Day)
}
