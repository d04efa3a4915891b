package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/modules/catalog/presentation/controllers/dtos"
	"github.com/amadeus-works/koechel/modules/catalog/presentation/mappers"
	"github.com/amadeus-works/koechel/modules/catalog/services"
	"github.com/amadeus-works/koechel/pkg/application"
	"github.com/amadeus-works/koechel/pkg/configuration"
	"github.com/amadeus-works/koechel/pkg/middleware"
)

type CatalogAPIController struct {
	app      application.Application
	catalog  *services.CatalogService
	reorder  *services.ReorderService
	basePath string
}

func NewCatalogAPIController(app application.Application) application.Controller {
	return &CatalogAPIController{
		app:      app,
		catalog:  app.Service(services.CatalogService{}).(*services.CatalogService),
		reorder:  app.Service(services.ReorderService{}).(*services.ReorderService),
		basePath: "/catalog/api",
	}
}

func (c *CatalogAPIController) Key() string {
	return c.basePath
}

func (c *CatalogAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/entries", c.List).Methods(http.MethodGet)
	router.HandleFunc("/entries/{id}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/entries", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/entries/reorder", c.Reorder).Methods(http.MethodPatch)
	writeRouter.HandleFunc("/entries/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/entries/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *CatalogAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	q := r.URL.Query()

	params := &entry.FindParams{
		Q:      strings.TrimSpace(q.Get("q")),
		Genre:  strings.TrimSpace(q.Get("genre")),
		Limit:  conf.PageSize,
		SortBy: entry.SortFieldYear,
		// Newest-first is the canonical catalog view.
		SortDesc: true,
	}

	if kind := strings.TrimSpace(q.Get("kind")); kind != "" {
		if !entry.Kind(kind).Valid() {
			writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_KIND", "kind must be 'work' or 'chronicle'")
			return
		}
		params.Kind = entry.Kind(kind)
	}
	if yearStr := strings.TrimSpace(q.Get("year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_YEAR", "invalid year")
			return
		}
		params.Year = &year
	}
	if sortBy := strings.TrimSpace(q.Get("sortBy")); sortBy == string(entry.SortFieldTitle) {
		params.SortBy = entry.SortFieldTitle
		params.SortDesc = false
	}
	if dir := strings.TrimSpace(q.Get("sortDir")); dir == "asc" {
		params.SortDesc = false
	} else if dir == "desc" {
		params.SortDesc = true
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			params.Limit = parsed
		}
	}
	if v := strings.TrimSpace(q.Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			params.Offset = parsed
		}
	}

	items, total, err := c.catalog.GetPaginated(r.Context(), params)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"items": mappers.EntriesToListItems(items),
		"total": total,
	})
}

func (c *CatalogAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_ID", "invalid entry id")
		return
	}

	e, err := c.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CATALOG_ENTRY_NOT_FOUND", "entry not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, mappers.EntryToListItem(e))
}

func (c *CatalogAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto entry.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_JSON", "invalid json")
		return
	}

	dto.Normalize()
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, errs)
		return
	}

	created, err := c.catalog.Create(r.Context(), &dto)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}

	writeJSON(w, r, http.StatusCreated, mappers.EntryToListItem(created))
}

func (c *CatalogAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_ID", "invalid entry id")
		return
	}

	var dto entry.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_JSON", "invalid json")
		return
	}

	dto.Normalize()
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, errs)
		return
	}

	updated, err := c.catalog.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CATALOG_ENTRY_NOT_FOUND", "entry not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, mappers.EntryToListItem(updated))
}

func (c *CatalogAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_ID", "invalid entry id")
		return
	}

	if err := c.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CATALOG_ENTRY_NOT_FOUND", "entry not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

// Reorder handles one drag-and-drop move. Any error leaves the previous sort
// order values fully intact: the surrounding transaction middleware rolls
// back everything the service wrote.
func (c *CatalogAPIController) Reorder(w http.ResponseWriter, r *http.Request) {
	var dto dtos.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_JSON", "invalid json")
		return
	}

	entryID, err := uuid.Parse(strings.TrimSpace(dto.EntryID))
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_ID", "invalid entry id")
		return
	}
	if dto.NewOrder == nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_POSITION", "newOrder is required")
		return
	}
	if dto.Year == nil {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_YEAR", "year is required")
		return
	}
	kind := entry.Kind(strings.ToLower(strings.TrimSpace(dto.Kind)))
	if !kind.Valid() {
		writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_KIND", "kind must be 'work' or 'chronicle'")
		return
	}

	group, err := c.reorder.Reorder(r.Context(), services.ReorderCommand{
		EntryID:  entryID,
		Kind:     kind,
		Year:     *dto.Year,
		NewIndex: *dto.NewOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, entry.ErrNotFound):
			writeAPIError(w, r, http.StatusNotFound, "CATALOG_ENTRY_NOT_FOUND", "entry not found")
		case errors.Is(err, entry.ErrNotReorderable):
			writeAPIError(w, r, http.StatusUnprocessableEntity, "CATALOG_NOT_REORDERABLE", "not eligible for manual ordering")
		case errors.Is(err, entry.ErrYearMismatch):
			writeAPIError(w, r, http.StatusUnprocessableEntity, "CATALOG_YEAR_MISMATCH", "entry does not belong to the given year")
		case errors.Is(err, entry.ErrInvalidPosition):
			writeAPIError(w, r, http.StatusBadRequest, "CATALOG_INVALID_POSITION", "invalid position")
		default:
			writeAPIError(w, r, http.StatusInternalServerError, "CATALOG_REORDER_FAILED", "reorder failed, no changes applied")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"entries": mappers.EntriesToListItems(group),
	})
}

func firstValidationMessage(errs map[string]string) string {
	for _, field := range []string{"Kind", "Title", "Year", "Month", "Day"} {
		if msg := strings.TrimSpace(errs[field]); msg != "" {
			return msg
		}
	}
	return "validation failed"
}
