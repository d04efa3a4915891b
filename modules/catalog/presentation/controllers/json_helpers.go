package controllers

import (
	"net/http"
	"strings"

	"github.com/amadeus-works/koechel/pkg/composables"
	"github.com/amadeus-works/koechel/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		// Headers are already sent at this point, nothing to do but log.
		composables.UseLogger(r.Context()).WithError(err).Error("failed to encode json response")
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	_ = httpapi.WriteError(w, status, code, message, map[string]string{
		"path": r.URL.Path,
	})
}

// writeValidationError reports every rejected field under its JSON name.
func writeValidationError(w http.ResponseWriter, errs map[string]string) {
	fields := make(map[string]string, len(errs))
	for field, msg := range errs {
		fields[strings.ToLower(field)] = msg
	}
	_ = httpapi.WriteFieldErrors(w, "CATALOG_VALIDATION_FAILED", firstValidationMessage(errs), fields)
}
