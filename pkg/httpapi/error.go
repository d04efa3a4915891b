package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the JSON error shape of every API namespace: a stable
// machine-readable code, a human-readable message, and optional string meta
// (request path, offending field, request id).
type ErrorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteFieldErrors reports a validation failure with one meta entry per
// rejected field, keyed by the field's JSON name.
func WriteFieldErrors(w http.ResponseWriter, code, message string, fields map[string]string) error {
	meta := make(map[string]string, len(fields))
	for field, msg := range fields {
		meta[field] = msg
	}
	return WriteJSON(w, http.StatusUnprocessableEntity, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
