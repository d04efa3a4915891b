package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amadeus-works/koechel/pkg/constants"
)

// Provide injects a static value into every request context under the given key.
func Provide(key constants.ContextKey, value any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
