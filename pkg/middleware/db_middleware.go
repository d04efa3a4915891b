package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/amadeus-works/koechel/pkg/composables"
)

// txStatusWriter records the status code the handler wrote so the middleware
// can decide between commit and rollback.
type txStatusWriter struct {
	http.ResponseWriter
	status int
}

func (w *txStatusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *txStatusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

type txCloser interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// finishTx commits when the handler responded with a success status and rolls
// back otherwise. A handler may return an error after some writes already
// succeeded (e.g. a row vanished mid-renumber), so an error status must
// discard the whole transaction, never commit the prefix.
func finishTx(ctx context.Context, tx txCloser, status int) error {
	if status >= http.StatusBadRequest {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return err
		}
		return nil
	}
	return tx.Commit(ctx)
}

// WithTransaction wraps write routes in a request-scoped transaction. The
// transaction commits after the handler returns a success status and rolls
// back when the handler signaled an error; the deferred rollback is a no-op
// once the transaction is closed.
func WithTransaction() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pool, err := composables.UsePool(r.Context())
			if err != nil {
				if errors.Is(err, composables.ErrNoPool) {
					// No pool configured: repositories manage their own
					// atomicity (in-memory setups).
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			tx, err := pool.Begin(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer func() {
				if err := tx.Rollback(r.Context()); err != nil {
					if errors.Is(err, pgx.ErrTxClosed) {
						return
					}
					logger := composables.UseLogger(r.Context())
					logger.WithError(err).Error("failed to rollback transaction")
				}
			}()
			r = r.WithContext(composables.WithTx(r.Context(), tx))
			writer := &txStatusWriter{ResponseWriter: w}
			next.ServeHTTP(writer, r)
			if err := finishTx(r.Context(), tx, writer.Status()); err != nil {
				// The handler already wrote its response; all we can do is log.
				composables.UseLogger(r.Context()).WithError(err).Error("failed to finish transaction")
			}
		})
	}
}
