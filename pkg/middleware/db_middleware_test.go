package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	commits     int
	rollbacks   int
	rollbackErr error
}

func (f *fakeTx) Commit(context.Context) error { f.commits++; return nil }

func (f *fakeTx) Rollback(context.Context) error {
	f.rollbacks++
	return f.rollbackErr
}

func TestFinishTx(t *testing.T) {
	t.Parallel()

	t.Run("success status commits", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		require.NoError(t, finishTx(context.Background(), tx, http.StatusOK))
		assert.Equal(t, 1, tx.commits)
		assert.Zero(t, tx.rollbacks)
	})

	t.Run("created status commits", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		require.NoError(t, finishTx(context.Background(), tx, http.StatusCreated))
		assert.Equal(t, 1, tx.commits)
	})

	t.Run("client error rolls back", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		require.NoError(t, finishTx(context.Background(), tx, http.StatusNotFound))
		assert.Zero(t, tx.commits)
		assert.Equal(t, 1, tx.rollbacks)
	})

	t.Run("server error rolls back", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		require.NoError(t, finishTx(context.Background(), tx, http.StatusInternalServerError))
		assert.Zero(t, tx.commits)
		assert.Equal(t, 1, tx.rollbacks)
	})

	t.Run("closed transaction on rollback is tolerated", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{rollbackErr: pgx.ErrTxClosed}
		require.NoError(t, finishTx(context.Background(), tx, http.StatusUnprocessableEntity))
	})

	t.Run("rollback failure is reported", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{rollbackErr: errors.New("connection lost")}
		require.Error(t, finishTx(context.Background(), tx, http.StatusBadRequest))
	})
}

func TestTxStatusWriter(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 200 when the handler never writes a header", func(t *testing.T) {
		t.Parallel()
		w := &txStatusWriter{ResponseWriter: httptest.NewRecorder()}
		assert.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("records the first status written", func(t *testing.T) {
		t.Parallel()
		w := &txStatusWriter{ResponseWriter: httptest.NewRecorder()}
		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK)
		assert.Equal(t, http.StatusNotFound, w.Status())
	})
}

func TestWithTransaction_NoPoolPassesThrough(t *testing.T) {
	t.Parallel()

	handler := WithTransaction()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/entries/reorder", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
