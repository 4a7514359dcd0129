package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"quickbids/db"
	"quickbids/db/migrations"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// WithChiURLParams puts path parameters into the request's chi route
// context so handlers can be called without a router.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for k, v := range params {
		chiCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestStore opens a private in-memory SQLite database, applies every
// migration and closes the pool when the test ends.
func NewTestStore(t *testing.T) *db.Storage {
	t.Helper()

	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	conn, err := db.Connect(ctx, db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn.DB, db.DriverSQLite, DiscardLogger()))
	return db.NewStorage(conn)
}
