// Package testdb provides migrated in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewSQLite opens a private in-memory database, applies the migrations and
// closes it when the test ends. A single connection is used so the database
// lives as long as the test.
func NewSQLite(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := &repomanager.SQLiteRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), db))

	return db, m
}
