package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/principals"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(config.DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	m, err = New(config.DriverSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	_, err = New("oracle")
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestPrincipals_VendsDialectRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.IsType(t, &principals.PostgresRepository{}, (&PostgresRepositoryManager{}).Principals(db))
	assert.IsType(t, &principals.SQLiteRepository{}, (&SQLiteRepositoryManager{}).Principals(db))
}

func TestPostgresRunMigrations_UsesEmbeddedDir(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDialect goose.Dialect
	var files []string
	gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
		gotDialect = dialect
		var err error
		files, err = fs.Glob(fsys, "*.sql")
		return err
	}

	require.NoError(t, (&PostgresRepositoryManager{}).RunMigrations(context.Background(), nil))
	assert.Equal(t, goose.DialectPostgres, gotDialect)
	assert.Contains(t, files, "00001_create_principals.sql")
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	boom := errors.New("boom")
	gooseUp = func(context.Context, goose.Dialect, *sql.DB, fs.FS) error { return boom }

	err := (&PostgresRepositoryManager{}).RunMigrations(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestOpen_SQLiteMigratesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, m, err := Open(ctx, config.DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	var name string
	err = db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'principals'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "principals", name)

	// applying again is a no-op
	require.NoError(t, m.RunMigrations(ctx, db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "x")
	require.Error(t, err)
}
