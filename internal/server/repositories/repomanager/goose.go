package repomanager

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// gooseUp is a seam for testing the migration runner.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

func migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, embedded fs.FS, dir string) error {
	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return err
	}
	return gooseUp(ctx, dialect, db, fsys)
}
