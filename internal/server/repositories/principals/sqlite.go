package principals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores principals in SQLite. Ids are generated here, and
// timestamps are written as RFC 3339 text in UTC.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, email, secret string) (*models.Principal, error) {
	query :=
		`INSERT INTO principals (id, email, secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 `

	now := r.now().UTC()
	p := &models.Principal{
		ID:        uuid.NewString(),
		Email:     email,
		Secret:    secret,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ts := now.Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Email, p.Secret, ts, ts); err != nil {
		return nil, mapSQLiteErr(err)
	}

	return p, nil
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query :=
		`SELECT id, email, secret, created_at, updated_at FROM principals
		 WHERE email = ?
		 `

	return r.findOne(ctx, query, email)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	query :=
		`SELECT id, email, secret, created_at, updated_at FROM principals
		 WHERE id = ?
		 `

	return r.findOne(ctx, query, id)
}

func (r *SQLiteRepository) UpdateSecret(ctx context.Context, id, secret string) error {
	query :=
		`UPDATE principals SET secret = ?, updated_at = ?
		 WHERE id = ?
		 `

	ts := r.now().UTC().Format(time.RFC3339Nano)
	res, err := r.db.ExecContext(ctx, query, secret, ts, id)
	if err != nil {
		return mapSQLiteErr(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepository) findOne(ctx context.Context, query string, arg string) (*models.Principal, error) {
	var p models.Principal
	var created, updated string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Email, &p.Secret, &created, &updated)
	if err != nil {
		return nil, mapSQLiteErr(err)
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("db error: bad created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("db error: bad updated_at: %w", err)
	}

	return &p, nil
}

func mapSQLiteErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}

	var sErr *sqlite.Error
	if errors.As(err, &sErr) && sErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return common.ErrAlreadyExists
	}

	return fmt.Errorf("db error: %w", err)
}
