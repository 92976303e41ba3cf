package principals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation   = "23505"
	pgInvalidTextFormat = "22P02"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email, secret string) (*models.Principal, error) {
	query :=
		`INSERT INTO principals (email, secret)
         VALUES ($1, $2)
		 RETURNING id, created_at, updated_at
		 `

	p := &models.Principal{Email: email, Secret: secret}
	err := r.db.QueryRowContext(ctx, query, email, secret).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapPostgresErr(err)
	}

	return p, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query :=
		`SELECT id, email, secret, created_at, updated_at FROM principals
		 WHERE email = $1
		 `

	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	query :=
		`SELECT id, email, secret, created_at, updated_at FROM principals
		 WHERE id = $1
		 `

	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) UpdateSecret(ctx context.Context, id, secret string) error {
	query :=
		`UPDATE principals SET secret = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, secret)
	if err != nil {
		return mapPostgresErr(err)
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

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.Principal, error) {
	p := &models.Principal{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Email, &p.Secret, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapPostgresErr(err)
	}

	return p, nil
}

// mapPostgresErr translates driver errors into common sentinels. A malformed
// uuid can never match a row, so it reads as not found.
func mapPostgresErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return common.ErrAlreadyExists
		case pgInvalidTextFormat:
			return common.ErrNotFound
		}
	}

	return fmt.Errorf("db error: %w", err)
}
