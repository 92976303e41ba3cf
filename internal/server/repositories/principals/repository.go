// Package principals is the credential store: one record per principal,
// keyed by a store-generated id and unique by email.
//
// Email uniqueness is enforced by a UNIQUE constraint in the database, so two
// concurrent Create calls for the same email cannot both succeed; the loser
// gets common.ErrAlreadyExists.
package principals

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, email, secret string) (*models.Principal, error)
	FindByEmail(ctx context.Context, email string) (*models.Principal, error)
	FindByID(ctx context.Context, id string) (*models.Principal, error)
	UpdateSecret(ctx context.Context, id, secret string) error
}
