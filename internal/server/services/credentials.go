// Package services contains server-side business logic. This file implements
// CredentialService: enrolling principals, authenticating email/password
// pairs, issuing bearer tokens and changing passwords.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// TokenIssuer mints and verifies bearer tokens bound to a principal id.
type TokenIssuer interface {
	Issue(principalID string) (string, error)
	Verify(token string) (string, error)
}

// CredentialService owns the enrollment and authentication flows. Every
// returned error matches one of the common sentinels via errors.Is.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	issuer      TokenIssuer
	logger      logging.Logger

	dummyMu   sync.Mutex
	dummyBlob string
}

// NewCredentialService wires the service with explicit dependencies.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, issuer TokenIssuer, logger logging.Logger) *CredentialService {
	return &CredentialService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		logger:      logger.With("module", "credentials"),
	}
}

// Enroll registers a principal and returns its id. Mismatched confirmation
// and an already registered email are rejected before any hashing.
func (s *CredentialService) Enroll(ctx context.Context, email, password, confirm string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if err := validateNewPassword(password, confirm); err != nil {
		return "", err
	}

	repo := s.repomanager.Principals(s.db)

	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", fmt.Errorf("%w: email already registered", common.ErrConflict)
	case !errors.Is(err, common.ErrNotFound):
		s.logger.Error(ctx, "principal lookup failed", "email", email, "error", err)
		return "", common.ErrInternal
	}

	secret, err := s.hashChecked(password)
	if err != nil {
		s.logger.Error(ctx, "hashing failed", "email", email, "error", err)
		return "", common.ErrInternal
	}

	p, err := repo.Create(ctx, email, secret)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return "", fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		s.logger.Error(ctx, "principal create failed", "email", email, "error", err)
		return "", common.ErrInternal
	}

	s.logger.Info(ctx, "principal enrolled", "principal_id", p.ID)
	return p.ID, nil
}

// Authenticate returns the id of the principal whose email and password
// match. Unknown email and wrong password yield the same
// common.ErrInvalidCredentials value.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Principals(s.db)

	p, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(password, s.dummySecret())
			return "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "principal lookup failed", "error", err)
		return "", common.ErrInternal
	}

	if !s.hasher.Verify(password, p.Secret) {
		return "", common.ErrInvalidCredentials
	}
	return p.ID, nil
}

// Login authenticates and issues a bearer token for the principal.
func (s *CredentialService) Login(ctx context.Context, email, password string) (string, error) {
	id, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(id)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "principal_id", id, "error", err)
		return "", common.ErrInternal
	}
	return token, nil
}

// ChangePassword replaces the secret of principalID after re-checking the
// current password.
func (s *CredentialService) ChangePassword(ctx context.Context, principalID, current, newPassword, confirm string) error {
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return err
	}

	repo := s.repomanager.Principals(s.db)

	p, err := repo.FindByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		s.logger.Error(ctx, "principal lookup failed", "principal_id", principalID, "error", err)
		return common.ErrInternal
	}

	if !s.hasher.Verify(current, p.Secret) {
		return common.ErrInvalidCredentials
	}

	secret, err := s.hashChecked(newPassword)
	if err != nil {
		s.logger.Error(ctx, "hashing failed", "principal_id", principalID, "error", err)
		return common.ErrInternal
	}

	if err := repo.UpdateSecret(ctx, principalID, secret); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		s.logger.Error(ctx, "secret update failed", "principal_id", principalID, "error", err)
		return common.ErrInternal
	}

	s.logger.Info(ctx, "password changed", "principal_id", principalID)
	return nil
}

// Principal returns the stored principal; common.ErrNotFound if it is gone.
func (s *CredentialService) Principal(ctx context.Context, principalID string) (*models.Principal, error) {
	p, err := s.repomanager.Principals(s.db).FindByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "principal lookup failed", "principal_id", principalID, "error", err)
		return nil, common.ErrInternal
	}
	return p, nil
}

// ResolveToken verifies a bearer token and returns its principal id. With
// mustExist the principal is also looked up, and a missing one makes the
// token invalid.
func (s *CredentialService) ResolveToken(ctx context.Context, token string, mustExist bool) (string, error) {
	id, err := s.issuer.Verify(token)
	if err != nil {
		return "", err
	}
	if !mustExist {
		return id, nil
	}

	if _, err := s.Principal(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", fmt.Errorf("%w: principal no longer exists", common.ErrInvalidToken)
		}
		return "", err
	}
	return id, nil
}

// --- helpers below ---

// hashChecked hashes plaintext and verifies the fresh blob before it is
// handed to the store.
func (s *CredentialService) hashChecked(plaintext string) (string, error) {
	secret, err := s.hasher.Hash(plaintext)
	if err != nil {
		return "", err
	}
	if !s.hasher.Verify(plaintext, secret) {
		return "", fmt.Errorf("%w: fresh hash does not verify", common.ErrInternal)
	}
	return secret, nil
}

// fallbackDummySecret is a well-formed bcrypt blob (cost 10) used when the
// configured hasher cannot produce a dummy secret.
const fallbackDummySecret = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// dummySecret is verified against when the email is unknown so both failure
// paths cost one hash verification. A failed Hash is retried on the next call.
func (s *CredentialService) dummySecret() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyBlob == "" {
		blob, err := s.hasher.Hash(string(common.GenerateRandByteArray(16)))
		if err != nil {
			return fallbackDummySecret
		}
		s.dummyBlob = blob
	}
	return s.dummyBlob
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	return nil
}

func validateNewPassword(password, confirm string) error {
	switch {
	case password == "":
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	case confirm == "":
		return fmt.Errorf("%w: password confirmation is required", common.ErrValidation)
	case len(password) > auth.MaxPasswordLen:
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, auth.MaxPasswordLen)
	case password != confirm:
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	return nil
}
