// Package auth hashes secrets, issues and verifies bearer tokens, and carries
// the authenticated principal id through a context.
package auth

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLen is the longest plaintext a Hasher accepts (the bcrypt input limit).
const MaxPasswordLen = 72

// Hasher turns a plaintext secret into a salted, self-describing blob and
// checks plaintexts against such blobs.
//
// Verify accepts blobs from every supported algorithm, not only the one the
// Hasher produces, so the configured algorithm can change without breaking
// stored secrets. It returns false for malformed blobs.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, blob string) bool
}

// NewHasher returns the Hasher selected by cfg.HashAlgorithm.
func NewHasher(cfg *config.Config) (Hasher, error) {
	switch cfg.HashAlgorithm {
	case config.HashBcrypt:
		return NewBcryptHasher(cfg.BcryptCost), nil
	case config.HashArgon2id:
		return NewArgon2Hasher(cryptox.Argon2Params{
			Time:      cfg.Argon2Time,
			MemoryKiB: cfg.Argon2MemoryKiB,
			Threads:   cfg.Argon2Threads,
			KeyLen:    cryptox.DefaultKeyLen,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", cfg.HashAlgorithm)
	}
}

// Verify checks plaintext against a blob of any supported algorithm.
func Verify(plaintext, blob string) bool {
	switch {
	case cryptox.IsPHC(blob):
		ok, err := cryptox.VerifyPHC([]byte(plaintext), blob)
		return err == nil && ok
	case isBcrypt(blob):
		return bcrypt.CompareHashAndPassword([]byte(blob), []byte(plaintext)) == nil
	default:
		return false
	}
}
