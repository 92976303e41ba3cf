package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: bcrypt: %v", common.ErrInternal, err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(plaintext, blob string) bool {
	return Verify(plaintext, blob)
}

// $2a$, $2b$, $2y$
func isBcrypt(blob string) bool {
	return len(blob) > 4 && strings.HasPrefix(blob, "$2") && blob[3] == '$'
}
