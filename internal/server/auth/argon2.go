package auth

import (
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
)

// Argon2Hasher produces argon2id PHC strings with a random 16-byte salt.
type Argon2Hasher struct {
	params cryptox.Argon2Params
}

func NewArgon2Hasher(p cryptox.Argon2Params) *Argon2Hasher {
	if p.KeyLen == 0 {
		p.KeyLen = cryptox.DefaultKeyLen
	}
	return &Argon2Hasher{params: p}
}

func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := common.GenerateRandByteArray(cryptox.DefaultSaltLen)
	key := cryptox.DeriveKey([]byte(plaintext), salt, h.params)
	return cryptox.EncodePHC(h.params, salt, key), nil
}

func (h *Argon2Hasher) Verify(plaintext, blob string) bool {
	return Verify(plaintext, blob)
}
