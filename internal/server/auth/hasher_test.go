package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArgon2 = cryptox.Argon2Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1}

func testHashers() map[string]Hasher {
	return map[string]Hasher{
		"bcrypt":   NewBcryptHasher(4),
		"argon2id": NewArgon2Hasher(testArgon2),
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			blob, err := h.Hash("secret1")
			require.NoError(t, err)
			assert.NotEqual(t, "secret1", blob)

			assert.True(t, h.Verify("secret1", blob))
			assert.False(t, h.Verify("secret2", blob))
			assert.False(t, h.Verify("", blob))
		})
	}
}

func TestHasher_Salted(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			a, err := h.Hash("same")
			require.NoError(t, err)
			b, err := h.Hash("same")
			require.NoError(t, err)
			assert.NotEqual(t, a, b)
		})
	}
}

func TestHasher_BlobFormat(t *testing.T) {
	b, err := NewBcryptHasher(4).Hash("x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b, "$2a$04$"), b)

	a, err := NewArgon2Hasher(testArgon2).Hash("x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a, "$argon2id$v=19$m=8192,t=1,p=1$"), a)
}

func TestHasher_VerifiesOtherAlgorithm(t *testing.T) {
	bc := NewBcryptHasher(4)
	ar := NewArgon2Hasher(testArgon2)

	bcBlob, err := bc.Hash("pw")
	require.NoError(t, err)
	arBlob, err := ar.Hash("pw")
	require.NoError(t, err)

	assert.True(t, bc.Verify("pw", arBlob))
	assert.True(t, ar.Verify("pw", bcBlob))
}

func TestVerify_MalformedBlobs(t *testing.T) {
	for _, blob := range []string{
		"",
		"plaintext",
		"$2a$",
		"$2a$04$short",
		"$argon2id$",
		"$argon2id$v=19$m=1,t=1,p=1$!!$!!",
		"$unknown$v=1$abc",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=8,t=4294967295,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
	} {
		assert.NotPanics(t, func() {
			assert.False(t, Verify("pw", blob), blob)
		})
	}
}

func TestBcryptHasher_InvalidCost(t *testing.T) {
	_, err := NewBcryptHasher(32).Hash("pw")
	if !errors.Is(err, common.ErrInternal) {
		t.Fatalf("want common.ErrInternal, got %v", err)
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	_, err := NewBcryptHasher(4).Hash(strings.Repeat("a", MaxPasswordLen+1))
	assert.ErrorIs(t, err, common.ErrInternal)
}

func TestNewHasher(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	h, err := NewHasher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &BcryptHasher{}, h)

	cfg.HashAlgorithm = config.HashArgon2id
	h, err = NewHasher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	cfg.HashAlgorithm = "md5"
	_, err = NewHasher(cfg)
	assert.Error(t, err)
}
