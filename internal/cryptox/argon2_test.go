package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Argon2Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: DefaultKeyLen}

func TestEncodeDecodePHC(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := DeriveKey([]byte("pw"), salt, testParams)

	s := EncodePHC(testParams, salt, key)
	require.True(t, IsPHC(s))
	assert.True(t, strings.HasPrefix(s, "$argon2id$v=19$m=8192,t=1,p=1$"))

	p, gotSalt, gotKey, err := DecodePHC(s)
	require.NoError(t, err)
	assert.Equal(t, testParams, p)
	assert.Equal(t, salt, gotSalt)
	assert.Equal(t, key, gotKey)
}

func TestVerifyPHC(t *testing.T) {
	salt := []byte("0123456789abcdef")
	s := EncodePHC(testParams, salt, DeriveKey([]byte("right"), salt, testParams))

	ok, err := VerifyPHC([]byte("right"), s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPHC([]byte("wrong"), s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodePHC_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"bcrypt":        "$2a$10$abcdefghijklmnopqrstuu",
		"few parts":     "$argon2id$v=19$m=1,t=1,p=1$c2FsdA",
		"bad version":   "$argon2id$v=16$m=1,t=1,p=1$c2FsdA$a2V5",
		"bad params":    "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"zero time":     "$argon2id$v=19$m=1,t=0,p=1$c2FsdA$a2V5",
		"bad salt":      "$argon2id$v=19$m=1,t=1,p=1$***$a2V5",
		"empty key":     "$argon2id$v=19$m=1,t=1,p=1$c2FsdA$",
		"wrong variant": "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"huge memory":   "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"huge time":     "$argon2id$v=19$m=8,t=4294967295,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
		"many threads":  "$argon2id$v=19$m=8,t=1,p=255$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5",
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := DecodePHC(s)
			if !errors.Is(err, ErrMalformedPHC) {
				t.Fatalf("want ErrMalformedPHC, got %v", err)
			}
		})
	}
}

func TestDecodePHC_AcceptsCeilings(t *testing.T) {
	s := "$argon2id$v=19$m=4194304,t=16,p=64$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5"
	p, _, _, err := DecodePHC(s)
	require.NoError(t, err)
	assert.Equal(t, uint32(MaxMemoryKiB), p.MemoryKiB)
	assert.Equal(t, uint32(MaxTime), p.Time)
	assert.Equal(t, uint8(MaxThreads), p.Threads)
}
