package common

import (
	"crypto/rand"
	"strings"
)

// GenerateRandByteArray returns size bytes read from crypto/rand.
// It panics if the system random source fails, which crypto/rand documents
// as unrecoverable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// ParseBearer extracts the token from an Authorization header value.
//
// Both "Bearer <token>" (scheme matched case-insensitively) and a bare token
// are accepted. An empty or whitespace-only value yields ok == false.
func ParseBearer(header string) (token string, ok bool) {
	v := strings.TrimSpace(header)
	if v == "" {
		return "", false
	}

	scheme, rest, found := strings.Cut(v, " ")
	if found && strings.EqualFold(scheme, BearerScheme) {
		v = strings.TrimSpace(rest)
	} else if strings.EqualFold(v, BearerScheme) {
		return "", false
	}

	if v == "" {
		return "", false
	}
	return v, true
}
