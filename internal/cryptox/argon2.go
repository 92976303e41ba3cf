// Package cryptox derives argon2id keys and encodes them in the PHC string
// format ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	DefaultSaltLen = 16
	DefaultKeyLen  = 32

	// Upper bounds accepted when decoding; a stored blob must not be able to
	// demand more work than the server would ever configure.
	MaxTime      = 16
	MaxMemoryKiB = 1 << 22
	MaxThreads   = 64
	MaxKeyLen    = 1024

	argon2idPrefix = "$argon2id$"
)

var ErrMalformedPHC = errors.New("malformed argon2id hash")

// Argon2Params is the argon2id work factor.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

func DeriveKey(password, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)
}

// IsPHC reports whether s looks like an argon2id PHC string.
func IsPHC(s string) bool {
	return strings.HasPrefix(s, argon2idPrefix)
}

// EncodePHC formats salt and key with the parameters that produced them.
func EncodePHC(p Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// DecodePHC parses a PHC string produced by EncodePHC. KeyLen of the returned
// params is the length of the decoded key.
func DecodePHC(s string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedPHC
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrMalformedPHC, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedPHC, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrMalformedPHC, err)
	}
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return p, nil, nil, fmt.Errorf("%w: zero parameter", ErrMalformedPHC)
	}
	if p.Time > MaxTime || p.MemoryKiB > MaxMemoryKiB || p.Threads > MaxThreads {
		return p, nil, nil, fmt.Errorf("%w: parameters out of range", ErrMalformedPHC)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt", ErrMalformedPHC)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > MaxKeyLen {
		return p, nil, nil, fmt.Errorf("%w: key", ErrMalformedPHC)
	}
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}

// VerifyPHC recomputes the key for password and compares it in constant time.
func VerifyPHC(password []byte, encoded string) (bool, error) {
	p, salt, key, err := DecodePHC(encoded)
	if err != nil {
		return false, err
	}
	got := DeriveKey(password, salt, p)
	return subtle.ConstantTimeCompare(got, key) == 1, nil
}
