// Package passwords hashes and verifies account passwords.
//
// New hashes are bcrypt. Accounts created before bcrypt stored an unsalted
// SHA-256 hex digest; Check still accepts those and NeedsRehash reports them
// so the caller can upgrade the stored hash after a successful login.
package passwords

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted anywhere in the API.
const MinLength = 6

// MaxBytes is the longest password bcrypt will hash.
const MaxBytes = 72

var (
	// ErrTooShort is returned by Hash when the password is shorter than MinLength.
	ErrTooShort = errors.New("password must be at least 6 characters")
	// ErrTooLong is returned by Hash when the password exceeds MaxBytes.
	ErrTooLong = errors.New("password must be at most 72 bytes")
)

// IsPolicyError reports whether err is a password length rule violation
// that should be reported to the client.
func IsPolicyError(err error) bool {
	return errors.Is(err, ErrTooShort) || errors.Is(err, ErrTooLong)
}

// Hash returns a bcrypt hash of password.
func Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", ErrTooShort
	}
	if len(password) > MaxBytes {
		return "", ErrTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check reports whether password matches hash.
func Check(hash, password string) bool {
	if hash == "" {
		return false
	}
	if isLegacy(hash) {
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(hex.EncodeToString(sum[:]))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether hash should be replaced with a fresh bcrypt hash.
func NeedsRehash(hash string) bool {
	if isLegacy(hash) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost < bcrypt.DefaultCost
}

// isLegacy matches a 64-char hex SHA-256 digest.
func isLegacy(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
