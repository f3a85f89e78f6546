// Package security generates the random secrets used for signing keys and
// temporary passwords.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const maxDrawAttempts = 64

var (
	ErrNegativeLength   = errors.New("length must be non-negative")
	ErrInvalidAlphabet  = errors.New("alphabet must be non-empty ASCII")
	ErrNoAcceptedString = errors.New("no generated string was accepted")
)

// RandomString draws length characters uniformly from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", ErrNegativeLength
	}
	if !isASCII(alphabet) {
		return "", ErrInvalidAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	var builder strings.Builder
	builder.Grow(length)
	for builder.Len() < length {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[position.Int64()])
	}
	return builder.String(), nil
}

// RandomStringWhere redraws until accept approves a value, so callers can
// demand that generated passwords satisfy the password policy.
func RandomStringWhere(length int, alphabet string, accept func(string) bool) (string, error) {
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		value, err := RandomString(length, alphabet)
		if err != nil {
			return "", err
		}
		if accept(value) {
			return value, nil
		}
	}
	return "", ErrNoAcceptedString
}

func isASCII(alphabet string) bool {
	if alphabet == "" {
		return false
	}
	for index := 0; index < len(alphabet); index++ {
		if alphabet[index] >= 0x80 {
			return false
		}
	}
	return true
}
