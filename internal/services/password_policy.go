package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordRunes = 8
	// bcrypt only hashes the first 72 bytes.
	maxPasswordBytes = 72
)

var (
	ErrWeakPassword    = errors.New("weak password")
	ErrPasswordTooLong = errors.New("password too long")
)

func ValidatePasswordStrength(password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	if utf8.RuneCountInString(password) < minPasswordRunes {
		return ErrWeakPassword
	}

	var upper, lower, digit bool
	for _, char := range password {
		upper = upper || unicode.IsUpper(char)
		lower = lower || unicode.IsLower(char)
		digit = digit || unicode.IsDigit(char)
	}
	if !upper || !lower || !digit {
		return ErrWeakPassword
	}
	return nil
}
