package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrDisplayNameTooLong     = errors.New("display name too long")
)

const maxDisplayNameLength = 64

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func NormalizeDisplayName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if len([]rune(name)) > maxDisplayNameLength {
		return "", ErrDisplayNameTooLong
	}
	return name, nil
}
