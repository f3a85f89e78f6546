package services

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     error
	}{
		{name: "registration example", password: "StrongPass1"},
		{name: "cyrillic letters count as cases", password: "Пароль2024"},
		{name: "exactly bcrypt limit", password: "Aa1" + strings.Repeat("x", maxPasswordBytes-3)},
		{name: "seven runes", password: "Short1a", want: ErrWeakPassword},
		{name: "no uppercase", password: "cycletracker1", want: ErrWeakPassword},
		{name: "no lowercase", password: "CYCLETRACKER1", want: ErrWeakPassword},
		{name: "no digit", password: "CycleTracker", want: ErrWeakPassword},
		{name: "past bcrypt limit", password: "Aa1" + strings.Repeat("x", maxPasswordBytes-2), want: ErrPasswordTooLong},
		{name: "multibyte past bcrypt limit", password: "Aa1" + strings.Repeat("ж", 35), want: ErrPasswordTooLong},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidatePasswordStrength(testCase.password); !errors.Is(err, testCase.want) {
				t.Fatalf("ValidatePasswordStrength(%q) = %v, want %v", testCase.password, err, testCase.want)
			}
		})
	}
}
