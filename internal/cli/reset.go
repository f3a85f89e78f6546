// Package cli holds operator commands that work directly on the database.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/terraincognita07/wellnest/internal/security"
	"github.com/terraincognita07/wellnest/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	temporaryPasswordLength   = 16
	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var errEchoUnsupported = errors.New("terminal echo cannot be disabled")

type PasswordResetStore interface {
	FindByNormalizedEmail(email string) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

// PasswordSource returns the new password, or an empty value to request a
// generated one.
type PasswordSource func() (string, error)

// ResetPassword replaces the password of the account registered with email.
// When source yields nothing a temporary password is generated and printed.
func ResetPassword(users PasswordResetStore, email string, source PasswordSource, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", strings.TrimSpace(email))
	}

	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %s not found", normalizedEmail)
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	password := ""
	if source != nil {
		password, err = source()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	generated := password == ""
	if generated {
		password, err = generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	} else if err := services.ValidatePasswordStrength(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdateByID(user.ID, map[string]any{"password_hash": string(hash)}); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password updated for %s\n", normalizedEmail)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

// TerminalPasswordSource prompts on out and reads one line from terminal with
// echo disabled. Input that is not a terminal is read as is.
func TerminalPasswordSource(terminal *os.File, out io.Writer) PasswordSource {
	return func() (string, error) {
		fmt.Fprint(out, "New password (empty to generate one): ")

		var line string
		read := func() error {
			var err error
			line, err = readLine(terminal)
			return err
		}
		err := withoutEcho(terminal, read)
		if errors.Is(err, errEchoUnsupported) {
			err = read()
		}
		fmt.Fprintln(out)
		return line, err
	}
}

func readLine(input io.Reader) (string, error) {
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomStringWhere(length, temporaryPasswordAlphabet, func(candidate string) bool {
		return services.ValidatePasswordStrength(candidate) == nil
	})
}
