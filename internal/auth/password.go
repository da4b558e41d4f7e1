package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

var ErrWeakPassword = errors.New("password does not meet requirements")

// ValidatePassword enforces the signup password rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, MinPasswordLength)
	}
	if strings.ContainsFunc(password, unicode.IsSpace) {
		return fmt.Errorf("%w: must not contain spaces", ErrWeakPassword)
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
