// Package security keeps credential handling behind a small interface so
// the user and auth services never touch bcrypt directly.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Marxcruz/hospital-api/pkg/errors"
)

// Registration enforces this; the front end mirrors the same limit.
const minPasswordLength = 8

// PasswordHasher hashes a contraseña on registration and checks it on login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher. A cost outside bcrypt's
// valid range falls back to the library default.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", apperrors.NewBadRequest("la contraseña debe tener al menos 8 caracteres", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
