// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// DefaultBcryptCost is the cost factor used outside tests.
const DefaultBcryptCost = 12

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	cost int
}

// NewPasswordService creates a new password service instance hashing with the given bcrypt cost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain text password with a hashed password.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength accepts 6 to 128 characters.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if !valueobject.IsValidPassword(password) {
		return errors.New("password must be 6-128 characters long")
	}
	return nil
}
