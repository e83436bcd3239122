package fastauth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when no cost is
// configured. Sized for interactive login
const DefaultHashCost = 12

// HashPassword will generate a password hash. Empty passwords are
// hashable, the caller decides whether to allow them
func HashPassword(password string) (string, error) {
	return hashPasswordWithCost(password, passwordHashCost())
}

func hashPasswordWithCost(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
