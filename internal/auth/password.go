package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 10 lands around 100ms per hash on commodity hardware.
const bcryptCost = 10

// HashPassword returns the salted bcrypt hash of a password.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

// CheckPassword reports whether the password matches the stored hash.
// The comparison is constant-time.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
