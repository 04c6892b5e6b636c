// ABOUTME: Password hashing and comparison helpers built on bcrypt
// ABOUTME: Keeps a dummy hash for constant-time behavior on unknown principals

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no principal was found, so a lookup
// miss takes the same time as a real password check. This prevents timing
// attacks that could enumerate valid usernames.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns the bcrypt hash of a plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
