// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"gatekeeper/config"
	"gatekeeper/internal/domain/service"
)

// defaultBcryptCost is intentionally high; offline brute force against a
// leaked digest table has to pay this work factor per guess.
const defaultBcryptCost = 15

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The work factor comes
// from configuration and falls back to defaultBcryptCost when unset.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := defaultBcryptCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// NewBcryptHasherWithCost builds a hasher with an explicit work factor.
// Tests use this with a low cost to keep hashing fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted digest from a plaintext password using bcrypt.
// bcrypt generates the salt itself and embeds it in the output.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt digest. The comparison is
// constant-time within bcrypt; a mismatch and a malformed digest both report
// false.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
