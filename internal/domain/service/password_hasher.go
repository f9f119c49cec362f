// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. The salt is
	// embedded in the output so the digest is self-contained.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest to see if they match.
	Check(password, hash string) bool
}
