// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the single account record of the system. The email is the login
// identifier and is stored in its normalized (lower-cased) form; uniqueness
// of the normalized email is enforced at the storage layer.
type User struct {
	ID           uuid.UUID // The unique identifier assigned at creation, immutable afterwards.
	Email        string    // Normalized login identifier, unique across all accounts.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt digest of the user's password. Never leaves the server.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// NormalizeEmail lower-cases and trims a login identifier so that lookups and
// stored values compare case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
