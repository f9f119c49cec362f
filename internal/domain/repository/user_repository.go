// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no account matches the given identifier.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when a create or update would violate the
// uniqueness of the normalized email. It is a first-class variant so the
// service layer can map it to a conflict response without inspecting
// driver-specific error strings.
var ErrEmailTaken = errors.New("email already taken")

// UserRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
// Emails passed in are expected to be normalized already.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. The uniqueness check and the insert are
	// atomic: a concurrent create of the same email surfaces ErrEmailTaken
	// on exactly one of the two calls.
	Create(ctx context.Context, user *entity.User) error

	// Update persists changes to an existing user. Changing the email to one
	// held by another account surfaces ErrEmailTaken.
	Update(ctx context.Context, user *entity.User) error
}
