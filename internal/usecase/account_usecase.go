// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// EditAccountInput carries the selective field replacement for a profile
// edit. Empty fields are left untouched; a supplied password is re-hashed.
type EditAccountInput struct {
	Name     string
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns a freshly issued token together with the account it is
// bound to. The account's digest never crosses the delivery boundary; the
// handler projects the entity into a wire payload.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account and issues a token for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates a known account and issues a token for it.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// EditAccount applies a partial update to the acting principal's account.
	// Outstanding tokens are not re-issued or invalidated by an edit.
	EditAccount(ctx context.Context, userID uuid.UUID, input *EditAccountInput) error
}
