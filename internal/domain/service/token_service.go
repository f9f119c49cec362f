package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenExpired is returned by Verify when the token's expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid is returned by Verify for every other failure: a signature
// mismatch, a malformed payload, or a missing subject claim.
var ErrTokenInvalid = errors.New("token invalid")

// Claims is the verified claim set carried by an access token.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded token for the given account.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks the signature and expiry of a token string and returns
	// the decoded claims. Verification is pure; it never touches storage.
	Verify(tokenString string) (*Claims, error)
}
