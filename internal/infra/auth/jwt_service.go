package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"gatekeeper/config"
	"gatekeeper/internal/domain/service"
)

// defaultAccessTTL is the expiry window fixed at issuance. A token is not
// renewable; a fresh login is the only way to extend a session.
const defaultAccessTTL = 2 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    []byte        // Symmetric key for HS256 signing, held only by the server.
	accessTTL time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService. An absent signing secret
// is a deployment misconfiguration: there is no fallback default, the
// constructor fails and the process does not come up.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	ttl := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    []byte(cfg.SecretKey.Access),
		accessTTL: ttl,
	}, nil
}

// Issue creates a signed token whose subject is the account ID.
func (s *jwtService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses and validates a token string. It distinguishes an expired
// token from every other failure; bad signatures, malformed payloads and
// missing subjects all collapse into service.ErrTokenInvalid.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	var registered jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenString, &registered, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, "token past its expiry")
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}
	if !token.Valid {
		return nil, errors.Wrap(service.ErrTokenInvalid, "token failed validation")
	}

	if registered.Subject == "" {
		return nil, errors.Wrap(service.ErrTokenInvalid, "token has no subject claim")
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "token subject is not an account id")
	}

	return &service.Claims{
		UserID:           userID,
		RegisteredClaims: registered,
	}, nil
}
