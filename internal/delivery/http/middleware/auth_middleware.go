package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/cookie"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware is the gate that turns a raw request into an authenticated
// principal or a rejection. It extracts a token, verifies it, resolves the
// backing account and binds it to the request context. Every outcome is
// terminal; there are no retries.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, logger: logger}
}

// Authenticate validates the access token and attaches the principal.
//
// Extraction prefers the Authorization header; the access-token cookie is
// consulted only when no header is present. A header that is present but not
// exactly "Bearer <token>" yields no credential at all. Verification and
// resolution failures are indistinguishable to the caller: both clear the
// cookie and reject with the same status, so a valid token for a vanished
// account leaks no existence information.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var token string

		if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
			segments := strings.Split(authHeader, " ")
			if len(segments) == 2 && segments[0] == "Bearer" {
				token = segments[1]
			}
		} else if tokenCookie, err := c.Cookie(cookie.AccessToken); err == nil {
			token = tokenCookie.Value
		}

		if token == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("no credential supplied")
		}

		claims, err := m.tokenSvc.Verify(token)
		if err != nil {
			cookie.ClearAccessToken(c)

			return domainerrors.ErrInvalidCredential.WrapMessage(err.Error())
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			cookie.ClearAccessToken(c)

			if !errors.Is(err, repository.ErrUserNotFound) {
				// Internal faults are deliberately not surfaced; the caller
				// sees the same rejection as for a bad token.
				m.logger.Error("Account resolution failed in auth gate", slog.Any("error", err))
			}

			return domainerrors.ErrInvalidCredential.WrapMessage("token does not resolve to an account")
		}

		ctx := deliverycontext.WithPrincipal(c.Request().Context(), user)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
