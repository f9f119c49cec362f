package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatekeeper/config"
	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/cookie"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo resolves every lookup to a fixed user or a fixed error.
type stubUserRepo struct {
	user *entity.User
	err  error
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.user, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return s.err }

func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return s.err }

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "auth-gate-test-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokenSvc
}

// newAuthTestServer wires the auth gate in front of a handler that echoes the
// resolved principal's email.
func newAuthTestServer(t *testing.T, tokenSvc service.TokenService, repo repository.UserRepository) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError

	authMW := NewAuthMiddleware(tokenSvc, repo, logger)
	e.GET("/", func(c echo.Context) error {
		principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
		require.True(t, ok)

		return c.String(http.StatusOK, principal.Email)
	}, authMW.Authenticate)

	return e
}

func clearedAccessTokenCookie(rec *httptest.ResponseRecorder) bool {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookie.AccessToken && ck.Value == "" && ck.MaxAge < 0 {
			return true
		}
	}

	return false
}

func TestAuthMiddleware_NoCredential(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized!")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com"}
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{user: user})

	token, err := tokenSvc.Issue(user.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no separating space", header: "Bearer" + token},
		{name: "wrong scheme", header: "Basic " + token},
		{name: "extra segment", header: "Bearer " + token + " trailing"},
		{name: "scheme only", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_MalformedHeaderIgnoresCookie(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com"}
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{user: user})

	token, err := tokenSvc.Issue(user.ID)
	require.NoError(t, err)

	// The cookie alone would authenticate, but a present header wins the
	// extraction and its malformation is terminal.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer"+token)
	req.AddCookie(&http.Cookie{Name: cookie.AccessToken, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_TamperedToken(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com"}
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{user: user})

	token, err := tokenSvc.Issue(user.ID)
	require.NoError(t, err)
	tampered := "xx" + token[2:]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, clearedAccessTokenCookie(rec), "expected the access-token cookie to be cleared")
}

func TestAuthMiddleware_ValidHeaderToken(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com"}
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{user: user})

	token, err := tokenSvc.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "meow@meow.com", rec.Body.String())
}

func TestAuthMiddleware_ValidCookieToken(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "meow@meow.com"}
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{user: user})

	token, err := tokenSvc.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.AccessToken, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "meow@meow.com", rec.Body.String())
}

func TestAuthMiddleware_AccountGone(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{err: repository.ErrUserNotFound})

	token, err := tokenSvc.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Same rejection as a bad token, so no account-existence leak.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, clearedAccessTokenCookie(rec), "expected the access-token cookie to be cleared")
}

func TestAuthMiddleware_ResolutionFault(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	e := newAuthTestServer(t, tokenSvc, &stubUserRepo{err: errors.New("connection refused")})

	token, err := tokenSvc.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	req.Header.Set("Authorization", "Bearer "+token)
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "connection refused"))
}
