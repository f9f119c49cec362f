// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/cookie"
	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/delivery/http/validator"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Plaintext passwords are bounded at the wire only; the stored digest has a
// fixed size regardless.
type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email,min=3,max=100"`
	Password string `json:"password" validate:"required,min=5,max=20"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,min=3,max=100"`
	Password string `json:"password" validate:"required,min=5,max=20"`
}

type editAccountRequest struct {
	Name     string `json:"name" validate:"omitempty,min=1,max=50"`
	Email    string `json:"email" validate:"omitempty,email,min=3,max=100"`
	Password string `json:"password" validate:"omitempty,min=5,max=20"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request. On success the token is
// both returned in the body and set as the access-token cookie.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.Message())
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.Message(), validator.FieldErrors(err))
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cookie.SetAccessToken(c, output.Token)

	return response.Auth(c, http.StatusCreated, output.Token, output.User)
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.Message())
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.Message(), validator.FieldErrors(err))
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cookie.SetAccessToken(c, output.Token)

	return response.Auth(c, http.StatusOK, output.Token, output.User)
}

// Me returns the authenticated principal resolved by the auth gate.
func (h *AccountHandler) Me(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		// Only reachable if the route was wired without the auth gate.
		return domainerrors.ErrUnauthenticated.WrapMessage("no principal on request")
	}

	return response.User(c, http.StatusOK, principal)
}

// Edit handles the partial account update of the authenticated principal.
func (h *AccountHandler) Edit(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no principal on request")
	}

	var req editAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.Message())
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.Message(), validator.FieldErrors(err))
	}

	if err := h.uc.EditAccount(c.Request().Context(), principal.ID, &usecase.EditAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Successful")
}

// Logout clears the access-token cookie. Logout is stateless: a bearer token
// already in a client's possession stays valid until it expires, as there is
// no server-side revocation.
func (h *AccountHandler) Logout(c echo.Context) error {
	cookie.ClearAccessToken(c)

	return response.Message(c, http.StatusOK, "Successfully logged out")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
