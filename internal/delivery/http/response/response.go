// Package response shapes the JSON payloads of the HTTP delivery. Every
// failure body carries a "msg" field; validation failures additionally carry
// a per-field error list. User payloads are built through UserPayload so the
// credential digest structurally cannot appear on the wire.
package response

import (
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserPayload is the wire projection of an account. It has no digest field.
type UserPayload struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserPayload projects a domain user into its wire form.
func NewUserPayload(user *entity.User) *UserPayload {
	if user == nil {
		return nil
	}

	return &UserPayload{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the uniform failure payload.
type ErrorBody struct {
	Msg    string       `json:"msg"`
	Errors []FieldError `json:"errors,omitempty"`
}

// AuthBody is returned by register and login.
type AuthBody struct {
	Token string       `json:"token"`
	User  *UserPayload `json:"user"`
}

// Auth writes a token-plus-user payload.
func Auth(c echo.Context, statusCode int, token string, user *entity.User) error {
	return c.JSON(statusCode, AuthBody{
		Token: token,
		User:  NewUserPayload(user),
	})
}

// User writes a bare user payload.
func User(c echo.Context, statusCode int, user *entity.User) error {
	return c.JSON(statusCode, map[string]*UserPayload{
		"user": NewUserPayload(user),
	})
}

// Message writes a bare msg payload.
func Message(c echo.Context, statusCode int, msg string) error {
	return c.JSON(statusCode, map[string]string{"msg": msg})
}

// Error writes a failure payload with a msg field.
func Error(c echo.Context, statusCode int, msg string) error {
	return c.JSON(statusCode, ErrorBody{Msg: msg})
}

// ValidationFailed writes a 400 with the per-field error list.
func ValidationFailed(c echo.Context, statusCode int, msg string, fieldErrors []FieldError) error {
	return c.JSON(statusCode, ErrorBody{
		Msg:    msg,
		Errors: fieldErrors,
	})
}
