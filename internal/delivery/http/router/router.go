// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler      *handler.AccountHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:      params.AccountHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Credential issuance
	e.POST("/register", r.accountHandler.Register)
	e.POST("/login", r.accountHandler.Login)
	e.GET("/logout", r.accountHandler.Logout)

	// Routes gated on a verified access token
	e.GET("/", r.accountHandler.Me, r.authMiddleware.Authenticate)
	e.PUT("/", r.accountHandler.Edit, r.authMiddleware.Authenticate)
}
