// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"checklist/internal/delivery/api/middleware"
	"checklist/internal/delivery/api/router/handler"
	"checklist/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	IdentityHandler *handler.IdentityHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	identityHandler *handler.IdentityHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     *middleware.RateLimiter
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		identityHandler: params.IdentityHandler,
		authMiddleware:  params.AuthMiddleware,
		rateLimiter:     params.RateLimiter,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Credential endpoints are throttled per client IP.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, r.rateLimiter.Limit)
		authGroup.POST("/login", r.authHandler.Login, r.rateLimiter.Limit)
		authGroup.POST("/google/one-tap", r.authHandler.GoogleOneTap, r.rateLimiter.Limit)
		authGroup.GET("/google", r.authHandler.GoogleLogin)
		authGroup.GET("/google/callback", r.authHandler.GoogleCallback, r.rateLimiter.Limit)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	apiGroup := e.Group("/api")
	apiGroup.GET("/me", r.identityHandler.Me, r.authMiddleware.Require(entity.RequireIdentity))

	memberGroup := apiGroup.Group("/member", r.authMiddleware.Require(entity.RequireMember))
	{
		memberGroup.GET("/ping", r.identityHandler.MemberPing)
	}

	adminGroup := apiGroup.Group("/admin", r.authMiddleware.Require(entity.RequireAdmin))
	{
		adminGroup.GET("/identities", r.identityHandler.ListIdentities)
		adminGroup.POST("/identities", r.identityHandler.ProvisionIdentity)
		adminGroup.GET("/identities/by-employee/:code", r.identityHandler.FindByEmployeeCode)
		adminGroup.PATCH("/identities/:id/role", r.identityHandler.ChangeRole)
		adminGroup.DELETE("/identities/:id", r.identityHandler.DeleteIdentity)
	}
}
