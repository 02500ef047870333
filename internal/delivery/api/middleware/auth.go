package middleware

import (
	"log/slog"

	deliverycontext "checklist/internal/delivery/context"
	"checklist/internal/domain/entity"
	"checklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Guard   usecase.AccessGuard
	Cookies *SessionCookies
	Logger  *slog.Logger
}

// AuthMiddleware puts routes behind the access guard.
type AuthMiddleware struct {
	guard   usecase.AccessGuard
	cookies *SessionCookies
	logger  *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		guard:   params.Guard,
		cookies: params.Cookies,
		logger:  params.Logger,
	}
}

// Require admits a request only when the guard authorizes it for the requirement.
// A renewed token overwrites the session cookie before the handler runs.
func (m *AuthMiddleware) Require(requirement entity.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			decision, err := m.guard.Authorize(ctx, m.cookies.Token(c), requirement)
			if err != nil {
				return err
			}

			if decision.RenewedToken != nil {
				m.cookies.Write(c, decision.RenewedToken)
			}

			deliverycontext.SetIdentity(c, decision.Identity)
			logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).
				With(slog.String("identity_id", decision.Identity.ID.String()))
			c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))

			return next(c)
		}
	}
}

// GetIdentityID returns the ID of the identity the guard admitted.
func GetIdentityID(c echo.Context) (uuid.UUID, bool) {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}

	return identity.ID, true
}
