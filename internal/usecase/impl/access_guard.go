package impl

import (
	"context"
	"log/slog"

	deliverycontext "checklist/internal/delivery/context"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/domain/service"
	"checklist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Guard rejection reasons reported to AuthMetrics.
const (
	RejectionNoCredentials = "no_credentials"
	RejectionInvalidToken  = "invalid_token"
	RejectionUserNotFound  = "user_not_found"
	RejectionRoleDenied    = "role_denied"
)

// accessGuard implements usecase.AccessGuard.
type accessGuard struct {
	identityRepo repository.IdentityRepository
	tokenService service.SessionTokenService
	metrics      service.AuthMetrics
	logger       *slog.Logger
}

// AccessGuardParams holds dependencies for the guard, injected by Fx.
type AccessGuardParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	TokenService service.SessionTokenService
	Metrics      service.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewAccessGuard is the constructor for accessGuard.
func NewAccessGuard(params AccessGuardParams) usecase.AccessGuard {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopAuthMetrics{}
	}

	return &accessGuard{
		identityRepo: params.IdentityRepo,
		tokenService: params.TokenService,
		metrics:      metrics,
		logger:       params.Logger,
	}
}

// Authorize walks token presence, token validity, identity existence and role, in
// that order. The store is not consulted for a token that fails validation.
func (g *accessGuard) Authorize(ctx context.Context, token string, requirement entity.Requirement) (*usecase.AccessDecision, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, g.logger)

	if token == "" {
		g.metrics.RecordGuardRejection(RejectionNoCredentials)

		return nil, errors.WithStack(domainerrors.ErrNoCredentials)
	}

	claims, err := g.tokenService.Validate(token)
	if err != nil {
		g.metrics.RecordGuardRejection(RejectionInvalidToken)

		return nil, errors.WithStack(domainerrors.ErrInvalidToken)
	}

	identity, err := g.identityRepo.FindByID(ctx, claims.IdentityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			g.metrics.RecordGuardRejection(RejectionUserNotFound)
			logger.Info("Session refers to a deleted identity", slog.String("identity_id", claims.IdentityID.String()))

			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, err
	}

	if !requirement.Admits(identity.Role) {
		g.metrics.RecordGuardRejection(RejectionRoleDenied)
		logger.Info("Role not authorized",
			slog.String("identity_id", identity.ID.String()),
			slog.String("role", identity.Role.String()),
			slog.String("requirement", requirement.String()),
		)

		return nil, errors.WithStack(domainerrors.ErrRoleNotAuthorized)
	}

	decision := &usecase.AccessDecision{Identity: identity.WithoutCredential()}

	if g.tokenService.ShouldRenew(claims.ExpiresAt) {
		renewed, err := g.tokenService.Issue(identity.ID)
		if err != nil {
			// The presented token is still valid; serve the request without renewing.
			logger.Warn("Failed to renew session token", slog.Any("error", err))
		} else {
			g.metrics.RecordRenewal()
			decision.RenewedToken = renewed
		}
	}

	return decision, nil
}
