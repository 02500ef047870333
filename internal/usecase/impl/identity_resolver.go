// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "checklist/internal/delivery/context"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/domain/service"
	"checklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// placeholderEmailDomain is used for external accounts whose claim carried no email.
// The .invalid TLD can never receive mail.
const placeholderEmailDomain = "users.checklist.invalid"

// identityResolver implements usecase.IdentityResolver.
type identityResolver struct {
	identityRepo repository.IdentityRepository
	policy       service.PasswordPolicy
	metrics      service.AuthMetrics
	logger       *slog.Logger
	now          func() time.Time
}

// IdentityResolverParams holds dependencies for the resolver, injected by Fx.
type IdentityResolverParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Policy       service.PasswordPolicy
	Metrics      service.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewIdentityResolver is the constructor for identityResolver.
func NewIdentityResolver(params IdentityResolverParams) usecase.IdentityResolver {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopAuthMetrics{}
	}

	return &identityResolver{
		identityRepo: params.IdentityRepo,
		policy:       params.Policy,
		metrics:      metrics,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// Resolve runs the lookup path (provider ID, then email, then create). A uniqueness
// failure or a lost link race replays the whole path once; a second failure is a conflict.
func (r *identityResolver) Resolve(ctx context.Context, claim entity.ClaimedIdentity) (*entity.Identity, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, r.logger)

	if strings.TrimSpace(claim.ProviderID) == "" {
		return nil, domainerrors.ErrPolicy.WithDetails("claim carries no provider subject")
	}

	identity, outcome, err := r.resolveOnce(ctx, claim)
	if err != nil && isResolutionRace(err) {
		logger.Info("Identity resolution lost a race, retrying",
			slog.String("origin", string(claim.Origin)),
			slog.Any("error", err),
		)
		r.metrics.RecordResolution(service.ResolutionRetried)

		identity, outcome, err = r.resolveOnce(ctx, claim)
		if err != nil && isResolutionRace(err) {
			r.metrics.RecordResolution(service.ResolutionConflict)
			logger.Warn("Identity resolution failed after retry", slog.Any("error", err))

			return nil, domainerrors.ErrConflict.WithDetails("concurrent resolution did not converge")
		}
	}
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			r.metrics.RecordResolution(service.ResolutionConflict)
		}

		return nil, err
	}

	r.metrics.RecordResolution(outcome)
	logger.Debug("Identity resolved",
		slog.String("identity_id", identity.ID.String()),
		slog.String("outcome", outcome),
	)

	return identity, nil
}

func (r *identityResolver) resolveOnce(ctx context.Context, claim entity.ClaimedIdentity) (*entity.Identity, string, error) {
	existing, err := r.identityRepo.FindByProviderID(ctx, claim.ProviderID)
	if err == nil {
		return existing, service.ResolutionFound, nil
	}
	if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, "", err
	}

	email := entity.NormalizeEmail(claim.Email)
	if email != "" {
		existing, err = r.identityRepo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			linked, err := r.link(ctx, existing, claim)
			if err != nil {
				return nil, "", err
			}

			return linked, service.ResolutionLinked, nil
		case !errors.Is(err, repository.ErrIdentityNotFound):
			return nil, "", err
		}
	}

	created, err := r.create(ctx, claim, email)
	if err != nil {
		return nil, "", err
	}

	return created, service.ResolutionCreated, nil
}

// link binds the provider subject to an account that owns the claimed email.
// An account is linked at most once.
func (r *identityResolver) link(ctx context.Context, existing *entity.Identity, claim entity.ClaimedIdentity) (*entity.Identity, error) {
	if existing.IsLinked() {
		if existing.ProviderID == claim.ProviderID {
			return existing, nil
		}

		return nil, domainerrors.ErrConflict.WithDetails("email is linked to a different provider account")
	}

	providerID := claim.ProviderID
	patch := entity.IdentityPatch{ProviderID: &providerID, OnlyIfUnlinked: true}
	if existing.AvatarURL == "" && claim.AvatarURL != "" {
		avatar := claim.AvatarURL
		patch.AvatarURL = &avatar
	}

	return r.identityRepo.Update(ctx, existing.ID, patch)
}

func (r *identityResolver) create(ctx context.Context, claim entity.ClaimedIdentity, email string) (*entity.Identity, error) {
	if email == "" {
		email = uuid.NewString() + "@" + placeholderEmailDomain
	}

	name := strings.TrimSpace(claim.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	identity := &entity.Identity{
		Email:      email,
		ProviderID: claim.ProviderID,
		Name:       name,
		AvatarURL:  claim.AvatarURL,
		Credential: r.policy.NewPlaceholder(r.now()),
		Role:       entity.RoleMember,
	}
	if err := r.identityRepo.Create(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func isResolutionRace(err error) bool {
	return domainerrors.IsUniqueViolation(err) || errors.Is(err, repository.ErrIdentityAlreadyLinked)
}
