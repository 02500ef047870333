package impl

import (
	"context"
	"log/slog"
	"strings"

	"checklist/config"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/domain/service"
	"checklist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bootstrapper implements usecase.Bootstrapper.
type bootstrapper struct {
	identityRepo repository.IdentityRepository
	policy       service.PasswordPolicy
	cfg          *config.BootstrapConfig
	logger       *slog.Logger
}

// BootstrapperParams holds dependencies for the seed, injected by Fx.
type BootstrapperParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Policy       service.PasswordPolicy
	Config       *config.Config
	Logger       *slog.Logger
}

// NewBootstrapper is the constructor for bootstrapper.
func NewBootstrapper(params BootstrapperParams) usecase.Bootstrapper {
	return &bootstrapper{
		identityRepo: params.IdentityRepo,
		policy:       params.Policy,
		cfg:          params.Config.Bootstrap,
		logger:       params.Logger,
	}
}

// SeedAdmin makes sure an administrator exists at the configured email. An existing
// account at that email is left exactly as it is.
func (b *bootstrapper) SeedAdmin(ctx context.Context) error {
	if b.cfg == nil || strings.TrimSpace(b.cfg.AdminEmail) == "" {
		b.logger.Info("No bootstrap administrator configured")

		return nil
	}

	email := entity.NormalizeEmail(b.cfg.AdminEmail)

	existing, err := b.identityRepo.FindByEmail(ctx, email)
	if err == nil {
		b.logger.Info("Bootstrap administrator already present",
			slog.String("identity_id", existing.ID.String()),
		)

		return nil
	}
	if !errors.Is(err, repository.ErrIdentityNotFound) {
		return errors.Wrap(err, "failed to look up bootstrap administrator")
	}

	credential, err := b.policy.Hash(b.cfg.AdminPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash bootstrap administrator password")
	}

	name := strings.TrimSpace(b.cfg.AdminName)
	if name == "" {
		name = "Administrator"
	}

	admin := &entity.Identity{
		Email:      email,
		Name:       name,
		Credential: credential,
		Role:       entity.RoleAdmin,
	}
	if err := b.identityRepo.Create(ctx, admin); err != nil {
		if domainerrors.IsUniqueViolation(err) {
			// Another instance seeded it first.
			b.logger.Info("Bootstrap administrator created concurrently")

			return nil
		}

		return errors.Wrap(err, "failed to create bootstrap administrator")
	}

	b.logger.Info("Bootstrap administrator created", slog.String("identity_id", admin.ID.String()))

	return nil
}
