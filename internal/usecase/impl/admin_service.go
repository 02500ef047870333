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

// adminService implements usecase.AdminUsecase.
type adminService struct {
	identityRepo repository.IdentityRepository
	policy       service.PasswordPolicy
	logger       *slog.Logger
	now          func() time.Time
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Policy       service.PasswordPolicy
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		identityRepo: params.IdentityRepo,
		policy:       params.Policy,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (s *adminService) ListIdentities(ctx context.Context) ([]*entity.Identity, error) {
	identities, err := s.identityRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i, identity := range identities {
		identities[i] = identity.WithoutCredential()
	}

	return identities, nil
}

// ProvisionIdentity creates an account on behalf of someone else. With a password it
// gets a local credential, otherwise a placeholder that only external login can claim.
func (s *adminService) ProvisionIdentity(ctx context.Context, input usecase.ProvisionIdentityInput) (*entity.Identity, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is required")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
	}

	credential := s.policy.NewPlaceholder(s.now())
	if input.Password != "" {
		if err := s.policy.ValidateStrength(input.Password); err != nil {
			return nil, err
		}

		hashed, err := s.policy.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		credential = hashed
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	identity := &entity.Identity{
		Email:        email,
		Name:         name,
		EmployeeCode: strings.TrimSpace(input.EmployeeCode),
		CompanyCode:  strings.TrimSpace(input.CompanyCode),
		Credential:   credential,
		Role:         role,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		if domainerrors.IsUniqueViolation(err) {
			return nil, errors.WithStack(domainerrors.ErrIdentityExists)
		}

		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Identity provisioned",
		slog.String("identity_id", identity.ID.String()),
		slog.String("role", role.String()),
	)

	return identity.WithoutCredential(), nil
}

func (s *adminService) FindByEmployeeCode(ctx context.Context, code string) (*entity.Identity, error) {
	identity, err := s.identityRepo.FindByEmployeeCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, mapNotFound(err)
	}

	return identity.WithoutCredential(), nil
}

// ChangeRole is the only operation that changes a role. Administrators cannot demote themselves.
func (s *adminService) ChangeRole(ctx context.Context, actorID, identityID uuid.UUID, role entity.Role) (*entity.Identity, error) {
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
	}
	if actorID == identityID && role != entity.RoleAdmin {
		return nil, domainerrors.ErrValidationFailed.WithDetails("administrators cannot demote themselves")
	}

	updated, err := s.identityRepo.Update(ctx, identityID, entity.IdentityPatch{Role: &role})
	if err != nil {
		return nil, mapNotFound(err)
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Identity role changed",
		slog.String("actor_id", actorID.String()),
		slog.String("identity_id", identityID.String()),
		slog.String("role", role.String()),
	)

	return updated.WithoutCredential(), nil
}

// DeleteIdentity removes an identity permanently. Administrators cannot delete themselves.
func (s *adminService) DeleteIdentity(ctx context.Context, actorID, identityID uuid.UUID) error {
	if actorID == identityID {
		return domainerrors.ErrValidationFailed.WithDetails("administrators cannot delete themselves")
	}

	if err := s.identityRepo.Delete(ctx, identityID); err != nil {
		return mapNotFound(err)
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Identity deleted",
		slog.String("actor_id", actorID.String()),
		slog.String("identity_id", identityID.String()),
	)

	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrIdentityNotFound) {
		return errors.WithStack(domainerrors.ErrIdentityNotFound)
	}

	return err
}
