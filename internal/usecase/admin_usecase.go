package usecase

import (
	"context"

	"checklist/internal/domain/entity"

	"github.com/google/uuid"
)

// ProvisionIdentityInput describes an account created by an administrator.
// Without a password the account can only sign in through an external provider.
type ProvisionIdentityInput struct {
	Email        string
	Name         string
	Password     string
	EmployeeCode string
	CompanyCode  string
	Role         entity.Role
}

// AdminUsecase covers identity management. Callers must already hold the admin role.
type AdminUsecase interface {
	ListIdentities(ctx context.Context) ([]*entity.Identity, error)
	ProvisionIdentity(ctx context.Context, input ProvisionIdentityInput) (*entity.Identity, error)
	FindByEmployeeCode(ctx context.Context, code string) (*entity.Identity, error)
	ChangeRole(ctx context.Context, actorID, identityID uuid.UUID, role entity.Role) (*entity.Identity, error)
	DeleteIdentity(ctx context.Context, actorID, identityID uuid.UUID) error
}
