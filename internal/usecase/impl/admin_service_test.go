package impl

import (
	"context"
	"testing"
	"time"

	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/infra/persistence/memory"
	"checklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture() (usecase.AdminUsecase, repository.IdentityRepository) {
	repo := memory.NewIdentityRepository()

	return NewAdminService(AdminServiceParams{
		IdentityRepo: repo,
		Policy:       newTestPolicy(),
		Logger:       discardLogger(),
	}), repo
}

func seedIdentity(t *testing.T, repo repository.IdentityRepository, email string, role entity.Role) *entity.Identity {
	t.Helper()

	identity := &entity.Identity{
		Email:      email,
		Credential: entity.ExternalPlaceholderCredential(time.Now()),
		Role:       role,
	}
	require.NoError(t, repo.Create(context.Background(), identity))

	return identity
}

func TestAdminService_ProvisionIdentity(t *testing.T) {
	svc, repo := newAdminFixture()
	ctx := context.Background()

	withPassword, err := svc.ProvisionIdentity(ctx, usecase.ProvisionIdentityInput{
		Email:        "Staff@Example.com",
		Password:     "Sturdy1Pass",
		EmployeeCode: " E-100 ",
		CompanyCode:  "ACME",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", withPassword.Email)
	assert.Equal(t, "staff", withPassword.Name)
	assert.Equal(t, entity.RoleMember, withPassword.Role)
	assert.Equal(t, "E-100", withPassword.EmployeeCode)
	assert.Empty(t, withPassword.Credential.Encode())

	stored, err := repo.FindByID(ctx, withPassword.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CredentialLocal, stored.Credential.Kind())

	external, err := svc.ProvisionIdentity(ctx, usecase.ProvisionIdentityInput{Email: "ext@example.com", Role: entity.RoleAdmin})
	require.NoError(t, err)
	stored, err = repo.FindByID(ctx, external.ID)
	require.NoError(t, err)
	assert.True(t, stored.Credential.IsPlaceholder())
	assert.Equal(t, entity.RoleAdmin, stored.Role)

	found, err := svc.FindByEmployeeCode(ctx, "E-100")
	require.NoError(t, err)
	assert.Equal(t, withPassword.ID, found.ID)
}

func TestAdminService_ProvisionIdentityRejections(t *testing.T) {
	svc, _ := newAdminFixture()
	ctx := context.Background()

	_, err := svc.ProvisionIdentity(ctx, usecase.ProvisionIdentityInput{Email: "a@example.com", EmployeeCode: "E-1"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input usecase.ProvisionIdentityInput
		want  error
	}{
		{name: "missing email", input: usecase.ProvisionIdentityInput{}, want: domainerrors.ErrValidationFailed},
		{name: "unknown role", input: usecase.ProvisionIdentityInput{Email: "b@example.com", Role: "owner"}, want: domainerrors.ErrValidationFailed},
		{name: "weak password", input: usecase.ProvisionIdentityInput{Email: "b@example.com", Password: "short"}, want: domainerrors.ErrPasswordStrength},
		{name: "duplicate email", input: usecase.ProvisionIdentityInput{Email: "A@example.com"}, want: domainerrors.ErrIdentityExists},
		{name: "duplicate employee code", input: usecase.ProvisionIdentityInput{Email: "c@example.com", EmployeeCode: "E-1"}, want: domainerrors.ErrIdentityExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ProvisionIdentity(ctx, tt.input)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestAdminService_ListIdentitiesStripsCredentials(t *testing.T) {
	svc, repo := newAdminFixture()
	ctx := context.Background()

	seedIdentity(t, repo, "one@example.com", entity.RoleMember)
	seedIdentity(t, repo, "two@example.com", entity.RoleAdmin)

	identities, err := svc.ListIdentities(ctx)
	require.NoError(t, err)
	require.Len(t, identities, 2)
	for _, identity := range identities {
		assert.Empty(t, identity.Credential.Encode())
	}
}

func TestAdminService_ChangeRole(t *testing.T) {
	svc, repo := newAdminFixture()
	ctx := context.Background()

	admin := seedIdentity(t, repo, "admin@example.com", entity.RoleAdmin)
	member := seedIdentity(t, repo, "member@example.com", entity.RoleMember)

	promoted, err := svc.ChangeRole(ctx, admin.ID, member.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	_, err = svc.ChangeRole(ctx, admin.ID, admin.ID, entity.RoleMember)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = svc.ChangeRole(ctx, admin.ID, member.ID, "owner")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = svc.ChangeRole(ctx, admin.ID, uuid.New(), entity.RoleMember)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))

	stored, err := repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestAdminService_DeleteIdentity(t *testing.T) {
	svc, repo := newAdminFixture()
	ctx := context.Background()

	admin := seedIdentity(t, repo, "admin@example.com", entity.RoleAdmin)
	member := seedIdentity(t, repo, "member@example.com", entity.RoleMember)

	err := svc.DeleteIdentity(ctx, admin.ID, admin.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	require.NoError(t, svc.DeleteIdentity(ctx, admin.ID, member.ID))

	_, err = repo.FindByID(ctx, member.ID)
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))

	err = svc.DeleteIdentity(ctx, admin.ID, member.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))

	_, err = svc.FindByEmployeeCode(ctx, "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))
}
