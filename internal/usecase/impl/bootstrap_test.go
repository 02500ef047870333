package impl

import (
	"context"
	"testing"
	"time"

	"checklist/config"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/infra/persistence/memory"
	mockRepo "checklist/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bootstrapConfig() *config.Config {
	return &config.Config{Bootstrap: &config.BootstrapConfig{
		AdminEmail:    "Root@Example.com",
		AdminPassword: "Initial1Pass",
	}}
}

func TestBootstrapper_SeedAdminIsIdempotent(t *testing.T) {
	repo := memory.NewIdentityRepository()
	policy := newTestPolicy()
	seed := NewBootstrapper(BootstrapperParams{IdentityRepo: repo, Policy: policy, Config: bootstrapConfig(), Logger: discardLogger()})
	ctx := context.Background()

	require.NoError(t, seed.SeedAdmin(ctx))
	require.NoError(t, seed.SeedAdmin(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	admin := all[0]
	assert.Equal(t, "root@example.com", admin.Email)
	assert.Equal(t, "Administrator", admin.Name)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, policy.Verify("Initial1Pass", admin.Credential))
}

func TestBootstrapper_NeverOverwritesExistingAccount(t *testing.T) {
	repo := memory.NewIdentityRepository()
	policy := newTestPolicy()
	ctx := context.Background()

	existing := &entity.Identity{
		Email:      "root@example.com",
		Name:       "Demoted",
		Credential: entity.ExternalPlaceholderCredential(time.Now()),
		Role:       entity.RoleMember,
	}
	require.NoError(t, repo.Create(ctx, existing))

	seed := NewBootstrapper(BootstrapperParams{IdentityRepo: repo, Policy: policy, Config: bootstrapConfig(), Logger: discardLogger()})
	require.NoError(t, seed.SeedAdmin(ctx))

	stored, err := repo.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, stored.Role)
	assert.Equal(t, "Demoted", stored.Name)
	assert.True(t, stored.Credential.IsPlaceholder())
}

func TestBootstrapper_NoConfigIsNoop(t *testing.T) {
	repo := mockRepo.NewMockIdentityRepository(t)
	seed := NewBootstrapper(BootstrapperParams{IdentityRepo: repo, Policy: newTestPolicy(), Config: &config.Config{}, Logger: discardLogger()})

	require.NoError(t, seed.SeedAdmin(context.Background()))
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestBootstrapper_ConcurrentSeedIsNoop(t *testing.T) {
	repo := mockRepo.NewMockIdentityRepository(t)
	seed := NewBootstrapper(BootstrapperParams{IdentityRepo: repo, Policy: newTestPolicy(), Config: bootstrapConfig(), Logger: discardLogger()})
	ctx := context.Background()

	repo.EXPECT().FindByEmail(ctx, "root@example.com").Return(nil, repository.ErrIdentityNotFound).Once()
	repo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Identity")).
		Return(domainerrors.NewUniqueViolationError(errors.New("duplicate"), "email already exists")).Once()

	assert.NoError(t, seed.SeedAdmin(ctx))
}

func TestBootstrapper_StoreFailureAborts(t *testing.T) {
	repo := mockRepo.NewMockIdentityRepository(t)
	seed := NewBootstrapper(BootstrapperParams{IdentityRepo: repo, Policy: newTestPolicy(), Config: bootstrapConfig(), Logger: discardLogger()})
	ctx := context.Background()

	repo.EXPECT().FindByEmail(ctx, "root@example.com").
		Return(nil, domainerrors.NewStoreError(errors.New("refused"), "failed to find identity")).Once()

	assert.Error(t, seed.SeedAdmin(ctx))
}
