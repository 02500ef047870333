package postgres

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB runs the repository against a real SQL engine with the same unique indexes.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "identities.db")), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.IdentityModel{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func placeholderIdentity(email string) *entity.Identity {
	return &entity.Identity{
		Email:      email,
		Name:       "Someone",
		Credential: entity.ExternalPlaceholderCredential(time.Now()),
		Role:       entity.RoleMember,
	}
}

func TestIdentityRepository_CreateAndFind(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	identity := placeholderIdentity("Someone@Example.com")
	identity.ProviderID = "sub-1"
	identity.EmployeeCode = "E-001"
	require.NoError(t, repo.Create(ctx, identity))
	assert.NotEqual(t, uuid.Nil, identity.ID)
	assert.Equal(t, "someone@example.com", identity.Email)
	assert.False(t, identity.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", byID.ProviderID)
	assert.True(t, byID.Credential.IsPlaceholder())

	byProvider, err := repo.FindByProviderID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, byProvider.ID)

	byEmail, err := repo.FindByEmail(ctx, " SOMEONE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, byEmail.ID)

	byCode, err := repo.FindByEmployeeCode(ctx, "E-001")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, byCode.ID)
}

func TestIdentityRepository_NotFound(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	_, err = repo.FindByProviderID(ctx, "")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	_, err = repo.FindByEmployeeCode(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), repository.ErrIdentityNotFound)
}

func TestIdentityRepository_UniqueViolations(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	first := placeholderIdentity("dup@example.com")
	first.ProviderID = "sub-1"
	first.EmployeeCode = "E-1"
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, placeholderIdentity("DUP@example.com"))
	assert.True(t, domainerrors.IsUniqueViolation(err), "email: %v", err)

	sameProvider := placeholderIdentity("other@example.com")
	sameProvider.ProviderID = "sub-1"
	err = repo.Create(ctx, sameProvider)
	assert.True(t, domainerrors.IsUniqueViolation(err), "provider: %v", err)

	sameCode := placeholderIdentity("third@example.com")
	sameCode.EmployeeCode = "E-1"
	err = repo.Create(ctx, sameCode)
	assert.True(t, domainerrors.IsUniqueViolation(err), "employee code: %v", err)

	// absent optional keys never collide
	require.NoError(t, repo.Create(ctx, placeholderIdentity("a@example.com")))
	require.NoError(t, repo.Create(ctx, placeholderIdentity("b@example.com")))
}

func TestIdentityRepository_RejectsUnhashedCredential(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	identity := placeholderIdentity("plain@example.com")
	identity.Credential = entity.LocalCredential("hunter2")

	err := repo.Create(ctx, identity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnhashedCredential))
	assert.False(t, domainerrors.IsUniqueViolation(err))

	identity.Credential = entity.Credential{}
	assert.Error(t, repo.Create(ctx, identity))

	stored := placeholderIdentity("stored@example.com")
	require.NoError(t, repo.Create(ctx, stored))

	plain := entity.LocalCredential("hunter2")
	_, err = repo.Update(ctx, stored.ID, entity.IdentityPatch{Credential: &plain})
	assert.True(t, errors.Is(err, model.ErrUnhashedCredential))
}

func TestIdentityRepository_UpdatePreservesPlaceholderAndHashes(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	identity := placeholderIdentity("keep@example.com")
	require.NoError(t, repo.Create(ctx, identity))
	encoded := identity.Credential.Encode()

	name := "Renamed"
	updated, err := repo.Update(ctx, identity.ID, entity.IdentityPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, encoded, updated.Credential.Encode())

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	local := entity.LocalCredential(string(hash))
	updated, err = repo.Update(ctx, identity.ID, entity.IdentityPatch{Credential: &local})
	require.NoError(t, err)
	assert.Equal(t, string(hash), updated.Credential.Hash())

	again, err := repo.Update(ctx, identity.ID, entity.IdentityPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, string(hash), again.Credential.Hash())
}

func TestIdentityRepository_ConditionalLink(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	identity := placeholderIdentity("link@example.com")
	require.NoError(t, repo.Create(ctx, identity))

	first := "sub-first"
	avatar := "https://example.com/a.png"
	linked, err := repo.Update(ctx, identity.ID, entity.IdentityPatch{
		ProviderID:     &first,
		AvatarURL:      &avatar,
		OnlyIfUnlinked: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-first", linked.ProviderID)
	assert.Equal(t, avatar, linked.AvatarURL)

	second := "sub-second"
	_, err = repo.Update(ctx, identity.ID, entity.IdentityPatch{ProviderID: &second, OnlyIfUnlinked: true})
	assert.ErrorIs(t, err, repository.ErrIdentityAlreadyLinked)

	current, err := repo.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "sub-first", current.ProviderID)

	_, err = repo.Update(ctx, uuid.New(), entity.IdentityPatch{ProviderID: &second, OnlyIfUnlinked: true})
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)
}

func TestIdentityRepository_ConcurrentLinkHasOneWinner(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	identity := placeholderIdentity("race@example.com")
	require.NoError(t, repo.Create(ctx, identity))

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := range workers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sub := "sub-" + uuid.NewString()
			if _, err := repo.Update(ctx, identity.ID, entity.IdentityPatch{ProviderID: &sub, OnlyIfUnlinked: true}); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, repository.ErrIdentityAlreadyLinked, "worker %d", n)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestIdentityRepository_RoleUpdateListAndDelete(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))
	ctx := context.Background()

	first := placeholderIdentity("first@example.com")
	require.NoError(t, repo.Create(ctx, first))
	second := placeholderIdentity("second@example.com")
	require.NoError(t, repo.Create(ctx, second))

	admin := entity.RoleAdmin
	updated, err := repo.Update(ctx, second.ID, entity.IdentityPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
