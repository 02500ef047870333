package impl

import (
	"context"
	"testing"
	"time"

	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/infra/auth"
	mockRepo "checklist/internal/mocks/repository"
	mockService "checklist/internal/mocks/service"
	"checklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	repo    *mockRepo.MockIdentityRepository
	tokens  *mockService.MockSessionTokenService
	metrics *recordingMetrics
	guard   usecase.AccessGuard
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	f := &guardFixture{
		repo:    mockRepo.NewMockIdentityRepository(t),
		tokens:  mockService.NewMockSessionTokenService(t),
		metrics: &recordingMetrics{},
	}
	f.guard = NewAccessGuard(AccessGuardParams{
		IdentityRepo: f.repo,
		TokenService: f.tokens,
		Metrics:      f.metrics,
		Logger:       discardLogger(),
	})

	return f
}

func storedIdentity(role entity.Role) *entity.Identity {
	return &entity.Identity{
		ID:         uuid.New(),
		Email:      "guarded@example.com",
		Credential: entity.LocalCredential("$2a$04$abcdefghijklmnopqrstuuJ8S1yqbRk0yXlpc6J9DfE0bKlHyZ3Wy"),
		Role:       role,
	}
}

func TestAccessGuard_NoToken(t *testing.T) {
	f := newGuardFixture(t)

	_, err := f.guard.Authorize(context.Background(), "", entity.RequireIdentity)
	assert.True(t, errors.Is(err, domainerrors.ErrNoCredentials))
	assert.Equal(t, []string{RejectionNoCredentials}, f.metrics.rejections)
}

func TestAccessGuard_InvalidTokenNeverReachesStore(t *testing.T) {
	f := newGuardFixture(t)

	f.tokens.EXPECT().Validate("expired-or-forged").Return(nil, errors.WithStack(domainerrors.ErrInvalidToken)).Once()

	_, err := f.guard.Authorize(context.Background(), "expired-or-forged", entity.RequireAdmin)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	assert.Equal(t, "not authorized", domainerrors.ErrInvalidToken.Message())
	assert.Equal(t, []string{RejectionInvalidToken}, f.metrics.rejections)
	f.repo.AssertNotCalled(t, "FindByID")
}

func TestAccessGuard_DeletedIdentity(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.tokens.EXPECT().Validate("tok").Return(&entity.SessionClaims{IdentityID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	f.repo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrIdentityNotFound).Once()

	_, err := f.guard.Authorize(ctx, "tok", entity.RequireIdentity)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	assert.Equal(t, []string{RejectionUserNotFound}, f.metrics.rejections)
}

func TestAccessGuard_StoreFailurePropagates(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()
	id := uuid.New()

	storeErr := domainerrors.NewStoreError(errors.New("timeout"), "failed to find identity")
	f.tokens.EXPECT().Validate("tok").Return(&entity.SessionClaims{IdentityID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	f.repo.EXPECT().FindByID(ctx, id).Return(nil, storeErr).Once()

	_, err := f.guard.Authorize(ctx, "tok", entity.RequireIdentity)
	var target *domainerrors.StoreError
	assert.True(t, errors.As(err, &target))
	assert.Empty(t, f.metrics.rejections)
}

func TestAccessGuard_RoleRequirements(t *testing.T) {
	tests := []struct {
		name        string
		role        entity.Role
		requirement entity.Requirement
		allowed     bool
	}{
		{name: "any identity admits member", role: entity.RoleMember, requirement: entity.RequireIdentity, allowed: true},
		{name: "any identity admits admin", role: entity.RoleAdmin, requirement: entity.RequireIdentity, allowed: true},
		{name: "member route admits member", role: entity.RoleMember, requirement: entity.RequireMember, allowed: true},
		{name: "member route rejects admin", role: entity.RoleAdmin, requirement: entity.RequireMember, allowed: false},
		{name: "admin route admits admin", role: entity.RoleAdmin, requirement: entity.RequireAdmin, allowed: true},
		{name: "admin route rejects member", role: entity.RoleMember, requirement: entity.RequireAdmin, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGuardFixture(t)
			ctx := context.Background()
			identity := storedIdentity(tt.role)
			expiresAt := time.Now().Add(7 * 24 * time.Hour)

			f.tokens.EXPECT().Validate("tok").Return(&entity.SessionClaims{IdentityID: identity.ID, ExpiresAt: expiresAt}, nil).Once()
			f.repo.EXPECT().FindByID(ctx, identity.ID).Return(identity, nil).Once()
			if tt.allowed {
				f.tokens.EXPECT().ShouldRenew(expiresAt).Return(false).Once()
			}

			decision, err := f.guard.Authorize(ctx, "tok", tt.requirement)
			if !tt.allowed {
				assert.True(t, errors.Is(err, domainerrors.ErrRoleNotAuthorized), "got %v", err)
				assert.Equal(t, []string{RejectionRoleDenied}, f.metrics.rejections)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, identity.ID, decision.Identity.ID)
			assert.Empty(t, decision.Identity.Credential.Encode())
			assert.Nil(t, decision.RenewedToken)
		})
	}
}

func TestAccessGuard_RenewsTokenInsideWindow(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()
	identity := storedIdentity(entity.RoleMember)
	expiresAt := time.Now().Add(time.Hour)
	renewed := &entity.SessionToken{Value: "fresh", ExpiresAt: time.Now().Add(7 * 24 * time.Hour)}

	f.tokens.EXPECT().Validate("tok").Return(&entity.SessionClaims{IdentityID: identity.ID, ExpiresAt: expiresAt}, nil).Once()
	f.repo.EXPECT().FindByID(ctx, identity.ID).Return(identity, nil).Once()
	f.tokens.EXPECT().ShouldRenew(expiresAt).Return(true).Once()
	f.tokens.EXPECT().Issue(identity.ID).Return(renewed, nil).Once()

	decision, err := f.guard.Authorize(ctx, "tok", entity.RequireMember)
	require.NoError(t, err)
	assert.Equal(t, renewed, decision.RenewedToken)
	assert.Equal(t, 1, f.metrics.renewals)
}

func TestAccessGuard_RenewalFailureStillAuthorizes(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()
	identity := storedIdentity(entity.RoleAdmin)
	expiresAt := time.Now().Add(time.Hour)

	f.tokens.EXPECT().Validate("tok").Return(&entity.SessionClaims{IdentityID: identity.ID, ExpiresAt: expiresAt}, nil).Once()
	f.repo.EXPECT().FindByID(ctx, identity.ID).Return(identity, nil).Once()
	f.tokens.EXPECT().ShouldRenew(expiresAt).Return(true).Once()
	f.tokens.EXPECT().Issue(identity.ID).Return(nil, errors.New("signing failed")).Once()

	decision, err := f.guard.Authorize(ctx, "tok", entity.RequireAdmin)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, decision.Identity.ID)
	assert.Nil(t, decision.RenewedToken)
	assert.Zero(t, f.metrics.renewals)
}

func TestAccessGuard_EndToEndWithRealTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	tokens, err := auth.NewSessionTokenServiceWithClock("unit-test-secret", 7*24*time.Hour, 7*24*time.Hour, func() time.Time { return now })
	require.NoError(t, err)
	repo := mockRepo.NewMockIdentityRepository(t)
	guard := NewAccessGuard(AccessGuardParams{IdentityRepo: repo, TokenService: tokens, Logger: discardLogger()})

	identity := storedIdentity(entity.RoleMember)
	token, err := tokens.Issue(identity.ID)
	require.NoError(t, err)

	repo.EXPECT().FindByID(ctx, identity.ID).Return(identity, nil).Once()

	decision, err := guard.Authorize(ctx, token.Value, entity.RequireMember)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, decision.Identity.ID)
	// A freshly issued token has exactly the full TTL left, which is not inside the window.
	assert.Nil(t, decision.RenewedToken)

	_, err = guard.Authorize(ctx, token.Value+"x", entity.RequireMember)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}
