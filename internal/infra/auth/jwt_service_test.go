package auth

import (
	"testing"
	"time"

	"checklist/config"
	domainerrors "checklist/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_session_secret_key_very_long_for_testing"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTokenService(t *testing.T, clock *fakeClock) *jwtService {
	t.Helper()

	svc, err := NewSessionTokenServiceWithClock(testSecret, 7*24*time.Hour, 7*24*time.Hour, clock.Now)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewSessionTokenService(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.TTL = time.Hour

	_, err := NewSessionTokenService(cfg)
	assert.ErrorContains(t, err, "session secret")

	cfg.Session.Secret = testSecret
	svc, err := NewSessionTokenService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)
	identityID := uuid.New()

	token, err := svc.Issue(identityID)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.Equal(t, clock.now.Add(7*24*time.Hour), token.ExpiresAt)

	claims, err := svc.Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, identityID, claims.IdentityID)
	assert.True(t, token.ExpiresAt.Equal(claims.ExpiresAt))
}

func TestJWTService_IssueRejectsNilIdentity(t *testing.T) {
	svc := newTestTokenService(t, &fakeClock{now: time.Now()})

	_, err := svc.Issue(uuid.Nil)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)

	claims, err := svc.Validate(token.Value)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, clock)
	identityID := uuid.New()

	validClaims := jwt.RegisteredClaims{
		Subject:   identityID.String(),
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, validClaims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: identityID.String(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "clearly-not-a-jwt-token-format"},
		{name: "unknown key", token: otherKey},
		{name: "wrong algorithm", token: wrongAlg},
		{name: "none algorithm", token: noneAlg},
		{name: "missing subject", token: noSubject},
		{name: "invalid subject", token: badSubject},
		{name: "missing expiry", token: noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken), "got %v", err)
		})
	}
}

func TestJWTService_ShouldRenew(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	assert.False(t, svc.ShouldRenew(clock.now.Add(7*24*time.Hour)))
	assert.True(t, svc.ShouldRenew(clock.now.Add(7*24*time.Hour-time.Second)))
	assert.True(t, svc.ShouldRenew(clock.now.Add(time.Minute)))
}
