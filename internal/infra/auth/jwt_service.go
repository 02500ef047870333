package auth

import (
	"time"

	"checklist/config"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtService implements service.SessionTokenService with HS256-signed JWTs.
type jwtService struct {
	secret      []byte        // HMAC signing key, immutable after construction.
	ttl         time.Duration // Lifetime of newly issued tokens.
	renewWindow time.Duration // Remaining lifetime below which a token is re-issued.
	now         func() time.Time
}

// NewSessionTokenService is the constructor used by Fx.
func NewSessionTokenService(cfg *config.Config) (service.SessionTokenService, error) {
	return NewSessionTokenServiceWithClock(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.RenewWindow, time.Now)
}

// NewSessionTokenServiceWithClock builds a token service with an explicit clock.
func NewSessionTokenServiceWithClock(secret string, ttl, renewWindow time.Duration, now func() time.Time) (service.SessionTokenService, error) {
	if secret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}

	return &jwtService{
		secret:      []byte(secret),
		ttl:         ttl,
		renewWindow: renewWindow,
		now:         now,
	}, nil
}

// Issue signs a token whose subject is the identity ID.
func (s *jwtService) Issue(identityID uuid.UUID) (*entity.SessionToken, error) {
	if identityID == uuid.Nil {
		return nil, errors.New("cannot issue a session token for a nil identity")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl).Truncate(time.Second)

	claims := jwt.RegisteredClaims{
		Subject:   identityID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	return &entity.SessionToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Validate parses the token and checks signature, algorithm, subject and expiry.
// Every failure is reported as the same InvalidTokenError.
func (s *jwtService) Validate(tokenString string) (*entity.SessionClaims, error) {
	if tokenString == "" {
		return nil, domainerrors.ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidToken)
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil || identityID == uuid.Nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidToken)
	}

	return &entity.SessionClaims{
		IdentityID: identityID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

// ShouldRenew reports whether less than the renew window remains before expiry.
func (s *jwtService) ShouldRenew(expiresAt time.Time) bool {
	return expiresAt.Sub(s.now()) < s.renewWindow
}

// TTL returns the lifetime given to newly issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
