package service

import (
	"time"

	"checklist/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionTokenService issues and validates stateless session tokens.
// Validity depends only on signature and embedded expiry.
type SessionTokenService interface {
	// Issue signs a token for the identity expiring one TTL from now.
	Issue(identityID uuid.UUID) (*entity.SessionToken, error)

	// Validate returns the claims of a well-formed, correctly signed, unexpired token,
	// or an error matching domainerrors.ErrInvalidToken.
	Validate(token string) (*entity.SessionClaims, error)

	// ShouldRenew reports whether a token with this expiry is inside the renewal window.
	ShouldRenew(expiresAt time.Time) bool

	// TTL is the lifetime given to newly issued tokens.
	TTL() time.Duration
}
