package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is a signed bearer credential together with its embedded expiry.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

// SessionClaims is what a successfully validated token says about its bearer.
type SessionClaims struct {
	IdentityID uuid.UUID
	ExpiresAt  time.Time
}
