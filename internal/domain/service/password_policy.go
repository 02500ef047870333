// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"

	"checklist/internal/domain/entity"
)

// PasswordPolicy hashes and verifies secrets with awareness of credential provenance.
type PasswordPolicy interface {
	// Hash produces a Local credential; an empty secret fails with a PolicyError.
	Hash(secret string) (entity.Credential, error)

	// Verify compares a candidate with a credential. Placeholders never verify.
	Verify(candidate string, credential entity.Credential) bool

	// NewPlaceholder issues a non-verifiable credential for externally provisioned accounts.
	NewPlaceholder(now time.Time) entity.Credential

	// ValidateStrength checks a user-chosen secret against the configured strength rules.
	ValidateStrength(secret string) error
}
