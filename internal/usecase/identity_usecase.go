// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"checklist/internal/domain/entity"
)

// IdentityResolver maps a verified external claim to exactly one canonical identity,
// linking by email or creating an account as needed.
type IdentityResolver interface {
	Resolve(ctx context.Context, claim entity.ClaimedIdentity) (*entity.Identity, error)
}

// Bootstrapper seeds the initial administrator.
type Bootstrapper interface {
	SeedAdmin(ctx context.Context) error
}
