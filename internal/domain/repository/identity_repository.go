// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"checklist/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrIdentityNotFound is returned by lookups that match no record.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrIdentityAlreadyLinked is returned when a conditional link finds the record already bound.
	ErrIdentityAlreadyLinked = errors.New("identity already linked to a provider")
)

// IdentityRepository is the credential store adapter. Uniqueness of email, provider ID
// and employee code is enforced by the store; violations surface as a StoreError for
// which domainerrors.IsUniqueViolation is true.
type IdentityRepository interface {
	// FindByID retrieves a single identity by its internal ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByProviderID retrieves the identity linked to an external provider subject.
	FindByProviderID(ctx context.Context, providerID string) (*entity.Identity, error)

	// FindByEmail retrieves the identity owning a normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// FindByEmployeeCode retrieves the identity carrying an employee code.
	FindByEmployeeCode(ctx context.Context, code string) (*entity.Identity, error)

	// List returns every identity ordered by creation time.
	List(ctx context.Context) ([]*entity.Identity, error)

	// Create persists a new identity and fills in its generated ID and timestamps.
	Create(ctx context.Context, identity *entity.Identity) error

	// Update applies a patch and returns the stored result.
	Update(ctx context.Context, id uuid.UUID, patch entity.IdentityPatch) (*entity.Identity, error)

	// Delete removes an identity permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
