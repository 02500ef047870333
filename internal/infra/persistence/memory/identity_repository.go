// Package memory provides an in-process identity store for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var errDuplicateKey = errors.New("duplicate key")

// identityRepository keeps identities in maps guarded by a single mutex and enforces
// the same unique keys as the SQL schema.
type identityRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*entity.Identity
	byEmail    map[string]uuid.UUID
	byProvider map[string]uuid.UUID
	byEmployee map[string]uuid.UUID
	now        func() time.Time
}

// NewIdentityRepository returns an empty in-memory store.
func NewIdentityRepository() repository.IdentityRepository {
	return &identityRepository{
		byID:       make(map[uuid.UUID]*entity.Identity),
		byEmail:    make(map[string]uuid.UUID),
		byProvider: make(map[string]uuid.UUID),
		byEmployee: make(map[string]uuid.UUID),
		now:        time.Now,
	}
}

func (r *identityRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lookup(id)
}

func (r *identityRepository) FindByProviderID(_ context.Context, providerID string) (*entity.Identity, error) {
	return r.findByIndex(func() (uuid.UUID, bool) {
		id, ok := r.byProvider[providerID]

		return id, ok && providerID != ""
	})
}

func (r *identityRepository) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	normalized := entity.NormalizeEmail(email)

	return r.findByIndex(func() (uuid.UUID, bool) {
		id, ok := r.byEmail[normalized]

		return id, ok
	})
}

func (r *identityRepository) FindByEmployeeCode(_ context.Context, code string) (*entity.Identity, error) {
	return r.findByIndex(func() (uuid.UUID, bool) {
		id, ok := r.byEmployee[code]

		return id, ok && code != ""
	})
}

func (r *identityRepository) findByIndex(index func() (uuid.UUID, bool)) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := index()
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return r.lookup(id)
}

func (r *identityRepository) lookup(id uuid.UUID) (*entity.Identity, error) {
	identity, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	clone := *identity

	return &clone, nil
}

func (r *identityRepository) List(_ context.Context) ([]*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identities := make([]*entity.Identity, 0, len(r.byID))
	for _, identity := range r.byID {
		clone := *identity
		identities = append(identities, &clone)
	}

	sort.Slice(identities, func(i, j int) bool {
		if identities[i].CreatedAt.Equal(identities[j].CreatedAt) {
			return identities[i].ID.String() < identities[j].ID.String()
		}

		return identities[i].CreatedAt.Before(identities[j].CreatedAt)
	})

	return identities, nil
}

func (r *identityRepository) Create(_ context.Context, identity *entity.Identity) error {
	if identity.Credential.Kind() == entity.CredentialNone {
		return domainerrors.NewStoreError(errors.New("credential is required"), "failed to create identity")
	}

	identity.Email = entity.NormalizeEmail(identity.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[identity.Email]; taken {
		return domainerrors.NewUniqueViolationError(errDuplicateKey, "email already exists")
	}
	if _, taken := r.byProvider[identity.ProviderID]; taken && identity.ProviderID != "" {
		return domainerrors.NewUniqueViolationError(errDuplicateKey, "provider id already exists")
	}
	if _, taken := r.byEmployee[identity.EmployeeCode]; taken && identity.EmployeeCode != "" {
		return domainerrors.NewUniqueViolationError(errDuplicateKey, "employee code already exists")
	}

	if identity.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate identity id")
		}
		identity.ID = id
	}
	if identity.Role == "" {
		identity.Role = entity.RoleMember
	}
	now := r.now()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	stored := *identity
	r.index(&stored)

	return nil
}

func (r *identityRepository) Update(_ context.Context, id uuid.UUID, patch entity.IdentityPatch) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}
	if patch.OnlyIfUnlinked && current.IsLinked() {
		return nil, repository.ErrIdentityAlreadyLinked
	}

	next := *current
	patch.Apply(&next)

	if next.ProviderID != current.ProviderID && next.ProviderID != "" {
		if owner, taken := r.byProvider[next.ProviderID]; taken && owner != id {
			return nil, domainerrors.NewUniqueViolationError(errDuplicateKey, "provider id already exists")
		}
	}
	if next.EmployeeCode != current.EmployeeCode && next.EmployeeCode != "" {
		if owner, taken := r.byEmployee[next.EmployeeCode]; taken && owner != id {
			return nil, domainerrors.NewUniqueViolationError(errDuplicateKey, "employee code already exists")
		}
	}

	if !patch.IsEmpty() {
		next.UpdatedAt = r.now()
	}

	r.unindex(current)
	r.index(&next)

	clone := next

	return &clone, nil
}

func (r *identityRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return repository.ErrIdentityNotFound
	}
	r.unindex(current)

	return nil
}

func (r *identityRepository) index(identity *entity.Identity) {
	r.byID[identity.ID] = identity
	r.byEmail[identity.Email] = identity.ID
	if identity.ProviderID != "" {
		r.byProvider[identity.ProviderID] = identity.ID
	}
	if identity.EmployeeCode != "" {
		r.byEmployee[identity.EmployeeCode] = identity.ID
	}
}

func (r *identityRepository) unindex(identity *entity.Identity) {
	delete(r.byID, identity.ID)
	delete(r.byEmail, identity.Email)
	if identity.ProviderID != "" {
		delete(r.byProvider, identity.ProviderID)
	}
	if identity.EmployeeCode != "" {
		delete(r.byEmployee, identity.EmployeeCode)
	}
}
