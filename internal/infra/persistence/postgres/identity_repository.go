package postgres

import (
	"context"

	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// identityRepository implements repository.IdentityRepository using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// primary pins a query to the write connection. Resolution retries must observe the
// write that made them fail, which a lagging replica might not have yet.
func (repo *identityRepository) primary(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Clauses(dbresolver.Write)
}

func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *identityRepository) FindByProviderID(ctx context.Context, providerID string) (*entity.Identity, error) {
	if providerID == "" {
		return nil, repository.ErrIdentityNotFound
	}

	return repo.findOne(ctx, "provider_id = ?", providerID)
}

func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return repo.findOne(ctx, "email = ?", entity.NormalizeEmail(email))
}

func (repo *identityRepository) FindByEmployeeCode(ctx context.Context, code string) (*entity.Identity, error) {
	if code == "" {
		return nil, repository.ErrIdentityNotFound
	}

	return repo.findOne(ctx, "employee_code = ?", code)
}

func (repo *identityRepository) findOne(ctx context.Context, query string, arg any) (*entity.Identity, error) {
	var identityM model.IdentityModel
	if err := repo.primary(ctx).Where(query, arg).Take(&identityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewStoreError(err, "failed to find identity")
	}

	return identityM.ToIdentity(), nil
}

// List reads from a replica when one is configured.
func (repo *identityRepository) List(ctx context.Context) ([]*entity.Identity, error) {
	var models []model.IdentityModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, domainerrors.NewStoreError(err, "failed to list identities")
	}

	identities := make([]*entity.Identity, 0, len(models))
	for i := range models {
		identities = append(identities, models[i].ToIdentity())
	}

	return identities, nil
}

func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	identity.Email = entity.NormalizeEmail(identity.Email)
	identityM := model.FromIdentity(identity)

	if err := repo.db.WithContext(ctx).Create(identityM).Error; err != nil {
		return translateWriteError(err, "failed to create identity")
	}

	identity.ID = identityM.ID
	identity.CreatedAt = identityM.CreatedAt
	identity.UpdatedAt = identityM.UpdatedAt

	return nil
}

func (repo *identityRepository) Update(ctx context.Context, id uuid.UUID, patch entity.IdentityPatch) (*entity.Identity, error) {
	if patch.IsEmpty() {
		return repo.FindByID(ctx, id)
	}

	// The hook sees the model, so the credential goes on it as well as in the column map.
	target := &model.IdentityModel{ID: id}
	if patch.Credential != nil {
		target.Credential = patch.Credential.Encode()
		if err := model.CheckStoredCredential(target.Credential); err != nil {
			return nil, domainerrors.NewStoreError(err, "failed to update identity")
		}
	}

	tx := repo.db.WithContext(ctx).Model(target).Where("id = ?", id)
	if patch.OnlyIfUnlinked {
		tx = tx.Where("(provider_id IS NULL OR provider_id = '')")
	}

	result := tx.Updates(model.PatchColumns(patch))
	if result.Error != nil {
		return nil, translateWriteError(result.Error, "failed to update identity")
	}

	if result.RowsAffected == 0 {
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if patch.OnlyIfUnlinked && current.IsLinked() {
			return nil, repository.ErrIdentityAlreadyLinked
		}

		return current, nil
	}

	return repo.FindByID(ctx, id)
}

func (repo *identityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.IdentityModel{})
	if result.Error != nil {
		return domainerrors.NewStoreError(result.Error, "failed to delete identity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

func translateWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.NewUniqueViolationError(err, details)
	}
	if isCheckConstraintViolation(err) {
		return domainerrors.NewStoreError(err, details+": check constraint violated")
	}

	return domainerrors.NewStoreError(err, details)
}
