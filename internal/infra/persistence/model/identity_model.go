// Package model holds the GORM persistence models.
package model

import (
	"time"

	"checklist/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUnhashedCredential is returned when a write carries credential material that is
// neither a bcrypt hash nor an external placeholder.
var ErrUnhashedCredential = errors.New("refusing to persist an unhashed credential")

// IdentityModel mirrors the 'identities' table. Optional unique columns are pointers so
// that absent values are stored as NULL and do not collide in the unique indexes.
type IdentityModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:idx_identities_email;not null"`
	ProviderID   *string   `gorm:"type:varchar(255);uniqueIndex:idx_identities_provider_id"`
	EmployeeCode *string   `gorm:"type:varchar(64);uniqueIndex:idx_identities_employee_code"`
	CompanyCode  string    `gorm:"type:varchar(64);not null;default:''"`
	Name         string    `gorm:"type:varchar(255);not null;default:''"`
	AvatarURL    string    `gorm:"type:text;not null;default:''"`
	Credential   string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(16);not null;default:member"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}

// BeforeCreate assigns a time-ordered ID and requires credential material.
func (m *IdentityModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate identity id")
		}
		m.ID = id
	}
	if m.Credential == "" {
		return ErrUnhashedCredential
	}

	return nil
}

// BeforeSave only checks the stored form; it never hashes and leaves placeholders alone.
// An empty credential means the write does not touch the column.
func (m *IdentityModel) BeforeSave(_ *gorm.DB) error {
	if m.Credential == "" {
		return nil
	}

	return CheckStoredCredential(m.Credential)
}

// CheckStoredCredential accepts external placeholders and bcrypt hashes only.
func CheckStoredCredential(stored string) error {
	credential := entity.DecodeCredential(stored)
	switch credential.Kind() {
	case entity.CredentialExternalPlaceholder:
		return nil
	case entity.CredentialLocal:
		if _, err := bcrypt.Cost([]byte(credential.Hash())); err != nil {
			return ErrUnhashedCredential
		}

		return nil
	default:
		return ErrUnhashedCredential
	}
}

// FromIdentity maps a domain identity onto the persistence model.
func FromIdentity(identity *entity.Identity) *IdentityModel {
	return &IdentityModel{
		ID:           identity.ID,
		Email:        identity.Email,
		ProviderID:   optional(identity.ProviderID),
		EmployeeCode: optional(identity.EmployeeCode),
		CompanyCode:  identity.CompanyCode,
		Name:         identity.Name,
		AvatarURL:    identity.AvatarURL,
		Credential:   identity.Credential.Encode(),
		Role:         identity.Role.String(),
		CreatedAt:    identity.CreatedAt,
		UpdatedAt:    identity.UpdatedAt,
	}
}

// ToIdentity maps the persistence model back to a domain identity.
func (m *IdentityModel) ToIdentity() *entity.Identity {
	return &entity.Identity{
		ID:           m.ID,
		Email:        m.Email,
		ProviderID:   deref(m.ProviderID),
		EmployeeCode: deref(m.EmployeeCode),
		CompanyCode:  m.CompanyCode,
		Name:         m.Name,
		AvatarURL:    m.AvatarURL,
		Credential:   entity.DecodeCredential(m.Credential),
		Role:         entity.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// PatchColumns converts a patch into the column map used by Updates.
func PatchColumns(patch entity.IdentityPatch) map[string]any {
	columns := make(map[string]any)
	if patch.ProviderID != nil {
		columns["provider_id"] = optional(*patch.ProviderID)
	}
	if patch.AvatarURL != nil {
		columns["avatar_url"] = *patch.AvatarURL
	}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.EmployeeCode != nil {
		columns["employee_code"] = optional(*patch.EmployeeCode)
	}
	if patch.CompanyCode != nil {
		columns["company_code"] = *patch.CompanyCode
	}
	if patch.Role != nil {
		columns["role"] = patch.Role.String()
	}
	if patch.Credential != nil {
		columns["credential"] = patch.Credential.Encode()
	}

	return columns
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
