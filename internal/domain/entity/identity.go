// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is the canonical user record. Local and externally authenticated
// accounts converge on the same Identity once they are linked.
type Identity struct {
	ID           uuid.UUID  // Internal identifier.
	Email        string     // Always present, unique, lowercase.
	ProviderID   string     // External subject (e.g. Google 'sub'); empty for local-only accounts.
	EmployeeCode string     // Optional internal employee code, unique when set.
	CompanyCode  string     // Optional organization code.
	Name         string     // Display name.
	AvatarURL    string     // Optional avatar reference.
	Credential   Credential // Local hash or external placeholder.
	Role         Role       // Admin or member.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLinked reports whether the identity is bound to an external provider subject.
func (i *Identity) IsLinked() bool {
	return i.ProviderID != ""
}

// IsAdmin reports whether the identity holds the administrator role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// WithoutCredential returns a copy that is safe to hand to request handlers.
func (i *Identity) WithoutCredential() *Identity {
	if i == nil {
		return nil
	}

	stripped := *i
	stripped.Credential = Credential{}

	return &stripped
}

// IdentityPatch lists the fields an Update may change. Nil pointers are left untouched.
type IdentityPatch struct {
	ProviderID   *string
	AvatarURL    *string
	Name         *string
	EmployeeCode *string
	CompanyCode  *string
	Role         *Role
	Credential   *Credential

	// OnlyIfUnlinked makes the update conditional on the stored ProviderID being empty.
	OnlyIfUnlinked bool
}

// IsEmpty reports whether the patch changes nothing.
func (p IdentityPatch) IsEmpty() bool {
	return p.ProviderID == nil && p.AvatarURL == nil && p.Name == nil &&
		p.EmployeeCode == nil && p.CompanyCode == nil && p.Role == nil && p.Credential == nil
}

// Apply copies the patched fields onto the identity.
func (p IdentityPatch) Apply(identity *Identity) {
	if p.ProviderID != nil {
		identity.ProviderID = *p.ProviderID
	}
	if p.AvatarURL != nil {
		identity.AvatarURL = *p.AvatarURL
	}
	if p.Name != nil {
		identity.Name = *p.Name
	}
	if p.EmployeeCode != nil {
		identity.EmployeeCode = *p.EmployeeCode
	}
	if p.CompanyCode != nil {
		identity.CompanyCode = *p.CompanyCode
	}
	if p.Role != nil {
		identity.Role = *p.Role
	}
	if p.Credential != nil {
		identity.Credential = *p.Credential
	}
}

// NormalizeEmail trims and lowercases an address so lookups and the unique index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
