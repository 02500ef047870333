package entity

// Role represents the closed set of roles an identity can hold.
type Role string

const (
	// RoleAdmin may manage other identities.
	RoleAdmin Role = "admin"
	// RoleMember is the default role of every self-registered or externally created identity.
	RoleMember Role = "member"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// Requirement is the role declaration a route makes to the access guard.
type Requirement int

const (
	// RequireIdentity admits any authenticated identity.
	RequireIdentity Requirement = iota
	// RequireMember admits identities holding the member role.
	RequireMember
	// RequireAdmin admits identities holding the admin role.
	RequireAdmin
)

// String names the requirement for logs and metrics.
func (r Requirement) String() string {
	switch r {
	case RequireMember:
		return "member"
	case RequireAdmin:
		return "admin"
	default:
		return "identity"
	}
}

// Admits reports whether an identity with the given role satisfies the requirement.
func (r Requirement) Admits(role Role) bool {
	switch r {
	case RequireAdmin:
		return role == RoleAdmin
	case RequireMember:
		return role == RoleMember
	default:
		return role.IsValid()
	}
}
