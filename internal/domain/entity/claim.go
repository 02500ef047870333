package entity

// ClaimOrigin tells which login path produced a ClaimedIdentity.
type ClaimOrigin string

const (
	ClaimOriginLocal  ClaimOrigin = "local"
	ClaimOriginOAuth  ClaimOrigin = "oauth"
	ClaimOriginOneTap ClaimOrigin = "one_tap"
)

// ClaimedIdentity is the normalized payload every login origin hands to the resolver.
// Verification happens before a claim is built; the resolver trusts it.
type ClaimedIdentity struct {
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
	Origin     ClaimOrigin
}
