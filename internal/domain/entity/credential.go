package entity

import (
	"strconv"
	"strings"
	"time"
)

// externalPlaceholderPrefix marks a stored credential that was never chosen by the user.
// bcrypt hashes always start with '$', so the two encodings cannot collide.
const externalPlaceholderPrefix = "external:"

// CredentialKind discriminates the Credential variants.
type CredentialKind int

const (
	// CredentialNone is the zero value: no credential material at all.
	CredentialNone CredentialKind = iota
	// CredentialLocal carries a salted one-way hash of a user-chosen secret.
	CredentialLocal
	// CredentialExternalPlaceholder marks an account provisioned through an external provider.
	CredentialExternalPlaceholder
)

// Credential is either Local(hash) or ExternalPlaceholder(issuedAt).
type Credential struct {
	kind     CredentialKind
	hash     string
	issuedAt time.Time
}

// LocalCredential wraps an already computed hash.
func LocalCredential(hash string) Credential {
	return Credential{kind: CredentialLocal, hash: hash}
}

// ExternalPlaceholderCredential builds a non-verifiable credential issued at the given instant.
func ExternalPlaceholderCredential(issuedAt time.Time) Credential {
	return Credential{kind: CredentialExternalPlaceholder, issuedAt: issuedAt.UTC()}
}

// Kind returns the variant tag.
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// IsPlaceholder reports whether the credential can never be verified.
func (c Credential) IsPlaceholder() bool {
	return c.kind == CredentialExternalPlaceholder
}

// Hash returns the stored hash of a Local credential, or "" for any other variant.
func (c Credential) Hash() string {
	if c.kind != CredentialLocal {
		return ""
	}

	return c.hash
}

// IssuedAt returns when a placeholder was issued; zero for other variants.
func (c Credential) IssuedAt() time.Time {
	return c.issuedAt
}

// Encode renders the credential in its single-column storage form.
func (c Credential) Encode() string {
	switch c.kind {
	case CredentialLocal:
		return c.hash
	case CredentialExternalPlaceholder:
		return externalPlaceholderPrefix + strconv.FormatInt(c.issuedAt.UnixNano(), 10)
	default:
		return ""
	}
}

// DecodeCredential parses the storage form produced by Encode. A placeholder whose
// timestamp cannot be parsed still decodes as a placeholder, so it keeps failing verification.
func DecodeCredential(stored string) Credential {
	if stored == "" {
		return Credential{}
	}

	if rest, ok := strings.CutPrefix(stored, externalPlaceholderPrefix); ok {
		var issuedAt time.Time
		if nanos, err := strconv.ParseInt(rest, 10, 64); err == nil {
			issuedAt = time.Unix(0, nanos).UTC()
		}

		return Credential{kind: CredentialExternalPlaceholder, issuedAt: issuedAt}
	}

	return LocalCredential(stored)
}
