package service

import (
	"context"

	"checklist/internal/domain/entity"
)

// OAuthRedirectService drives the browser redirect flow against an external provider.
type OAuthRedirectService interface {
	// BeginLogin returns the provider authorization URL carrying a fresh single-use state.
	BeginLogin() (authURL string, state string, err error)

	// CompleteLogin validates the state, exchanges the code and returns the verified claim.
	CompleteLogin(ctx context.Context, state, code string) (*entity.ClaimedIdentity, error)
}

// IDTokenVerifier verifies a provider-issued ID token (e.g. Google One-Tap credential).
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*entity.ClaimedIdentity, error)
}
