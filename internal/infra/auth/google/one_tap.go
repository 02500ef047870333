package google

import (
	"context"
	"log/slog"

	"checklist/config"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// OneTapVerifier verifies Google One-Tap credentials (ID tokens) for the configured client.
type OneTapVerifier struct {
	clientID string
	validate validateFunc
	logger   *slog.Logger
}

// NewOneTapVerifier creates a verifier backed by Google's published signing keys.
func NewOneTapVerifier(cfg *config.Config, logger *slog.Logger) service.IDTokenVerifier {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &OneTapVerifier{clientID: clientID, validate: idtoken.Validate, logger: logger}
}

// VerifyIDToken checks signature, audience, issuer and email verification.
func (v *OneTapVerifier) VerifyIDToken(ctx context.Context, idToken string) (*entity.ClaimedIdentity, error) {
	if v.clientID == "" {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("google login is not configured")
	}
	if idToken == "" {
		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		v.logger.WarnContext(ctx, "Google ID token rejected", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		v.logger.WarnContext(ctx, "Google ID token has unexpected issuer", slog.String("issuer", payload.Issuer))

		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}
	if payload.Subject == "" {
		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	email := stringClaim(payload.Claims, "email")
	if email != "" && !boolClaim(payload.Claims, "email_verified") {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("email not verified")
	}

	return &entity.ClaimedIdentity{
		ProviderID: payload.Subject,
		Email:      email,
		Name:       stringClaim(payload.Claims, "name"),
		AvatarURL:  stringClaim(payload.Claims, "picture"),
		Origin:     entity.ClaimOriginOneTap,
	}, nil
}

func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)

	return value
}

// boolClaim accepts both JSON booleans and the "true" string some tokens carry.
func boolClaim(claims map[string]any, key string) bool {
	switch value := claims[key].(type) {
	case bool:
		return value
	case string:
		return value == "true"
	default:
		return false
	}
}
