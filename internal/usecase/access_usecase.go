package usecase

import (
	"context"

	"checklist/internal/domain/entity"
)

// AccessDecision is the outcome of an authorized request.
type AccessDecision struct {
	// Identity is the authenticated caller with its credential stripped.
	Identity *entity.Identity
	// RenewedToken is set when the presented token was inside the renewal window.
	RenewedToken *entity.SessionToken
}

// AccessGuard authenticates a presented session token and checks it against a route requirement.
type AccessGuard interface {
	Authorize(ctx context.Context, token string, requirement entity.Requirement) (*AccessDecision, error)
}
