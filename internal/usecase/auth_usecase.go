package usecase

import (
	"context"

	"checklist/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to self-register a local account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a local login.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by every successful login path. Identity never carries a credential.
type AuthOutput struct {
	Identity *entity.Identity
	Token    *entity.SessionToken
}

// AuthUsecase defines the login and registration operations the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	LoginWithGoogleOneTap(ctx context.Context, credential string) (*AuthOutput, error)
	BeginGoogleLogin(ctx context.Context) (authURL string, err error)
	CompleteGoogleLogin(ctx context.Context, state, code string) (*AuthOutput, error)
}
