package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "checklist/internal/delivery/context"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/repository"
	"checklist/internal/domain/service"
	"checklist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements usecase.AuthUsecase.
type authService struct {
	identityRepo repository.IdentityRepository
	resolver     usecase.IdentityResolver
	policy       service.PasswordPolicy
	tokenService service.SessionTokenService
	oneTap       service.IDTokenVerifier
	oauth        service.OAuthRedirectService
	metrics      service.AuthMetrics
	logger       *slog.Logger

	decoyOnce sync.Once
	decoy     entity.Credential
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Resolver     usecase.IdentityResolver
	Policy       service.PasswordPolicy
	TokenService service.SessionTokenService
	OneTap       service.IDTokenVerifier
	OAuth        service.OAuthRedirectService
	Metrics      service.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopAuthMetrics{}
	}

	return &authService{
		identityRepo: params.IdentityRepo,
		resolver:     params.Resolver,
		policy:       params.Policy,
		tokenService: params.TokenService,
		oneTap:       params.OneTap,
		oauth:        params.OAuth,
		metrics:      metrics,
		logger:       params.Logger,
	}
}

// Register creates a local member account and signs it in. A taken email is reported
// with the same generic rejection as any other conflict.
func (s *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is required")
	}
	if err := s.policy.ValidateStrength(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.identityRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.WithStack(domainerrors.ErrRegistrationRejected)
	} else if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, err
	}

	credential, err := s.policy.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	identity := &entity.Identity{
		Email:      email,
		Name:       name,
		Credential: credential,
		Role:       entity.RoleMember,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		if domainerrors.IsUniqueViolation(err) {
			return nil, errors.WithStack(domainerrors.ErrRegistrationRejected)
		}

		return nil, err
	}

	logger.Info("Identity registered", slog.String("identity_id", identity.ID.String()))

	return s.issue(identity)
}

// Login verifies a local secret. Unknown accounts, externally provisioned accounts
// and wrong secrets all fail the same way.
func (s *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	identity, err := s.identityRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, err
		}
		// Spend the same bcrypt work as a real comparison.
		s.policy.Verify(input.Password, s.decoyCredential())
		s.metrics.RecordLogin(entity.ClaimOriginLocal, false)

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if identity.Credential.Kind() != entity.CredentialLocal {
		s.policy.Verify(input.Password, s.decoyCredential())
		s.metrics.RecordLogin(entity.ClaimOriginLocal, false)

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if !s.policy.Verify(input.Password, identity.Credential) {
		s.metrics.RecordLogin(entity.ClaimOriginLocal, false)

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	s.metrics.RecordLogin(entity.ClaimOriginLocal, true)

	return s.issue(identity)
}

// LoginWithGoogleOneTap verifies a One-Tap credential and resolves it to an identity.
func (s *authService) LoginWithGoogleOneTap(ctx context.Context, credential string) (*usecase.AuthOutput, error) {
	claim, err := s.oneTap.VerifyIDToken(ctx, credential)
	if err != nil {
		s.metrics.RecordLogin(entity.ClaimOriginOneTap, false)

		return nil, err
	}

	return s.resolveAndIssue(ctx, claim)
}

// BeginGoogleLogin returns the consent URL for the redirect flow.
func (s *authService) BeginGoogleLogin(_ context.Context) (string, error) {
	authURL, _, err := s.oauth.BeginLogin()
	if err != nil {
		return "", err
	}

	return authURL, nil
}

// CompleteGoogleLogin finishes the redirect flow.
func (s *authService) CompleteGoogleLogin(ctx context.Context, state, code string) (*usecase.AuthOutput, error) {
	claim, err := s.oauth.CompleteLogin(ctx, state, code)
	if err != nil {
		s.metrics.RecordLogin(entity.ClaimOriginOAuth, false)

		return nil, err
	}

	return s.resolveAndIssue(ctx, claim)
}

func (s *authService) resolveAndIssue(ctx context.Context, claim *entity.ClaimedIdentity) (*usecase.AuthOutput, error) {
	identity, err := s.resolver.Resolve(ctx, *claim)
	if err != nil {
		s.metrics.RecordLogin(claim.Origin, false)

		return nil, err
	}

	s.metrics.RecordLogin(claim.Origin, true)

	return s.issue(identity)
}

func (s *authService) issue(identity *entity.Identity) (*usecase.AuthOutput, error) {
	token, err := s.tokenService.Issue(identity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.AuthOutput{Identity: identity.WithoutCredential(), Token: token}, nil
}

func (s *authService) decoyCredential() entity.Credential {
	s.decoyOnce.Do(func() {
		credential, err := s.policy.Hash("decoy-secret-never-matches")
		if err == nil {
			s.decoy = credential
		}
	})

	return s.decoy
}
