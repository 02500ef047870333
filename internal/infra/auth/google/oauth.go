// Package google adapts Google sign-in (redirect flow and One-Tap) to ClaimedIdentity values.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"checklist/config"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// OAuthService drives the Google authorization-code flow. Issued states are kept
// in memory, expire after the configured TTL, and can be consumed only once.
type OAuthService struct {
	oauthConfig *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	stateTTL    time.Duration
	logger      *slog.Logger
	now         func() time.Time

	stateStore map[string]time.Time
	stateMutex sync.Mutex
}

// NewOAuthService creates the Google redirect-flow service. Without a googleOAuth
// section every call fails with ErrOAuthFailed.
func NewOAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthRedirectService {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return disabledOAuthService{}
	}

	return newOAuthService(cfg.GoogleOAuth, googleoauth.Endpoint, googleUserInfoURL, http.DefaultClient, logger)
}

func newOAuthService(
	cfg *config.GoogleOAuthConfig,
	endpoint oauth2.Endpoint,
	userInfoURL string,
	httpClient *http.Client,
	logger *slog.Logger,
) *OAuthService {
	stateTTL := cfg.StateTTL
	if stateTTL <= 0 {
		stateTTL = 10 * time.Minute
	}

	return &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       strings.Fields(cfg.Scopes),
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
		stateTTL:    stateTTL,
		logger:      logger,
		now:         time.Now,
		stateStore:  make(map[string]time.Time),
	}
}

// BeginLogin issues a fresh state and returns the Google consent URL carrying it.
func (s *OAuthService) BeginLogin() (string, string, error) {
	state, err := generateState()
	if err != nil {
		return "", "", err
	}

	s.storeState(state)

	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline), state, nil
}

// CompleteLogin consumes the state, exchanges the code and fetches the profile.
func (s *OAuthService) CompleteLogin(ctx context.Context, state, code string) (*entity.ClaimedIdentity, error) {
	if !s.consumeState(state) {
		return nil, errors.WithStack(domainerrors.ErrOAuthStateInvalid)
	}
	if code == "" {
		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "Google code exchange failed", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	profile, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "Google userinfo request failed", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}
	if profile.Sub == "" {
		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}
	if profile.Email != "" && !profile.EmailVerified {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("email not verified")
	}

	return &entity.ClaimedIdentity{
		ProviderID: profile.Sub,
		Email:      profile.Email,
		Name:       profile.Name,
		AvatarURL:  profile.Picture,
		Origin:     entity.ClaimOriginOAuth,
	}, nil
}

type userInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var profile userInfo
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	return &profile, nil
}

func (s *OAuthService) storeState(state string) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	now := s.now()
	for issued, expiry := range s.stateStore {
		if now.After(expiry) {
			delete(s.stateStore, issued)
		}
	}

	s.stateStore[state] = now.Add(s.stateTTL)
}

// consumeState reports whether the state was issued and is unexpired, and forgets it either way.
func (s *OAuthService) consumeState(state string) bool {
	if state == "" {
		return false
	}

	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	expiry, exists := s.stateStore[state]
	if !exists {
		return false
	}
	delete(s.stateStore, state)

	return !s.now().After(expiry)
}

func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}

	return hex.EncodeToString(buf), nil
}

type disabledOAuthService struct{}

func (disabledOAuthService) BeginLogin() (string, string, error) {
	return "", "", domainerrors.ErrOAuthFailed.WithDetails("google login is not configured")
}

func (disabledOAuthService) CompleteLogin(context.Context, string, string) (*entity.ClaimedIdentity, error) {
	return nil, domainerrors.ErrOAuthFailed.WithDetails("google login is not configured")
}
