package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checklist/config"
	"checklist/internal/delivery/api/middleware"
	"checklist/internal/delivery/api/validator"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	mockService "checklist/internal/mocks/service"
	"checklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase answers the Google redirect flow; the other methods are unused here.
type stubAuthUsecase struct {
	usecase.AuthUsecase

	authURL        string
	completeOutput *usecase.AuthOutput
	completeErr    error
	gotState       string
	gotCode        string
}

func (s *stubAuthUsecase) BeginGoogleLogin(context.Context) (string, error) {
	return s.authURL, nil
}

func (s *stubAuthUsecase) CompleteGoogleLogin(_ context.Context, state, code string) (*usecase.AuthOutput, error) {
	s.gotState, s.gotCode = state, code

	return s.completeOutput, s.completeErr
}

func (s *stubAuthUsecase) LoginWithGoogleOneTap(_ context.Context, credential string) (*usecase.AuthOutput, error) {
	if credential != "good" {
		return nil, errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	return s.completeOutput, nil
}

func newAuthHandlerForTest(t *testing.T, uc usecase.AuthUsecase) *AuthHandler {
	cfg := &config.Config{GoogleOAuth: &config.GoogleOAuthConfig{SuccessURL: "https://app.example.com/home"}}
	cfg.ApplyDefaults()

	tokens := mockService.NewMockSessionTokenService(t)
	tokens.EXPECT().TTL().Return(cfg.Session.TTL)

	return NewAuthHandler(AuthHandlerParams{
		AuthUC:  uc,
		Cookies: middleware.NewSessionCookies(cfg, tokens),
		Config:  cfg,
		Logger:  slog.New(slog.DiscardHandler),
	})
}

func sampleOutput() *usecase.AuthOutput {
	return &usecase.AuthOutput{
		Identity: &entity.Identity{ID: uuid.New(), Email: "g@example.com", Role: entity.RoleMember, ProviderID: "sub"},
		Token:    &entity.SessionToken{Value: "signed", ExpiresAt: time.Now().Add(time.Hour)},
	}
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	h := newAuthHandlerForTest(t, &stubAuthUsecase{authURL: "https://accounts.google.com/o/oauth2/auth?state=s1"})
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.GoogleLogin(e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/google?redirect=true", nil), rec)))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=s1", rec.Header().Get(echo.HeaderLocation))

	rec = httptest.NewRecorder()
	require.NoError(t, h.GoogleLogin(e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/google", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "state=s1")
}

func TestAuthHandler_GoogleCallback(t *testing.T) {
	uc := &stubAuthUsecase{completeOutput: sampleOutput()}
	h := newAuthHandlerForTest(t, uc)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=s1&code=c1", nil), rec)
	require.NoError(t, h.GoogleCallback(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.example.com/home", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "s1", uc.gotState)
	assert.Equal(t, "c1", uc.gotCode)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "signed", rec.Result().Cookies()[0].Value)
}

func TestAuthHandler_GoogleCallbackFailures(t *testing.T) {
	e := echo.New()

	h := newAuthHandlerForTest(t, &stubAuthUsecase{})
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil), httptest.NewRecorder())
	assert.True(t, errors.Is(h.GoogleCallback(c), domainerrors.ErrOAuthFailed))

	h = newAuthHandlerForTest(t, &stubAuthUsecase{completeErr: errors.WithStack(domainerrors.ErrOAuthStateInvalid)})
	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=old&code=c", nil), rec)
	assert.True(t, errors.Is(h.GoogleCallback(c), domainerrors.ErrOAuthStateInvalid))
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_GoogleOneTapForm(t *testing.T) {
	h := newAuthHandlerForTest(t, &stubAuthUsecase{completeOutput: sampleOutput()})
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/auth/google/one-tap", strings.NewReader("credential=good&g_csrf_token=x"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.GoogleOneTap(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"google_linked":true`)
}
