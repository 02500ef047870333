package handler

import (
	"log/slog"
	"net/http"

	"checklist/config"
	"checklist/internal/delivery/api/middleware"
	"checklist/internal/delivery/api/response"
	deliverycontext "checklist/internal/delivery/context"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC  usecase.AuthUsecase
	Cookies *middleware.SessionCookies
	Config  *config.Config
	Logger  *slog.Logger
}

// AuthHandler serves the sign-in endpoints.
type AuthHandler struct {
	authUC     usecase.AuthUsecase
	cookies    *middleware.SessionCookies
	successURL string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	successURL := "/"
	if params.Config.GoogleOAuth != nil && params.Config.GoogleOAuth.SuccessURL != "" {
		successURL = params.Config.GoogleOAuth.SuccessURL
	}

	return &AuthHandler{
		authUC:     params.AuthUC,
		cookies:    params.Cookies,
		successURL: successURL,
		logger:     params.Logger,
	}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /auth/login. The email format is not validated
// so malformed input fails like any other bad credential.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OneTapRequest carries the ID token posted by Google Identity Services, either as
// JSON from the page script or form-encoded from the redirect mode.
type OneTapRequest struct {
	Credential string `json:"credential" form:"credential" validate:"required"`
}

// Register creates a local account and signs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Write(c, output.Token)

	return response.Success(c, http.StatusCreated, toAuthResponse(output))
}

// Login signs in with a local email and password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Write(c, output.Token)

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

// GoogleOneTap signs in with a Google ID token.
func (h *AuthHandler) GoogleOneTap(c echo.Context) error {
	var req OneTapRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid Google credential input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.authUC.LoginWithGoogleOneTap(c.Request().Context(), req.Credential)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Write(c, output.Token)

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

// GoogleLogin starts the redirect flow. With ?redirect=true the browser is sent to
// Google directly, otherwise the consent URL is returned for the frontend to follow.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	authURL, err := h.authUC.BeginGoogleLogin(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusFound, authURL)
	}

	return response.Success(c, http.StatusOK, map[string]string{"oauth_url": authURL})
}

// GoogleCallback completes the redirect flow, sets the session cookie and sends the
// browser to the configured landing page.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	if providerErr := c.QueryParam("error"); providerErr != "" {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Info("Google sign-in was not completed",
			slog.String("provider_error", providerErr),
		)

		return errors.WithStack(domainerrors.ErrOAuthFailed)
	}

	output, err := h.authUC.CompleteGoogleLogin(ctx, c.QueryParam("state"), c.QueryParam("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Write(c, output.Token)

	return c.Redirect(http.StatusFound, h.successURL)
}

// Logout expires the session cookie. Tokens are stateless, so nothing is revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)

	return response.Success(c, http.StatusOK, map[string]bool{"logged_out": true})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
