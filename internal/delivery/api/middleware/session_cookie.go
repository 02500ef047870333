package middleware

import (
	"net/http"
	"strings"
	"time"

	"checklist/config"
	"checklist/internal/domain/entity"
	"checklist/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// SessionCookies owns the cookie that carries the session token.
type SessionCookies struct {
	name     string
	ttl      time.Duration
	secure   bool
	sameSite http.SameSite
}

// NewSessionCookies derives the cookie attributes from configuration; the cookie lives
// exactly as long as the tokens it carries. Cross-site deployments need SameSite=None,
// which browsers only accept on Secure cookies.
func NewSessionCookies(cfg *config.Config, tokens service.SessionTokenService) *SessionCookies {
	cookies := &SessionCookies{
		name:     cfg.Session.CookieName,
		ttl:      tokens.TTL(),
		secure:   cfg.IsProduction(),
		sameSite: http.SameSiteLaxMode,
	}
	if cfg.Session.CrossSite {
		cookies.sameSite = http.SameSiteNoneMode
		cookies.secure = true
	}

	return cookies
}

// Write sets or overwrites the session cookie.
func (s *SessionCookies) Write(c echo.Context, token *entity.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    token.Value,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	})
}

// Clear expires the session cookie.
func (s *SessionCookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	})
}

// Token returns the presented session token: the cookie first, then a Bearer header.
func (s *SessionCookies) Token(c echo.Context) string {
	if cookie, err := c.Cookie(s.name); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
