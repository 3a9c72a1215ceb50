package middleware

import (
	"net/http"
	"time"

	"table-ordering-api/auth"

	"github.com/gin-gonic/gin"
)

const (
	CookieToken       = "auth_token"
	CookieLegacyAdmin = "admin_token"
	// CookieRole is a UI hint only; the signed token is authoritative.
	CookieRole = "user_role"
)

// SetSessionCookies writes the HTTP-only token cookie and the readable
// role hint. legacyAdmin also writes the admin_token alias.
func SetSessionCookies(c *gin.Context, s *auth.Session, secure, legacyAdmin bool) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(auth.TokenTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieToken, s.Token, maxAge, "/", "", secure, true)
	if legacyAdmin {
		c.SetCookie(CookieLegacyAdmin, s.Token, maxAge, "/", "", secure, true)
	}
	c.SetCookie(CookieRole, string(s.Claims.Role), maxAge, "/", "", secure, false)
}

// ClearSessionCookies logs the browser out. There is no server-side
// revocation; the token itself stays valid until it expires.
func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieToken, "", -1, "/", "", secure, true)
	c.SetCookie(CookieLegacyAdmin, "", -1, "/", "", secure, true)
	c.SetCookie(CookieRole, "", -1, "/", "", secure, false)
}
