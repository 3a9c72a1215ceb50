package middleware

import (
	"net/http"
	"strings"

	"table-ordering-api/auth"
	"table-ordering-api/models"

	"github.com/gin-gonic/gin"
)

const (
	claimsKey   = "claims"
	usernameKey = "username"
	roleKey     = "role"
)

// TokenVerifier checks a session token's signature and expiry
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// TokenCandidates returns every session token the request carries: the
// auth cookie, the legacy admin cookie, then a Bearer Authorization
// header.
func TokenCandidates(c *gin.Context) []string {
	var tokens []string
	for _, name := range []string{CookieToken, CookieLegacyAdmin} {
		if v, err := c.Cookie(name); err == nil && v != "" {
			tokens = append(tokens, v)
		}
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if t := strings.TrimPrefix(h, "Bearer "); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Authenticate returns the claims of the first candidate token that
// verifies, so a stale cookie does not shadow a valid token behind it.
// present reports whether the request carried any token at all.
func Authenticate(c *gin.Context, v TokenVerifier) (*auth.Claims, bool) {
	tokens := TokenCandidates(c)
	for _, t := range tokens {
		if claims, err := v.Verify(t); err == nil {
			return claims, true
		}
	}
	return nil, len(tokens) > 0
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(claimsKey, claims)
	c.Set(usernameKey, claims.Username)
	c.Set(roleKey, string(claims.Role))
}

// AuthRequired validates the token and injects claims into context
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, present := Authenticate(c, v)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(roleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			return
		}
		callerRole := models.UserRole(roleVal.(string))
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
	}
}

func rolesString(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString(roleKey))
}

// GetUsername extracts caller username from context
func GetUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
