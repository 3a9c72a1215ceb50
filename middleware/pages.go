package middleware

import (
	"net/http"
	"strings"

	"table-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// LoginPath is the generic staff login page
const LoginPath = "/login"

// UnauthorizedLoginPath is where a signed-in role lands when it opens
// another role's area
const UnauthorizedLoginPath = LoginPath + "?error=unauthorized"

// Area is a role-scoped group of pages under one path prefix
type Area struct {
	Prefix string
	Role   models.UserRole
	// Home is the default page; requests for the bare prefix go here
	Home string
	// Login is an area-specific login page, if any
	Login string
}

var DefaultAreas = []Area{
	{Prefix: "/admin", Role: models.RoleAdmin, Home: "/admin/dashboard", Login: "/admin/login"},
	{Prefix: "/kitchen", Role: models.RoleKitchen, Home: "/kitchen"},
	{Prefix: "/billing", Role: models.RoleBilling, Home: "/billing"},
}

func matchArea(areas []Area, path string) (Area, bool) {
	for _, a := range areas {
		if path == a.Prefix || strings.HasPrefix(path, a.Prefix+"/") {
			return a, true
		}
	}
	return Area{}, false
}

// PageGuard decides allow or redirect for every browser request into a
// protected area before any page handler runs. Verification is a
// signature and expiry check only.
func PageGuard(v TokenVerifier, areas []Area, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if path == LoginPath {
			redirectSignedIn(c, v)
			return
		}

		area, ok := matchArea(areas, path)
		if !ok {
			c.Next()
			return
		}

		if path == area.Prefix && area.Home != area.Prefix {
			redirect(c, area.Home)
			return
		}

		if area.Login != "" && path == area.Login {
			redirectSignedIn(c, v)
			return
		}

		claims, present := Authenticate(c, v)
		if !present {
			redirect(c, LoginPath)
			return
		}
		if claims == nil {
			ClearSessionCookies(c, secureCookies)
			redirect(c, LoginPath)
			return
		}
		if claims.Role != area.Role {
			redirect(c, UnauthorizedLoginPath)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// redirectSignedIn sends a visitor with a valid token to their home page.
// An invalid token counts as no token and the login page renders.
func redirectSignedIn(c *gin.Context, v TokenVerifier) {
	if claims, _ := Authenticate(c, v); claims != nil {
		redirect(c, claims.Role.Home())
		return
	}
	c.Next()
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
