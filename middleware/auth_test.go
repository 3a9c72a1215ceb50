package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"table-ordering-api/auth"
	"table-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func newAPIRouter(v TokenVerifier) *gin.Engine {
	r := gin.New()
	r.GET("/any", AuthRequired(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUsername(c), "role": GetRole(c)})
	})
	r.GET("/admin-only", AuthRequired(v), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), testCredentials)
	r := newAPIRouter(issuer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/any", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, "chef", "chef-pass"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}
}

func TestRoleRequired(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), testCredentials)
	r := newAPIRouter(issuer)

	w := get(r, "/admin-only", CookieToken, tokenFor(t, issuer, "chef", "chef-pass"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for kitchen, got %d", w.Code)
	}
	w = get(r, "/admin-only", CookieToken, tokenFor(t, issuer, "admin", "admin-pass"))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", w.Code)
	}
}

func TestAuthRequired_StaleCookieDoesNotShadowValidToken(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), testCredentials)
	r := newAPIRouter(issuer)
	valid := tokenFor(t, issuer, "admin", "admin-pass")

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "stale"})
	req.Header.Set("Authorization", "Bearer "+valid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("stale cookie + valid bearer: expected 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "stale"})
	req.AddCookie(&http.Cookie{Name: CookieLegacyAdmin, Value: valid})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("stale cookie + valid admin_token: expected 204, got %d", w.Code)
	}
}

func TestPageGuard_StaleCookieWithValidLegacyCookie(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), testCredentials)
	r := newPageRouter(issuer)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "stale"})
	req.AddCookie(&http.Cookie{Name: CookieLegacyAdmin, Value: tokenFor(t, issuer, "admin", "admin-pass")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (Location %q)", w.Code, w.Header().Get("Location"))
	}
}
