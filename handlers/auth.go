package handlers

import (
	"errors"
	"net/http"

	"table-ordering-api/auth"
	"table-ordering-api/middleware"
	"table-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// isFormPost reports whether the request came from the HTML login form
func isFormPost(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == binding.MIMEPOSTForm || ct == binding.MIMEMultipartPOSTForm
}

// signIn answers JSON callers with the redirect target and browser form
// posts with the redirect itself. A failed form post renders the login
// page again.
func (h *Handler) signIn(c *gin.Context, legacyAdmin bool) {
	form := isFormPost(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		if form {
			h.renderLogin(c, http.StatusBadRequest, legacyAdmin)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	session, err := h.auth.Issue(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) || (err == nil && legacyAdmin && session.Claims.Role != models.RoleAdmin) {
		if form {
			h.renderLogin(c, http.StatusUnauthorized, legacyAdmin)
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		internalError(c, "Internal server error", err)
		return
	}

	middleware.SetSessionCookies(c, session, h.opts.SecureCookies, legacyAdmin)
	role := session.Claims.Role
	if form {
		c.Redirect(http.StatusSeeOther, role.Home())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"redirect": role.Home(),
		"role":     role,
	})
}

func (h *Handler) renderLogin(c *gin.Context, status int, legacyAdmin bool) {
	endpoint, title := StaffLoginEndpoint, StaffLoginTitle
	if legacyAdmin {
		endpoint, title = AdminLoginEndpoint, AdminLoginTitle
	}
	c.HTML(status, "login.tmpl", gin.H{
		"Title":         title,
		"Page":          "login",
		"Error":         LoginErrorInvalid,
		"LoginEndpoint": endpoint,
	})
}

// Login signs in any staff role
func (h *Handler) Login(c *gin.Context) {
	h.signIn(c, false)
}

// AdminLogin is the older admin-only sign-in; it also sets admin_token
func (h *Handler) AdminLogin(c *gin.Context) {
	h.signIn(c, true)
}

func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearSessionCookies(c, h.opts.SecureCookies)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
