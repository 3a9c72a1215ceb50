package handlers

import (
	"net/http"

	"table-ordering-api/middleware"
	"table-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

const (
	StaffLoginEndpoint = "/api/auth/login"
	StaffLoginTitle    = "Staff Login"
	AdminLoginEndpoint = "/api/admin/login"
	AdminLoginTitle    = "Admin Login"

	// LoginErrorInvalid is the login page's ?error= value for bad credentials
	LoginErrorInvalid = "invalid"
)

// MenuPage is the diner entry point; ?table= selects the table context
func (h *Handler) MenuPage(c *gin.Context) {
	c.HTML(http.StatusOK, "menu.tmpl", gin.H{
		"Title": "Menu",
		"Page":  "menu",
		"Table": c.Query("table"),
	})
}

func (h *Handler) LoginPage(endpoint, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"Title":         title,
			"Page":          "login",
			"Error":         c.Query("error"),
			"LoginEndpoint": endpoint,
		})
	}
}

// DashboardPage renders a role's dashboard shell. The page guard has
// already checked the role.
func (h *Handler) DashboardPage(title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := middleware.GetRole(c)
		c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
			"Title":          title,
			"Page":           "dashboard",
			"Role":           role,
			"Username":       middleware.GetUsername(c),
			"RefreshSeconds": int(statemachine.RefreshInterval(role).Seconds()),
		})
	}
}
