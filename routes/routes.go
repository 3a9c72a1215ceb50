package routes

import (
	"fmt"
	"net/http"
	"time"

	"table-ordering-api/handlers"
	"table-ordering-api/middleware"
	"table-ordering-api/models"
	"table-ordering-api/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Handler  *handlers.Handler
	Verifier middleware.TokenVerifier
	// Redis enables login throttling; nil disables it
	Redis         redis.Cmdable
	SecureCookies bool
	CORSOrigins   []string
}

// NewRouter builds the engine with logging, recovery, CORS, the page
// guard and every route.
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.PageGuard(d.Verifier, middleware.DefaultAreas, d.SecureCookies))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Table Ordering API",
		})
	})

	SetupRoutes(r, d)
	return r, nil
}

func SetupRoutes(r *gin.Engine, d Deps) {
	h := d.Handler

	// ── Pages ──────────────────────────────────────────────────────
	r.GET("/", h.MenuPage)
	r.GET("/login", h.LoginPage(handlers.StaffLoginEndpoint, handlers.StaffLoginTitle))
	r.GET("/admin", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
	r.GET("/admin/login", h.LoginPage(handlers.AdminLoginEndpoint, handlers.AdminLoginTitle))
	r.GET("/admin/dashboard", h.DashboardPage("Admin Dashboard"))
	r.GET("/kitchen", h.DashboardPage("Kitchen Dashboard"))
	r.GET("/billing", h.DashboardPage("Billing Dashboard"))

	// ── Public API ─────────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", middleware.LoginRateLimit(d.Redis), h.Login)
		public.POST("/auth/logout", h.Logout)
		public.POST("/admin/login", middleware.LoginRateLimit(d.Redis), h.AdminLogin)
		public.POST("/admin/logout", h.Logout)

		public.POST("/orders", h.CreateOrder)

		public.GET("/menu", h.GetMenu)
		public.GET("/menu/list", h.ListMenu)
		public.GET("/menu/categories", h.GetCategories)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Staff API (any role) ───────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(d.Verifier))
	{
		staff.GET("/orders", h.ListOrders)
		staff.GET("/orders/:id", h.GetOrder)
		staff.PATCH("/orders/:id", h.UpdateOrder)
		staff.GET("/dashboard", h.GetDashboard)
	}

	// ── Admin API ──────────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(d.Verifier), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/menu", h.CreateMenuItem)
		admin.PUT("/menu", h.UpdateMenuItem)
		admin.DELETE("/menu", h.DeleteMenuItem)
		admin.POST("/seed", h.SeedMenu)
		admin.POST("/upload", h.UploadImage)
		admin.GET("/tables/:table/qr", h.TableQRCode)
	}
}
