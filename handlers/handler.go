package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"table-ordering-api/auth"
	"table-ordering-api/models"
	"table-ordering-api/store"

	"github.com/gin-gonic/gin"
)

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, statuses ...models.OrderStatus) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	History(ctx context.Context, id string) ([]models.OrderStatusHistory, error)
	Update(ctx context.Context, id string, upd store.OrderUpdate, check func(current *models.Order) error) (*models.Order, error)
}

type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	List(ctx context.Context, q store.MenuQuery) (*store.MenuPage, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, items []models.MenuItem) error
}

// ImageStore hosts uploaded menu images and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Authenticator checks staff credentials and issues a session
type Authenticator interface {
	Issue(username, password string) (*auth.Session, error)
}

type Options struct {
	SecureCookies     bool
	StrictTransitions bool
	VerifyOrderTotal  bool
	// PublicURL is the diner-facing base URL encoded into table QR codes
	PublicURL string
}

type Handler struct {
	orders OrderStore
	menu   MenuStore
	auth   Authenticator
	images ImageStore
	opts   Options
}

// New wires the HTTP handlers. images may be nil when no bucket is
// configured; uploads then answer 503.
func New(orders OrderStore, menu MenuStore, authn Authenticator, images ImageStore, opts Options) *Handler {
	return &Handler{orders: orders, menu: menu, auth: authn, images: images, opts: opts}
}

// internalError logs the cause and answers with a generic message
func internalError(c *gin.Context, msg string, err error) {
	log.Printf("❌ %s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
