package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"table-ordering-api/models"
	"table-ordering-api/seed"
	"table-ordering-api/store"

	"github.com/gin-gonic/gin"
)

// GetMenu returns every item sorted by category then name
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.menu.All(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to fetch menu", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListMenu serves the diner's infinite scroll: one filtered page at a time
func (h *Handler) ListMenu(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultPageSize)))
	q := store.MenuQuery{
		Page:     page,
		Limit:    limit,
		Category: c.DefaultQuery("category", store.AllCategories),
		Veg:      store.ParseVegFilter(c.DefaultQuery("veg", string(store.VegAny))),
	}
	res, err := h.menu.List(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to fetch menu items", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.menu.Categories(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type MenuItemRequest struct {
	ID          string  `json:"id"`
	LegacyID    string  `json:"_id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"gt=0"`
	Category    string  `json:"category" binding:"required"`
	SubCategory string  `json:"subCategory"`
	Image       string  `json:"image" binding:"required"`
	IsAvailable *bool   `json:"isAvailable"`
	IsVeg       *bool   `json:"isVeg"`
	SpiceLevel  string  `json:"spiceLevel" binding:"omitempty,oneof=Mild Medium Hot"`
}

func (req *MenuItemRequest) itemID() string {
	if req.ID != "" {
		return req.ID
	}
	return req.LegacyID
}

// apply copies the request onto item. Omitted flags keep item's values.
func (req *MenuItemRequest) apply(item *models.MenuItem) {
	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.Price = req.Price
	item.Category = strings.TrimSpace(req.Category)
	item.SubCategory = req.SubCategory
	item.Image = req.Image
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.SpiceLevel != "" {
		item.SpiceLevel = models.SpiceLevel(req.SpiceLevel)
	}
}

// CreateMenuItem adds a dish. Duplicate names are not rejected.
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	item := &models.MenuItem{IsAvailable: true, IsVeg: true, SpiceLevel: models.SpiceMedium}
	req.apply(item)
	if err := h.menu.Create(c.Request.Context(), item); err != nil {
		internalError(c, "Failed to create menu item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	id := req.itemID()
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID is required"})
		return
	}

	ctx := c.Request.Context()
	item, err := h.menu.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to update menu item", err)
		return
	}
	req.apply(item)

	updated, err := h.menu.Update(ctx, item)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to update menu item", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID is required"})
		return
	}
	err := h.menu.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to delete menu item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

// SeedMenu replaces the whole menu with the bundled starter list
func (h *Handler) SeedMenu(c *gin.Context) {
	items, err := seed.DefaultMenu()
	if err != nil {
		internalError(c, "Failed to load seed menu", err)
		return
	}
	if err := h.menu.Replace(c.Request.Context(), items); err != nil {
		internalError(c, "Failed to seed menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu seeded successfully", "count": len(items)})
}
