package store

import (
	"context"
	"fmt"
	"math"

	"table-ordering-api/models"

	"gorm.io/gorm"
)

// AllCategories is the sentinel category that disables category filtering
const AllCategories = "All"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	// MaxPage keeps the row offset inside int32 for any page size
	MaxPage = math.MaxInt32 / MaxPageSize
)

type VegFilter string

const (
	VegAny  VegFilter = "all"
	VegOnly VegFilter = "veg"
	NonVeg  VegFilter = "non-veg"
)

// ParseVegFilter maps the diner toggle; unknown values mean no filter
func ParseVegFilter(s string) VegFilter {
	switch VegFilter(s) {
	case VegOnly, NonVeg:
		return VegFilter(s)
	}
	return VegAny
}

type MenuQuery struct {
	Page     int
	Limit    int
	Category string
	Veg      VegFilter
}

// Normalize fills defaults and clamps page and limit into range
func (q MenuQuery) Normalize() MenuQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Category == "" {
		q.Category = AllCategories
	}
	if q.Veg == "" {
		q.Veg = VegAny
	}
	return q
}

type MenuPage struct {
	Items   []models.MenuItem `json:"items"`
	HasMore bool              `json:"hasMore"`
}

type Menu struct {
	db *gorm.DB
}

func NewMenu(db *gorm.DB) *Menu {
	return &Menu{db: db}
}

func sorted(db *gorm.DB) *gorm.DB {
	return db.Order("category asc").Order("name asc").Order("id asc")
}

// All returns every menu item sorted by category then name
func (s *Menu) All(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := sorted(s.db.WithContext(ctx)).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

// List returns one page of the filtered menu. It fetches one row past
// the page to learn whether another page exists without counting.
func (s *Menu) List(ctx context.Context, q MenuQuery) (*MenuPage, error) {
	q = q.Normalize()
	query := s.db.WithContext(ctx).Model(&models.MenuItem{})
	if q.Category != AllCategories {
		query = query.Where("category = ?", q.Category)
	}
	switch q.Veg {
	case VegOnly:
		query = query.Where("is_veg = ?", true)
	case NonVeg:
		query = query.Where("is_veg = ?", false)
	}

	items := []models.MenuItem{}
	err := sorted(query).Offset((q.Page - 1) * q.Limit).Limit(q.Limit + 1).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list menu page: %w", err)
	}
	page := &MenuPage{Items: items, HasMore: len(items) > q.Limit}
	if page.HasMore {
		page.Items = items[:q.Limit]
	}
	return page, nil
}

// Categories returns the sorted distinct categories prefixed with "All"
func (s *Menu) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Distinct("category").Order("category asc").Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return append([]string{AllCategories}, categories...), nil
}

func (s *Menu) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *Menu) Create(ctx context.Context, item *models.MenuItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Update overwrites every editable field of the item with item.ID
func (s *Menu) Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	res := s.db.WithContext(ctx).Model(&models.MenuItem{ID: item.ID}).
		Select("name", "description", "price", "category", "sub_category", "image",
			"is_available", "is_veg", "spice_level").
		Updates(item)
	if res.Error != nil {
		return nil, fmt.Errorf("update menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, item.ID)
}

func (s *Menu) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	if res.Error != nil {
		return fmt.Errorf("delete menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Replace swaps the whole menu for items in one transaction
func (s *Menu) Replace(ctx context.Context, items []models.MenuItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
			return fmt.Errorf("clear menu: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
		return nil
	})
}
