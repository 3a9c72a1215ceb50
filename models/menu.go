package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpiceLevel string

const (
	SpiceMild   SpiceLevel = "Mild"
	SpiceMedium SpiceLevel = "Medium"
	SpiceHot    SpiceLevel = "Hot"
)

func (s SpiceLevel) Valid() bool {
	switch s {
	case SpiceMild, SpiceMedium, SpiceHot:
		return true
	}
	return false
}

// MenuItem is a dish on the diner-facing menu. Names are unique by
// convention only.
type MenuItem struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string     `json:"name" gorm:"not null;index"`
	Description string     `json:"description" gorm:"not null"`
	Price       float64    `json:"price" gorm:"not null"`
	Category    string     `json:"category" gorm:"not null;index"`
	SubCategory string     `json:"subCategory,omitempty"`
	Image       string     `json:"image,omitempty"`
	IsAvailable bool       `json:"isAvailable"`
	IsVeg       bool       `json:"isVeg"`
	SpiceLevel  SpiceLevel `json:"spiceLevel" gorm:"not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.SpiceLevel == "" {
		m.SpiceLevel = SpiceMedium
	}
	return nil
}
