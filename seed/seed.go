// Package seed holds the starter menu loaded by POST /api/seed and the
// --seed flag.
package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"table-ordering-api/models"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

type entry struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Category    string  `yaml:"category"`
	SubCategory string  `yaml:"subCategory"`
	Image       string  `yaml:"image"`
	IsVeg       bool    `yaml:"isVeg"`
	Unavailable bool    `yaml:"unavailable"`
	SpiceLevel  string  `yaml:"spiceLevel"`
}

// DefaultMenu returns the bundled starter menu
func DefaultMenu() ([]models.MenuItem, error) {
	return Parse(defaultMenu)
}

// LoadFile reads a menu in the same YAML layout as the bundled one
func LoadFile(path string) ([]models.MenuItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) ([]models.MenuItem, error) {
	var doc struct {
		Items []entry `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	items := make([]models.MenuItem, 0, len(doc.Items))
	for i, e := range doc.Items {
		spice := models.SpiceLevel(e.SpiceLevel)
		if spice == "" {
			spice = models.SpiceMedium
		}
		if !spice.Valid() {
			return nil, fmt.Errorf("menu item %d (%s): unknown spice level %q", i, e.Name, e.SpiceLevel)
		}
		if e.Name == "" || e.Category == "" || e.Price <= 0 {
			return nil, fmt.Errorf("menu item %d: name, category and a positive price are required", i)
		}
		items = append(items, models.MenuItem{
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Category:    e.Category,
			SubCategory: e.SubCategory,
			Image:       e.Image,
			IsVeg:       e.IsVeg,
			IsAvailable: !e.Unavailable,
			SpiceLevel:  spice,
		})
	}
	return items, nil
}
