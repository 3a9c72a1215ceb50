package seed

import (
	"strings"
	"testing"

	"table-ordering-api/models"
)

func TestDefaultMenu(t *testing.T) {
	items, err := DefaultMenu()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) == 0 {
		t.Fatal("bundled menu is empty")
	}
	for _, it := range items {
		if it.Image == "" {
			t.Errorf("%s: bundled items must carry an image", it.Name)
		}
		if !it.SpiceLevel.Valid() || !it.IsAvailable {
			t.Errorf("%s: unexpected defaults %+v", it.Name, it)
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	items, err := Parse([]byte(`
items:
  - name: Lassi
    description: sweet
    price: 3.5
    category: Drinks
    unavailable: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].SpiceLevel != models.SpiceMedium || items[0].IsAvailable || items[0].IsVeg {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"spice": "items:\n  - {name: A, category: B, price: 1, spiceLevel: Volcanic}\n",
		"price": "items:\n  - {name: A, category: B, price: 0}\n",
		"yaml":  "items: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		} else if name == "spice" && !strings.Contains(err.Error(), "Volcanic") {
			t.Errorf("spice error should name the value: %v", err)
		}
	}
}
