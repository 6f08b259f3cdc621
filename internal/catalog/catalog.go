package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// Catalog is the read-only reference data the storefront serves from:
// menu items, reviews and dining locations. It is loaded once at
// startup and never mutated.
type Catalog struct {
	items         []models.MenuItem
	itemsByID     map[string]models.MenuItem
	reviews       []models.Review
	locations     []models.Location
	locationsByID map[string]models.Location
}

// Load reads the three catalog data files named in the config.
// Catalog data is required; unlike session state there is no empty
// fallback for a corrupt file.
func Load(cfg *models.Config) (*Catalog, error) {
	var items []models.MenuItem
	if err := readJSONFile(cfg.MenuFile, &items); err != nil {
		return nil, fmt.Errorf("loading menu items: %w", err)
	}

	var reviews []models.Review
	if err := readJSONFile(cfg.ReviewsFile, &reviews); err != nil {
		return nil, fmt.Errorf("loading reviews: %w", err)
	}

	var locations []models.Location
	if err := readJSONFile(cfg.LocationsFile, &locations); err != nil {
		return nil, fmt.Errorf("loading locations: %w", err)
	}

	return New(items, reviews, locations), nil
}

// New builds a catalog from in-memory data.
func New(items []models.MenuItem, reviews []models.Review, locations []models.Location) *Catalog {
	c := &Catalog{
		items:         items,
		itemsByID:     make(map[string]models.MenuItem, len(items)),
		reviews:       reviews,
		locations:     locations,
		locationsByID: make(map[string]models.Location, len(locations)),
	}
	for _, item := range items {
		c.itemsByID[item.ID] = item
	}
	for _, loc := range locations {
		c.locationsByID[loc.ID] = loc
	}
	return c
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// MenuItems returns the full menu in catalog order.
func (c *Catalog) MenuItems() []models.MenuItem {
	return append([]models.MenuItem{}, c.items...)
}

// MenuItem looks up a menu item by ID.
func (c *Catalog) MenuItem(id string) (models.MenuItem, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

func (c *Catalog) Reviews() []models.Review {
	return append([]models.Review{}, c.reviews...)
}

func (c *Catalog) Locations() []models.Location {
	return append([]models.Location{}, c.locations...)
}

func (c *Catalog) Location(id string) (models.Location, bool) {
	loc, ok := c.locationsByID[id]
	return loc, ok
}

func (c *Catalog) HasLocation(id string) bool {
	_, ok := c.locationsByID[id]
	return ok
}
