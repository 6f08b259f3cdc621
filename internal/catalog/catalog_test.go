package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

func testItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "n1", Name: "Premium Jollof Rice", Price: 3500, Category: models.CategoryNigerian, SpiceLevel: models.SpiceMedium, Popular: true, Customizable: true},
		{ID: "n5", Name: "Ofada Rice & Ayamase", Price: 3200, Category: models.CategoryNigerian, SpiceLevel: models.SpiceExtraHot},
		{ID: "n6", Name: "Amala & Ewedu", Price: 2900, Category: models.CategoryNigerian, SpiceLevel: models.SpiceMedium, Dietary: []string{models.DietaryVegan, models.DietaryGlutenFree}},
		{ID: "i1", Name: "Grilled Salmon Fillet", Price: 5500, Category: models.CategoryInternational, SpiceLevel: models.SpiceMild, Popular: true},
	}
}

func testLocations() []models.Location {
	return []models.Location{
		{ID: "lag1", Name: "Habeeb Kitchen Victoria Island", City: "Lagos"},
		{ID: "abj1", Name: "Habeeb Kitchen Maitama", City: "Abuja"},
	}
}

func TestLookups(t *testing.T) {
	c := New(testItems(), nil, testLocations())

	item, ok := c.MenuItem("n1")
	require.True(t, ok)
	assert.Equal(t, "Premium Jollof Rice", item.Name)

	_, ok = c.MenuItem("zz")
	assert.False(t, ok)

	assert.True(t, c.HasLocation("lag1"))
	assert.False(t, c.HasLocation("lag9"))
}

func TestFilterConjunction(t *testing.T) {
	c := New(testItems(), nil, nil)

	nigerian := c.Filter(ByCategory(models.CategoryNigerian))
	assert.Len(t, nigerian, 3)

	popularNigerian := c.Filter(ByCategory(models.CategoryNigerian), PopularOnly())
	require.Len(t, popularNigerian, 1)
	assert.Equal(t, "n1", popularNigerian[0].ID)

	mildOnly := c.Filter(MaxSpice(models.SpiceMild))
	require.Len(t, mildOnly, 1)
	assert.Equal(t, "i1", mildOnly[0].ID)

	vegan := c.Filter(ByDietary(models.DietaryVegan))
	require.Len(t, vegan, 1)
	assert.Equal(t, "n6", vegan[0].ID)

	cheap := c.Filter(MaxPrice(3000))
	require.Len(t, cheap, 1)
	assert.Equal(t, "n6", cheap[0].ID)

	// no predicates: whole menu, catalog order preserved
	all := c.Filter()
	require.Len(t, all, 4)
	assert.Equal(t, "n1", all[0].ID)
	assert.Equal(t, "i1", all[3].ID)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, payload string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
		return path
	}

	cfg := models.DefaultConfig()
	cfg.MenuFile = write("menu.json", `[{"id":"n1","name":"Premium Jollof Rice","price":3500,"category":"nigerian","spice_level":"medium"}]`)
	cfg.ReviewsFile = write("reviews.json", `[{"id":"r1","customer_name":"Adunni Okafor","rating":5}]`)
	cfg.LocationsFile = write("locations.json", `[{"id":"lag1","name":"Victoria Island","city":"Lagos"}]`)

	c, err := Load(cfg)
	require.NoError(t, err)

	item, ok := c.MenuItem("n1")
	require.True(t, ok)
	assert.Equal(t, models.SpiceMedium, item.SpiceLevel)
	assert.Len(t, c.Reviews(), 1)
	assert.True(t, c.HasLocation("lag1"))
}

func TestLoadRejectsCorruptData(t *testing.T) {
	dir := t.TempDir()
	menuPath := filepath.Join(dir, "menu.json")
	require.NoError(t, os.WriteFile(menuPath, []byte("{not json"), 0o644))

	cfg := models.DefaultConfig()
	cfg.MenuFile = menuPath

	_, err := Load(cfg)
	assert.Error(t, err)
}
