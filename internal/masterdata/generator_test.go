package masterdata

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestGenerateCounts(t *testing.T) {
	cfg := testConfig(t)
	master, err := Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)

	assert.Equal(t, "ORG-001", master.Organization.ID)
	assert.Len(t, master.Locations, cfg.NumLocations)
	assert.Len(t, master.Employees, cfg.NumEmployees)
	assert.Len(t, master.Products, cfg.NumProducts)
}

func TestEveryLocationIsStaffed(t *testing.T) {
	cfg := testConfig(t)
	master, err := Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	staff := master.EmployeesByLocation()
	for _, loc := range master.Locations {
		assert.NotEmpty(t, staff[loc.ID], "location %s has no employees", loc.ID)
	}
}

func TestEmployeesBelongToRealLocations(t *testing.T) {
	cfg := testConfig(t)
	master, err := Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, loc := range master.Locations {
		known[loc.ID] = true
	}
	for _, e := range master.Employees {
		assert.True(t, known[e.LocationID], "employee %s at unknown location %s", e.ID, e.LocationID)
		assert.True(t, e.HireDate.Before(cfg.Start()), "hire date after trading window start")
	}
}

func TestProductsSpreadAcrossCategories(t *testing.T) {
	cfg := testConfig(t)
	master, err := Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	counts := make(map[model.Category]int)
	for _, p := range master.Products {
		counts[p.Category]++
		assert.Positive(t, p.UnitPrice)
		assert.Positive(t, p.CostPrice)
		assert.Less(t, p.CostPrice, p.UnitPrice)
	}

	// 150 products over 10 categories: exactly 15 each.
	for _, c := range model.Categories {
		assert.Equal(t, 15, counts[c], "category %s", c)
	}
}

func TestRemainderDistributionIsDeterministic(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumProducts = 23
	require.NoError(t, cfg.Resolve())

	master, err := Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	counts := make(map[model.Category]int)
	for _, p := range master.Products {
		counts[p.Category]++
	}
	// 23 = 2 per category + 1 extra for the first three in canonical order.
	for i, c := range model.Categories {
		want := 2
		if i < 3 {
			want = 3
		}
		assert.Equal(t, want, counts[c], "category %s", c)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := testConfig(t)

	a, err := Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	b, err := Generate(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)

	assert.Equal(t, a.Locations, b.Locations)
	assert.Equal(t, a.Employees, b.Employees)
	assert.Equal(t, a.Products, b.Products)
}

func TestLocationTypesFollowSplit(t *testing.T) {
	cfg := testConfig(t)
	master, err := Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	counts := make(map[model.LocationType]int)
	for _, loc := range master.Locations {
		counts[loc.Type]++
	}
	assert.Equal(t, 3, counts[model.LocationRestaurant])
	assert.Equal(t, 3, counts[model.LocationBar])
	assert.Equal(t, 2, counts[model.LocationPub])
}
