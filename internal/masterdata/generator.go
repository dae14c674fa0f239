// =============================================================================
// EPOS Data Generator - Master Data
// =============================================================================
//
// This module produces the immutable reference tables every later stage reads
// from: one organization, the locations, the staff roster and the product
// catalog. It runs to completion before any transaction sampling begins, so
// the assembler can hold the result as shared read-only state across its
// workers without locking.
//
// ID FORMATS:
//   ORG-001, LOC-001, EMP-0001, PRD-00001
//
// =============================================================================

package masterdata

import (
	"fmt"
	"math/rand"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/dist"
	"github.com/eposforge/epos-datagen/internal/model"
)

// priceRange bounds unit prices per category, in GBP.
type priceRange struct {
	min, max float64
}

var priceRanges = map[model.Category]priceRange{
	model.CategoryBeer:         {3.50, 7.00},
	model.CategoryWine:         {5.00, 12.00},
	model.CategorySpirits:      {4.00, 15.00},
	model.CategoryCocktails:    {8.00, 16.00},
	model.CategorySoftDrinks:   {2.00, 4.50},
	model.CategoryAppetizers:   {5.00, 12.00},
	model.CategoryMainCourse:   {12.00, 28.00},
	model.CategoryDesserts:     {5.00, 9.00},
	model.CategorySides:        {3.00, 7.00},
	model.CategoryHotBeverages: {2.50, 5.00},
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate produces the full master dataset for the given configuration.
// All randomness flows through rng, so the output is deterministic for a
// given seed. The returned MasterData is never mutated afterwards.
func Generate(cfg *config.Config, rng *rand.Rand) (*model.MasterData, error) {
	org := model.Organization{
		ID:   "ORG-001",
		Name: "Harbourline Hospitality Group",
	}

	locations := generateLocations(cfg, org.ID)
	employees, err := generateEmployees(cfg, rng, locations)
	if err != nil {
		return nil, err
	}
	products := generateProducts(cfg, rng)

	return &model.MasterData{
		Organization: org,
		Locations:    locations,
		Employees:    employees,
		Products:     products,
	}, nil
}

// generateLocations builds the venue list. The first eight venues use the
// house names; beyond that, names are composed from pools so any
// num_locations works.
func generateLocations(cfg *config.Config, orgID string) []model.Location {
	locations := make([]model.Location, cfg.NumLocations)
	for i := 0; i < cfg.NumLocations; i++ {
		var name string
		if i < len(houseVenues) {
			name = houseVenues[i]
		} else {
			name = fmt.Sprintf("The %s %s",
				venueAdjectives[i%len(venueAdjectives)],
				venueNouns[(i/len(venueAdjectives))%len(venueNouns)])
		}
		locations[i] = model.Location{
			ID:             fmt.Sprintf("LOC-%03d", i+1),
			OrganizationID: orgID,
			Name:           name,
			Type:           cfg.TypeForLocation(i),
			City:           cities[i%len(cities)],
		}
	}
	return locations
}

// generateEmployees builds the staff roster. The first pass seats one
// employee at every location so no venue is unstaffed; the remainder are
// assigned to random venues. Roughly one in four is a manager.
func generateEmployees(cfg *config.Config, rng *rand.Rand, locations []model.Location) ([]model.Employee, error) {
	roleDist, err := dist.New([]string{"cashier", "manager"}, []float64{0.75, 0.25})
	if err != nil {
		return nil, fmt.Errorf("failed to build role distribution: %w", err)
	}

	employees := make([]model.Employee, cfg.NumEmployees)
	for i := 0; i < cfg.NumEmployees; i++ {
		var loc model.Location
		if i < len(locations) {
			loc = locations[i]
		} else {
			loc = locations[rng.Intn(len(locations))]
		}

		// Hire dates fall in the four years before the trading window.
		hired := cfg.Start().AddDate(0, 0, -rng.Intn(4*365)-1)

		employees[i] = model.Employee{
			ID:         fmt.Sprintf("EMP-%04d", i+1),
			FirstName:  firstNames[rng.Intn(len(firstNames))],
			LastName:   lastNames[rng.Intn(len(lastNames))],
			Role:       roleDist.Sample(rng),
			LocationID: loc.ID,
			HireDate:   hired,
		}
	}
	return employees, nil
}

// generateProducts builds the catalog, spread roughly evenly over the ten
// fixed categories. When num_products is not divisible by ten the remainder
// is handed out one per category in canonical order, so the split is
// deterministic.
func generateProducts(cfg *config.Config, rng *rand.Rand) []model.Product {
	perCategory := cfg.NumProducts / len(model.Categories)
	remainder := cfg.NumProducts % len(model.Categories)

	products := make([]model.Product, 0, cfg.NumProducts)
	id := 1
	for ci, category := range model.Categories {
		count := perCategory
		if ci < remainder {
			count++
		}
		pr := priceRanges[category]
		for j := 0; j < count; j++ {
			price := model.RoundMoney(pr.min + rng.Float64()*(pr.max-pr.min))
			cost := model.RoundMoney(pr.min*0.3 + rng.Float64()*(pr.min*0.3))
			products = append(products, model.Product{
				ID:        fmt.Sprintf("PRD-%05d", id),
				Name:      productName(rng, category),
				Category:  category,
				UnitPrice: price,
				CostPrice: cost,
			})
			id++
		}
	}
	return products
}

// productName draws a plausible name for the category. Beer and wine get a
// brand prefix; everything else comes straight from the category pool.
func productName(rng *rand.Rand, category model.Category) string {
	pool := productNames[category]
	name := pool[rng.Intn(len(pool))]
	switch category {
	case model.CategoryBeer:
		return breweries[rng.Intn(len(breweries))] + " " + name
	case model.CategoryWine:
		return wineEstates[rng.Intn(len(wineEstates))] + " " + name
	}
	return name
}
