// =============================================================================
// EPOS Data Generator - Basket Composer
// =============================================================================
//
// This module decides what a transaction contains: how many lines, which
// product on each line, and how many units. Product selection is a two-step
// draw: the location type's category-affinity table picks a category, then a
// product is drawn uniformly within it. Quantities come from a small skewed
// distribution (most lines are a single unit).
//
// GUARANTEES:
//   - every basket has at least one line
//   - every line references a product that exists in the catalog
//
// FAILURE SEMANTICS:
//   Anything that would make composition impossible (an affinity table over
//   undefined categories, an affinity table whose weighted categories have
//   no products, an empty catalog) is a *model.ConsistencyError raised at
//   construction, before the batch runs. Compose itself cannot fail.
//
// =============================================================================

package basket

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/dist"
	"github.com/eposforge/epos-datagen/internal/model"
)

// Line is one composed basket entry, before pricing.
type Line struct {
	Product  model.Product
	Quantity int
}

// Composer selects (product, quantity) pairs for a location type.
type Composer struct {
	byCategory map[model.Category][]model.Product
	affinity   map[model.LocationType]*dist.Discrete[string]
	sizeDist   *dist.Discrete[int]
	qtyDist    *dist.Discrete[int]
}

// NewComposer validates the affinity tables against the catalog and builds
// the per-type category distributions.
func NewComposer(cfg *config.Config, products []model.Product) (*Composer, error) {
	if len(products) == 0 {
		return nil, &model.ConsistencyError{
			Stage:  "basket composer",
			Reason: "product catalog is empty",
		}
	}

	byCategory := make(map[model.Category][]model.Product)
	for _, p := range products {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	affinity := make(map[model.LocationType]*dist.Discrete[string], len(model.LocationTypes))
	for _, locType := range model.LocationTypes {
		table, ok := cfg.CategoryAffinity[string(locType)]
		if !ok {
			return nil, &model.ConsistencyError{
				Stage:  "basket composer",
				Reason: fmt.Sprintf("no category affinity table for location type %q", locType),
			}
		}

		// Keep only categories the catalog can actually serve; a sparse
		// catalog (num_products < 10) legitimately leaves some categories
		// empty. Sorted for a deterministic distribution layout.
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		var outcomes []string
		var weights []float64
		for _, name := range names {
			if len(byCategory[model.Category(name)]) == 0 {
				continue
			}
			outcomes = append(outcomes, name)
			weights = append(weights, table[name])
		}
		if len(outcomes) == 0 {
			return nil, &model.ConsistencyError{
				Stage:  "basket composer",
				Reason: fmt.Sprintf("affinity table for %q matches no stocked category", locType),
			}
		}

		d, err := dist.New(outcomes, weights)
		if err != nil {
			return nil, &model.ConsistencyError{
				Stage:  "basket composer",
				Reason: fmt.Sprintf("affinity table for %q: %v", locType, err),
			}
		}
		affinity[locType] = d
	}

	sizeDist, err := dist.FromMap(cfg.BasketSizeWeights)
	if err != nil {
		return nil, &model.ConsistencyError{
			Stage:  "basket composer",
			Reason: fmt.Sprintf("basket size weights: %v", err),
		}
	}
	qtyDist, err := dist.FromMap(cfg.QuantityWeights)
	if err != nil {
		return nil, &model.ConsistencyError{
			Stage:  "basket composer",
			Reason: fmt.Sprintf("quantity weights: %v", err),
		}
	}

	return &Composer{
		byCategory: byCategory,
		affinity:   affinity,
		sizeDist:   sizeDist,
		qtyDist:    qtyDist,
	}, nil
}

// Compose draws a basket for the given location type.
func (c *Composer) Compose(rng *rand.Rand, locType model.LocationType) []Line {
	k := c.sizeDist.Sample(rng)
	if k < 1 {
		k = 1
	}

	lines := make([]Line, 0, k)
	catDist := c.affinity[locType]
	for i := 0; i < k; i++ {
		category := model.Category(catDist.Sample(rng))
		pool := c.byCategory[category]
		lines = append(lines, Line{
			Product:  pool[rng.Intn(len(pool))],
			Quantity: c.qtyDist.Sample(rng),
		})
	}
	return lines
}
