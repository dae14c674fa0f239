// =============================================================================
// EPOS Data Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading, defaulting and validating the
// generation configuration. Configuration comes from a YAML file, with a
// small set of EPOS_* environment variables as overrides (a .env file is
// honored when present).
//
// VALIDATION STRATEGY:
//   Every constraint is checked once, eagerly, before any generation work
//   begins. Violations are collected into a single *ConfigurationError so
//   the operator sees the full list in one run rather than one failure at
//   a time. A ConfigurationError is always fatal: no records are produced.
//
// CONSTRAINTS:
//   - all weight maps sum to 1.0 within a small epsilon
//   - start_date <= end_date
//   - business_hours.open < business_hours.close
//   - all counts are positive integers
//   - num_employees >= num_locations (every location needs staff)
//   - location_split, when given, totals num_locations
//   - affinity tables reference only known location types and categories
//
// =============================================================================

package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eposforge/epos-datagen/internal/model"
)

// weightEpsilon is the tolerance for "weights sum to 1.0".
const weightEpsilon = 1e-6

// dateLayout is the wire format for start_date / end_date.
const dateLayout = "2006-01-02"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// BusinessHours is the daily trading window, in whole 24-hour clock hours.
// Transactions are timestamped within [Open, Close).
type BusinessHours struct {
	Open  int `yaml:"open"`
	Close int `yaml:"close"`
}

// DiscountConfig controls the per-transaction discount draw.
type DiscountConfig struct {
	// Probability is the chance a transaction receives any discount.
	Probability float64 `yaml:"probability"`

	// MinRate and MaxRate bound the discount as a fraction of subtotal.
	MinRate float64 `yaml:"min_rate"`
	MaxRate float64 `yaml:"max_rate"`
}

// PeakWindow boosts transaction volume for the hours [From, To).
type PeakWindow struct {
	From   int     `yaml:"from"`
	To     int     `yaml:"to"`
	Weight float64 `yaml:"weight"`
}

// Config holds all generation parameters.
type Config struct {
	// Seed is the master random seed. The same seed and configuration
	// produce a byte-identical dataset.
	Seed int64 `yaml:"seed"`

	// =========================================================================
	// VOLUME SETTINGS
	// =========================================================================

	NumTransactions int `yaml:"num_transactions"`
	NumLocations    int `yaml:"num_locations"`
	NumProducts     int `yaml:"num_products"`
	NumEmployees    int `yaml:"num_employees"`

	// =========================================================================
	// TEMPORAL SETTINGS
	// =========================================================================

	// StartDate and EndDate bound the transaction calendar (inclusive),
	// formatted YYYY-MM-DD.
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`

	BusinessHours BusinessHours `yaml:"business_hours"`

	// PeakHours boost hourly volume inside the business window.
	// Default: lunch (12-14) and dinner (18-21) peaks.
	PeakHours []PeakWindow `yaml:"peak_hours"`

	// WeekendBoost multiplies the volume weight of Saturdays and Sundays.
	// 1.0 disables seasonal weighting.
	WeekendBoost float64 `yaml:"weekend_boost"`

	// =========================================================================
	// DISTRIBUTION SETTINGS
	// =========================================================================

	// StatusWeights is the target transaction status mix. Must sum to 1.0.
	StatusWeights map[string]float64 `yaml:"status_weights"`

	// PaymentWeights is the target payment-method mix over non-error
	// transactions. Must sum to 1.0.
	PaymentWeights map[string]float64 `yaml:"payment_weights"`

	// CategoryAffinity maps location type -> category -> weight. It biases
	// basket composition per venue type (bars toward drinks, restaurants
	// toward food). Each inner map must sum to 1.0.
	CategoryAffinity map[string]map[string]float64 `yaml:"category_affinity"`

	// LocationSplit fixes how many locations of each type are generated.
	// When omitted it is derived round-robin over restaurant/bar/pub.
	LocationSplit map[string]int `yaml:"location_split"`

	// BasketSizeWeights is the distribution of items per basket.
	BasketSizeWeights map[int]float64 `yaml:"basket_size_weights"`

	// QuantityWeights is the distribution of units per basket line.
	QuantityWeights map[int]float64 `yaml:"quantity_weights"`

	// =========================================================================
	// PRICING SETTINGS
	// =========================================================================

	// TaxRate is applied to (subtotal - discount). Default 0.20 (UK VAT).
	TaxRate float64 `yaml:"tax_rate"`

	Discount DiscountConfig `yaml:"discount"`

	// =========================================================================
	// OUTPUT & LOGGING SETTINGS
	// =========================================================================

	// OutputDir is where the exported artifacts are written.
	OutputDir string `yaml:"output_dir"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// Parsed date bounds, populated by Resolve.
	start time.Time
	end   time.Time
}

// Start returns the parsed inclusive start of the transaction calendar.
func (c *Config) Start() time.Time { return c.start }

// End returns the parsed inclusive end of the transaction calendar.
func (c *Config) End() time.Time { return c.end }

// =============================================================================
// CONFIGURATION ERROR
// =============================================================================

// ConfigurationError is the fatal, pre-generation error carrying every
// constraint violation found in one validation pass.
type ConfigurationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration (%d problem(s)): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a YAML configuration file, applies defaults and environment
// overrides, and validates the result. A missing file is not an error: the
// defaults describe a complete, runnable configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to defaults.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, mirroring a year of trading
// for an eight-venue hospitality group.
func Default() *Config {
	return &Config{
		Seed:            42,
		NumTransactions: 100000,
		NumLocations:    8,
		NumProducts:     150,
		NumEmployees:    25,
		StartDate:       "2024-01-01",
		EndDate:         "2024-12-31",
		BusinessHours:   BusinessHours{Open: 10, Close: 23},
		WeekendBoost:    1.5,
		TaxRate:         0.20,
		Discount:        DiscountConfig{Probability: 0.10, MinRate: 0.05, MaxRate: 0.20},
		OutputDir:       "data/raw",
		LogFile:         "logs/datagen.log",
		LogLevel:        "info",
	}
}

// applyDefaults fills any distribution left unset by the file or the
// environment. Scalar defaults are handled by Default; the maps live here so
// a partially specified file does not silently lose the missing entries.
func applyDefaults(cfg *Config) {
	if cfg.StatusWeights == nil {
		cfg.StatusWeights = map[string]float64{
			string(model.StatusCompleted): 0.92,
			string(model.StatusRefunded):  0.05,
			string(model.StatusVoided):    0.02,
			string(model.StatusError):     0.01,
		}
	}
	if cfg.PaymentWeights == nil {
		cfg.PaymentWeights = map[string]float64{
			string(model.PayCreditCard): 0.45,
			string(model.PayDebitCard):  0.30,
			string(model.PayCash):       0.15,
			string(model.PayMobile):     0.08,
			string(model.PayGiftCard):   0.02,
		}
	}
	if cfg.CategoryAffinity == nil {
		cfg.CategoryAffinity = defaultAffinity()
	}
	if cfg.BasketSizeWeights == nil {
		cfg.BasketSizeWeights = map[int]float64{
			1: 0.18, 2: 0.30, 3: 0.26, 4: 0.14, 5: 0.08, 6: 0.04,
		}
	}
	if cfg.QuantityWeights == nil {
		cfg.QuantityWeights = map[int]float64{1: 0.70, 2: 0.20, 3: 0.10}
	}
	if cfg.PeakHours == nil {
		cfg.PeakHours = []PeakWindow{
			{From: 12, To: 14, Weight: 2.0},
			{From: 18, To: 21, Weight: 3.0},
		}
	}
	if cfg.WeekendBoost == 0 {
		cfg.WeekendBoost = 1.0
	}
}

// defaultAffinity is the built-in category-affinity table: bars favor the
// drink categories, restaurants the food categories, pubs sit in between.
func defaultAffinity() map[string]map[string]float64 {
	return map[string]map[string]float64{
		string(model.LocationBar): {
			string(model.CategoryBeer):         0.22,
			string(model.CategoryWine):         0.12,
			string(model.CategorySpirits):      0.14,
			string(model.CategoryCocktails):    0.18,
			string(model.CategorySoftDrinks):   0.08,
			string(model.CategoryAppetizers):   0.10,
			string(model.CategorySides):        0.06,
			string(model.CategoryHotBeverages): 0.02,
			string(model.CategoryMainCourse):   0.05,
			string(model.CategoryDesserts):     0.03,
		},
		string(model.LocationRestaurant): {
			string(model.CategoryMainCourse):   0.26,
			string(model.CategoryAppetizers):   0.16,
			string(model.CategoryDesserts):     0.10,
			string(model.CategorySides):        0.10,
			string(model.CategoryWine):         0.10,
			string(model.CategoryBeer):         0.07,
			string(model.CategorySoftDrinks):   0.09,
			string(model.CategoryHotBeverages): 0.06,
			string(model.CategoryCocktails):    0.04,
			string(model.CategorySpirits):      0.02,
		},
		string(model.LocationPub): {
			string(model.CategoryBeer):         0.30,
			string(model.CategoryMainCourse):   0.14,
			string(model.CategoryAppetizers):   0.10,
			string(model.CategorySides):        0.08,
			string(model.CategorySpirits):      0.10,
			string(model.CategoryWine):         0.06,
			string(model.CategoryCocktails):    0.05,
			string(model.CategorySoftDrinks):   0.09,
			string(model.CategoryHotBeverages): 0.03,
			string(model.CategoryDesserts):     0.05,
		},
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// applyEnvOverrides overlays EPOS_* environment variables on the loaded
// configuration. Only a small operational subset is exposed this way; the
// distribution tables are file-only.
func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt64("EPOS_SEED"); ok {
		cfg.Seed = v
	}
	if v, ok := envInt("EPOS_NUM_TRANSACTIONS"); ok {
		cfg.NumTransactions = v
	}
	if v := os.Getenv("EPOS_START_DATE"); v != "" {
		cfg.StartDate = v
	}
	if v := os.Getenv("EPOS_END_DATE"); v != "" {
		cfg.EndDate = v
	}
	if v := os.Getenv("EPOS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("EPOS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envInt64(name string) (int64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// =============================================================================
// VALIDATION
// =============================================================================

// Resolve validates every constraint and parses the derived fields. It
// returns a *ConfigurationError listing all violations, or nil when the
// configuration is sound. It must be called (directly or via Load) before
// the configuration is handed to any generation component.
func (c *Config) Resolve() error {
	var problems []string

	// Counts. NumTransactions may be zero (an empty dataset is valid);
	// the master-data counts must be positive.
	if c.NumTransactions < 0 {
		problems = append(problems, fmt.Sprintf("num_transactions must be >= 0, got %d", c.NumTransactions))
	}
	if c.NumLocations <= 0 {
		problems = append(problems, fmt.Sprintf("num_locations must be positive, got %d", c.NumLocations))
	}
	if c.NumProducts <= 0 {
		problems = append(problems, fmt.Sprintf("num_products must be positive, got %d", c.NumProducts))
	}
	if c.NumEmployees <= 0 {
		problems = append(problems, fmt.Sprintf("num_employees must be positive, got %d", c.NumEmployees))
	}
	if c.NumEmployees > 0 && c.NumLocations > 0 && c.NumEmployees < c.NumLocations {
		problems = append(problems, fmt.Sprintf(
			"num_employees (%d) must be >= num_locations (%d) so every location is staffed",
			c.NumEmployees, c.NumLocations))
	}

	// Date range.
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		problems = append(problems, fmt.Sprintf("start_date %q is not a valid %s date", c.StartDate, dateLayout))
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		problems = append(problems, fmt.Sprintf("end_date %q is not a valid %s date", c.EndDate, dateLayout))
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		problems = append(problems, fmt.Sprintf("start_date %s is after end_date %s", c.StartDate, c.EndDate))
	}
	c.start, c.end = start, end

	// Business hours.
	if c.BusinessHours.Open < 0 || c.BusinessHours.Open > 23 {
		problems = append(problems, fmt.Sprintf("business_hours.open %d out of range 0-23", c.BusinessHours.Open))
	}
	if c.BusinessHours.Close < 1 || c.BusinessHours.Close > 24 {
		problems = append(problems, fmt.Sprintf("business_hours.close %d out of range 1-24", c.BusinessHours.Close))
	}
	if c.BusinessHours.Open >= c.BusinessHours.Close {
		problems = append(problems, fmt.Sprintf(
			"business_hours.open (%d) must be before business_hours.close (%d)",
			c.BusinessHours.Open, c.BusinessHours.Close))
	}

	// Weight maps: keys must be known, totals must be 1.0 within epsilon.
	problems = append(problems, checkWeightMap("status_weights", c.StatusWeights, statusKeys())...)
	problems = append(problems, checkWeightMap("payment_weights", c.PaymentWeights, paymentKeys())...)

	for locType, table := range c.CategoryAffinity {
		if !isKnownLocationType(locType) {
			problems = append(problems, fmt.Sprintf("category_affinity references unknown location type %q", locType))
			continue
		}
		problems = append(problems,
			checkWeightMap("category_affinity."+locType, table, categoryKeys())...)
	}

	problems = append(problems, checkIntWeightMap("basket_size_weights", c.BasketSizeWeights, 1, 12)...)
	problems = append(problems, checkIntWeightMap("quantity_weights", c.QuantityWeights, 1, 10)...)

	// Location split.
	if c.LocationSplit != nil {
		total := 0
		for locType, n := range c.LocationSplit {
			if !isKnownLocationType(locType) {
				problems = append(problems, fmt.Sprintf("location_split references unknown location type %q", locType))
			}
			if n < 0 {
				problems = append(problems, fmt.Sprintf("location_split.%s must be >= 0, got %d", locType, n))
			}
			total += n
		}
		if total != c.NumLocations {
			problems = append(problems, fmt.Sprintf(
				"location_split totals %d but num_locations is %d", total, c.NumLocations))
		}
	}

	// Pricing.
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		problems = append(problems, fmt.Sprintf("tax_rate %v out of range [0,1)", c.TaxRate))
	}
	if c.Discount.Probability < 0 || c.Discount.Probability > 1 {
		problems = append(problems, fmt.Sprintf("discount.probability %v out of range [0,1]", c.Discount.Probability))
	}
	if c.Discount.MinRate < 0 || c.Discount.MaxRate >= 1 || c.Discount.MinRate > c.Discount.MaxRate {
		problems = append(problems, fmt.Sprintf(
			"discount rates [%v,%v] must satisfy 0 <= min <= max < 1",
			c.Discount.MinRate, c.Discount.MaxRate))
	}

	// Peak windows.
	for _, p := range c.PeakHours {
		if p.From >= p.To {
			problems = append(problems, fmt.Sprintf("peak window %d-%d is empty", p.From, p.To))
		}
		if p.Weight <= 0 {
			problems = append(problems, fmt.Sprintf("peak window %d-%d has non-positive weight %v", p.From, p.To, p.Weight))
		}
	}
	if c.WeekendBoost <= 0 {
		problems = append(problems, fmt.Sprintf("weekend_boost must be positive, got %v", c.WeekendBoost))
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}

// checkWeightMap validates that a weight map is non-empty, uses only known
// keys, has no negative weights, and sums to 1.0 within epsilon.
func checkWeightMap(name string, weights map[string]float64, known map[string]bool) []string {
	var problems []string
	if len(weights) == 0 {
		return []string{fmt.Sprintf("%s must not be empty", name)}
	}
	total := 0.0
	for k, w := range weights {
		if !known[k] {
			problems = append(problems, fmt.Sprintf("%s references unknown key %q", name, k))
		}
		if w < 0 {
			problems = append(problems, fmt.Sprintf("%s.%s has negative weight %v", name, k, w))
		}
		total += w
	}
	if math.Abs(total-1.0) > weightEpsilon {
		problems = append(problems, fmt.Sprintf("%s sums to %v, expected 1.0", name, total))
	}
	return problems
}

// checkIntWeightMap validates an integer-keyed weight map (basket sizes,
// quantities) the same way, with a sanity bound on the keys.
func checkIntWeightMap(name string, weights map[int]float64, minKey, maxKey int) []string {
	var problems []string
	if len(weights) == 0 {
		return []string{fmt.Sprintf("%s must not be empty", name)}
	}
	total := 0.0
	for k, w := range weights {
		if k < minKey || k > maxKey {
			problems = append(problems, fmt.Sprintf("%s key %d out of range %d-%d", name, k, minKey, maxKey))
		}
		if w < 0 {
			problems = append(problems, fmt.Sprintf("%s.%d has negative weight %v", name, k, w))
		}
		total += w
	}
	if math.Abs(total-1.0) > weightEpsilon {
		problems = append(problems, fmt.Sprintf("%s sums to %v, expected 1.0", name, total))
	}
	return problems
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// TypeForLocation returns the location type of the i-th generated location
// (0-based), honoring LocationSplit when set and falling back to a
// round-robin over restaurant/bar/pub otherwise. Deterministic by index.
func (c *Config) TypeForLocation(i int) model.LocationType {
	if c.LocationSplit != nil {
		// Walk types in canonical order, consuming the configured counts.
		for _, t := range model.LocationTypes {
			n := c.LocationSplit[string(t)]
			if i < n {
				return t
			}
			i -= n
		}
	}
	return model.LocationTypes[i%len(model.LocationTypes)]
}

func statusKeys() map[string]bool {
	m := make(map[string]bool, len(model.TransactionStatuses))
	for _, s := range model.TransactionStatuses {
		m[string(s)] = true
	}
	return m
}

func paymentKeys() map[string]bool {
	m := make(map[string]bool, len(model.PaymentMethods))
	for _, p := range model.PaymentMethods {
		m[string(p)] = true
	}
	return m
}

func categoryKeys() map[string]bool {
	m := make(map[string]bool, len(model.Categories))
	for _, c := range model.Categories {
		m[string(c)] = true
	}
	return m
}

func isKnownLocationType(t string) bool {
	for _, lt := range model.LocationTypes {
		if string(lt) == t {
			return true
		}
	}
	return false
}
