// =============================================================================
// EPOS Data Generator - Domain Model
// =============================================================================
//
// This module defines the entities that make up a generated EPOS dataset:
//
//   Organization (1) --< Location --< Employee
//                            |
//   Product                  |
//      ^                     v
//      +---- TransactionItem >-- Transaction
//
// All entities are created once per generation run and are immutable after
// assembly completes. The only nested structure is Transaction -> items; the
// export layer flattens it into two linked tables joined by transaction_id.
//
// =============================================================================

package model

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

// LocationType classifies a venue.
type LocationType string

const (
	LocationRestaurant LocationType = "restaurant"
	LocationBar        LocationType = "bar"
	LocationPub        LocationType = "pub"
)

// LocationTypes lists all valid location types in canonical order.
var LocationTypes = []LocationType{LocationRestaurant, LocationBar, LocationPub}

// TransactionStatus is the terminal outcome of an assembled transaction.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusRefunded  TransactionStatus = "refunded"
	StatusVoided    TransactionStatus = "voided"
	StatusError     TransactionStatus = "error"
)

// TransactionStatuses lists all valid statuses in canonical order.
var TransactionStatuses = []TransactionStatus{
	StatusCompleted,
	StatusRefunded,
	StatusVoided,
	StatusError,
}

// PaymentMethod is how a non-error transaction was settled.
type PaymentMethod string

const (
	PayCreditCard PaymentMethod = "credit_card"
	PayDebitCard  PaymentMethod = "debit_card"
	PayCash       PaymentMethod = "cash"
	PayMobile     PaymentMethod = "mobile_payment"
	PayGiftCard   PaymentMethod = "gift_card"
)

// PaymentMethods lists all valid payment methods in canonical order.
var PaymentMethods = []PaymentMethod{
	PayCreditCard,
	PayDebitCard,
	PayCash,
	PayMobile,
	PayGiftCard,
}

// Category is a product category. The ten categories are fixed; they are the
// vocabulary the location-type affinity tables are defined over.
type Category string

const (
	CategoryBeer         Category = "Beer"
	CategoryWine         Category = "Wine"
	CategorySpirits      Category = "Spirits"
	CategoryCocktails    Category = "Cocktails"
	CategorySoftDrinks   Category = "Soft Drinks"
	CategoryAppetizers   Category = "Appetizers"
	CategoryMainCourse   Category = "Main Course"
	CategoryDesserts     Category = "Desserts"
	CategorySides        Category = "Sides"
	CategoryHotBeverages Category = "Hot Beverages"
)

// Categories lists the fixed ten product categories in canonical order.
// Product generation distributes the catalog roughly evenly across these.
var Categories = []Category{
	CategoryBeer,
	CategoryWine,
	CategorySpirits,
	CategoryCocktails,
	CategorySoftDrinks,
	CategoryAppetizers,
	CategoryMainCourse,
	CategoryDesserts,
	CategorySides,
	CategoryHotBeverages,
}

// =============================================================================
// MASTER DATA ENTITIES
// =============================================================================

// Organization is the single root record owning all locations.
type Organization struct {
	ID   string
	Name string
}

// Location is a physical venue. Referenced by employees and transactions.
type Location struct {
	ID             string
	OrganizationID string
	Name           string
	Type           LocationType
	City           string
}

// Employee is a staff member assigned to exactly one location.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Role       string
	LocationID string
	HireDate   time.Time
}

// Name returns the employee's display name.
func (e Employee) Name() string {
	return e.FirstName + " " + e.LastName
}

// Product is a catalog entry. Independent of location; referenced by
// transaction items.
type Product struct {
	ID        string
	Name      string
	Category  Category
	UnitPrice float64
	CostPrice float64
}

// =============================================================================
// TRANSACTIONAL ENTITIES
// =============================================================================

// TransactionItem is a single basket line of its owning transaction.
// LineTotal = Quantity * UnitPrice, rounded to 2 decimal places.
type TransactionItem struct {
	TransactionID string
	LineNumber    int
	ProductID     string
	Quantity      int
	UnitPrice     float64
	LineTotal     float64
}

// Transaction is one finalized sale (or refund/void/error record).
//
// Monetary convention: Subtotal, Discount and Tax are always non-negative.
// TotalAmount = Subtotal - Discount + Tax for completed and voided
// transactions; refunded transactions carry the NEGATED total to represent
// the reversal. Error transactions carry zero amounts, no items and no
// payment method.
type Transaction struct {
	ID            string
	LocationID    string
	EmployeeID    string
	Timestamp     time.Time
	Status        TransactionStatus
	PaymentMethod PaymentMethod
	Subtotal      float64
	Tax           float64
	Discount      float64
	TotalAmount   float64
	Items         []TransactionItem
}

// =============================================================================
// DATASET CONTAINER
// =============================================================================

// MasterData holds the immutable reference tables produced before any
// transaction sampling begins. All generation workers read it concurrently;
// it is never mutated after creation, so no locking is needed.
type MasterData struct {
	Organization Organization
	Locations    []Location
	Employees    []Employee
	Products     []Product
}

// EmployeesByLocation groups employee indexes by location id.
func (m *MasterData) EmployeesByLocation() map[string][]Employee {
	byLoc := make(map[string][]Employee, len(m.Locations))
	for _, e := range m.Employees {
		byLoc[e.LocationID] = append(byLoc[e.LocationID], e)
	}
	return byLoc
}

// Dataset is the complete output of one generation run: master data plus all
// assembled transactions (items nested under their transaction).
type Dataset struct {
	Master       MasterData
	Transactions []Transaction
}

// ItemCount returns the total number of transaction line items.
func (d *Dataset) ItemCount() int {
	n := 0
	for i := range d.Transactions {
		n += len(d.Transactions[i].Items)
	}
	return n
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

// MoneyTolerance is the fixed epsilon used when comparing computed monetary
// sums for equality, absorbing per-line rounding.
const MoneyTolerance = 0.01

// RoundMoney rounds a monetary value to 2 decimal places, half away from
// zero. This is the single rounding rule applied everywhere amounts are
// computed.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// MoneyEqual reports whether two monetary values are equal within
// MoneyTolerance (plus a small float guard).
func MoneyEqual(a, b float64) bool {
	return math.Abs(a-b) <= MoneyTolerance+1e-9
}

// =============================================================================
// CONSISTENCY ERROR
// =============================================================================

// ConsistencyError is a fatal batch-level condition: an internal invariant
// cannot be satisfied given the resolved configuration (for example an
// affinity table referencing an undefined category, or an empty product
// catalog). It is surfaced once, before the batch runs; no partial output
// is ever published after one.
type ConsistencyError struct {
	Stage  string
	Reason string
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency error in %s: %s", e.Stage, e.Reason)
}
