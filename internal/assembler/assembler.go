// =============================================================================
// EPOS Data Generator - Transaction Assembler
// =============================================================================
//
// This module combines a sampled timestamp, a location/employee assignment,
// a composed basket and a status/payment outcome into consistent Transaction
// records. Each transaction moves through a fixed state machine:
//
//   DRAFTED   -> timestamp, location, employee and basket are bound
//   PRICED    -> subtotal, discount, tax and total are computed
//   FINALIZED -> a status is drawn and its policy applied
//
// STATUS POLICY:
//   completed -> totals stand as computed
//   refunded  -> total_amount is negated (the prior sale reversed)
//   voided    -> amounts stand but the record is tagged void
//   error     -> basket and pricing are dropped to simulate a failed capture
//
// CONCURRENCY:
//   Generation is parallelized per location. Every location worker owns a
//   private random stream derived from the master seed and its location
//   index, and allocates location-prefixed transaction ids, so ids are
//   globally unique and the assembled output is byte-identical for a given
//   seed regardless of goroutine scheduling. Master data is shared read-only.
//
// FAILURE SEMANTICS:
//   Impossible sampling conditions (empty catalog, unstaffed location,
//   malformed distribution) surface once as a fatal error from New, before
//   any record is produced. Run never publishes partial output: the first
//   worker error aborts the batch.
//
// =============================================================================

package assembler

import (
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/eposforge/epos-datagen/internal/basket"
	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/dist"
	"github.com/eposforge/epos-datagen/internal/model"
	"github.com/eposforge/epos-datagen/internal/temporal"
)

// Assembler generates the full transaction set for one configuration.
type Assembler struct {
	cfg      *config.Config
	master   *model.MasterData
	sampler  *temporal.Sampler
	composer *basket.Composer

	statusDist  *dist.Discrete[string]
	paymentDist *dist.Discrete[string]

	staff map[string][]model.Employee
	log   *zap.Logger
}

// New wires an assembler and eagerly verifies every condition transaction
// assembly will rely on, so that assembly of a single transaction can never
// fail past its own boundary.
func New(cfg *config.Config, master *model.MasterData) (*Assembler, error) {
	sampler, err := temporal.NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	composer, err := basket.NewComposer(cfg, master.Products)
	if err != nil {
		return nil, err
	}
	statusDist, err := dist.FromMap(cfg.StatusWeights)
	if err != nil {
		return nil, fmt.Errorf("status weights: %w", err)
	}
	paymentDist, err := dist.FromMap(cfg.PaymentWeights)
	if err != nil {
		return nil, fmt.Errorf("payment weights: %w", err)
	}

	staff := master.EmployeesByLocation()
	for _, loc := range master.Locations {
		if len(staff[loc.ID]) == 0 {
			return nil, &model.ConsistencyError{
				Stage:  "assembler",
				Reason: fmt.Sprintf("location %s has no employees", loc.ID),
			}
		}
	}

	return &Assembler{
		cfg:         cfg,
		master:      master,
		sampler:     sampler,
		composer:    composer,
		statusDist:  statusDist,
		paymentDist: paymentDist,
		staff:       staff,
		log:         zap.L().Named("assembler"),
	}, nil
}

// =============================================================================
// BATCH RUN
// =============================================================================

// workerResult carries one location's assembled transactions back to Run.
type workerResult struct {
	index int
	txs   []model.Transaction
	err   error
}

// Run assembles the configured number of transactions and returns the
// complete dataset. Transactions are ordered by location, then by sequence
// within the location.
func (a *Assembler) Run() (*model.Dataset, error) {
	counts := a.splitTransactions()

	results := make(chan workerResult, len(a.master.Locations))
	var wg sync.WaitGroup

	for i := range a.master.Locations {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			// Stream seed is a pure function of the master seed and the
			// location index, never of scheduling.
			rng := rand.New(rand.NewSource(a.cfg.Seed + int64(idx) + 1))
			txs, err := a.assembleLocation(rng, a.master.Locations[idx], counts[idx])
			results <- workerResult{index: idx, txs: txs, err: err}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	perLocation := make([][]model.Transaction, len(a.master.Locations))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		perLocation[res.index] = res.txs
	}
	if firstErr != nil {
		return nil, firstErr
	}

	all := make([]model.Transaction, 0, a.cfg.NumTransactions)
	for _, txs := range perLocation {
		all = append(all, txs...)
	}

	a.log.Info("assembly complete",
		zap.Int("transactions", len(all)),
		zap.Int("locations", len(a.master.Locations)))

	return &model.Dataset{Master: *a.master, Transactions: all}, nil
}

// splitTransactions partitions num_transactions across locations: an even
// base share plus one extra for the first remainder locations.
func (a *Assembler) splitTransactions() []int {
	n := len(a.master.Locations)
	counts := make([]int, n)
	base := a.cfg.NumTransactions / n
	rem := a.cfg.NumTransactions % n
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

// assembleLocation runs one location's transaction stream to completion.
func (a *Assembler) assembleLocation(rng *rand.Rand, loc model.Location, count int) ([]model.Transaction, error) {
	staff := a.staff[loc.ID]
	txs := make([]model.Transaction, 0, count)
	for seq := 1; seq <= count; seq++ {
		tx := a.assembleOne(rng, loc, staff, seq)
		txs = append(txs, tx)
	}
	return txs, nil
}

// =============================================================================
// SINGLE TRANSACTION STATE MACHINE
// =============================================================================

// assembleOne drives one transaction through DRAFTED -> PRICED -> FINALIZED.
func (a *Assembler) assembleOne(rng *rand.Rand, loc model.Location, staff []model.Employee, seq int) model.Transaction {
	// DRAFTED: bind timestamp, employee and basket.
	id := fmt.Sprintf("TXN-%s-%07d", loc.ID, seq)
	tx := model.Transaction{
		ID:         id,
		LocationID: loc.ID,
		EmployeeID: staff[rng.Intn(len(staff))].ID,
		Timestamp:  a.sampler.Sample(rng),
	}

	lines := a.composer.Compose(rng, loc.Type)
	tx.Items = make([]model.TransactionItem, len(lines))
	for i, line := range lines {
		tx.Items[i] = model.TransactionItem{
			TransactionID: id,
			LineNumber:    i + 1,
			ProductID:     line.Product.ID,
			Quantity:      line.Quantity,
			UnitPrice:     line.Product.UnitPrice,
			LineTotal:     model.RoundMoney(float64(line.Quantity) * line.Product.UnitPrice),
		}
	}

	// PRICED: subtotal, discount, tax, total.
	subtotal := 0.0
	for _, item := range tx.Items {
		subtotal += item.LineTotal
	}
	tx.Subtotal = model.RoundMoney(subtotal)

	if rng.Float64() < a.cfg.Discount.Probability {
		rate := a.cfg.Discount.MinRate +
			rng.Float64()*(a.cfg.Discount.MaxRate-a.cfg.Discount.MinRate)
		tx.Discount = model.RoundMoney(tx.Subtotal * rate)
	}
	tx.Tax = model.RoundMoney((tx.Subtotal - tx.Discount) * a.cfg.TaxRate)
	tx.TotalAmount = model.RoundMoney(tx.Subtotal - tx.Discount + tx.Tax)

	// FINALIZED: draw status and apply its policy.
	tx.Status = model.TransactionStatus(a.statusDist.Sample(rng))
	switch tx.Status {
	case model.StatusRefunded:
		// A prior completed sale now reversed: negative adjustment.
		tx.TotalAmount = -tx.TotalAmount
	case model.StatusError:
		// Failed capture: degraded record with no basket and no amounts.
		tx.Items = nil
		tx.Subtotal, tx.Discount, tx.Tax, tx.TotalAmount = 0, 0, 0, 0
	}

	if tx.Status != model.StatusError {
		tx.PaymentMethod = model.PaymentMethod(a.paymentDist.Sample(rng))
	}
	return tx
}
