// Package engine implements the reconciliation pipeline that turns imported
// records into a unified per-participant dataset.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/troopledger/troopledger/internal/importer"
	"github.com/troopledger/troopledger/internal/model"
)

// Runner executes pipeline runs and orders their results. A run is a pure,
// synchronous batch over its own state; the only cross-run coordination is
// the monotonically increasing run identifier used to discard results from
// superseded runs (last write wins, no partial merge).
type Runner struct {
	seq       atomic.Uint64
	committed atomic.Uint64
}

// NewRunner creates a runner.
func NewRunner() *Runner {
	return &Runner{}
}

// build is the intermediate state of one run. Each run owns its own build,
// so no locking of shared state is needed.
type build struct {
	set          *importer.ImportSet
	payments     []model.PaymentEntry
	participants map[string]*model.Participant
	order        []string
	warnings     []model.Warning
	troop        model.TroopSummary
}

// Run recomputes the full dataset from scratch. It holds no state between
// invocations and never mutates the import set.
func (r *Runner) Run(ctx context.Context, set *importer.ImportSet, payments []model.PaymentEntry) (*model.UnifiedDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("import set is required")
	}

	runID := r.seq.Add(1)
	slog.Info("Starting reconciliation run",
		"run_id", runID,
		"orders", len(set.Orders),
		"transfers", len(set.Transfers))

	b := &build{
		set:          set,
		payments:     payments,
		participants: make(map[string]*model.Participant),
	}
	// Warnings recorded at import time carry into the run's dataset.
	b.warnings = append(b.warnings, set.Warnings...)
	for _, issue := range set.Issues {
		b.warn(model.WarningImportIssue, issue, nil)
	}

	b.collectOrders()
	b.allocate()
	b.netInventory()
	b.computeFinancials()
	donations := b.reconcileDonations()

	dataset := b.assemble(donations)
	dataset.SetRunID(runID)

	slog.Info("Reconciliation run complete",
		"run_id", runID,
		"participants", len(dataset.Participants),
		"warnings", len(dataset.Warnings),
		"blocked", dataset.Blocked)

	return dataset, nil
}

// Commit records a completed run as the current one. It returns false when a
// newer run already committed, in which case the caller must discard this
// dataset instead of overwriting the newer result.
func (r *Runner) Commit(dataset *model.UnifiedDataset) bool {
	id := dataset.RunID()
	for {
		current := r.committed.Load()
		if id <= current {
			slog.Warn("Discarding stale reconciliation run",
				"run_id", id,
				"committed_run_id", current)
			return false
		}
		if r.committed.CompareAndSwap(current, id) {
			return true
		}
	}
}

// participant returns the named participant, creating it on first sight.
// Creation order is remembered so derived slices stay deterministic.
func (b *build) participant(name string) *model.Participant {
	if p, ok := b.participants[name]; ok {
		return p
	}
	p := &model.Participant{
		Name:         name,
		PickedUp:     make(model.Varieties),
		NetInventory: make(model.Varieties),
		OnHand:       make(model.Varieties),
	}
	b.participants[name] = p
	b.order = append(b.order, name)
	return p
}

func (b *build) warn(wtype model.WarningType, message string, context map[string]string) {
	b.warnings = append(b.warnings, model.Warning{
		Type:    wtype,
		Message: message,
		Context: context,
	})
}

// collectOrders attaches each order to its owning participant. Site-level
// orders stay at the troop; the allocator credits them to sellers via the
// virtual-booth channel.
func (b *build) collectOrders() {
	for _, order := range b.set.Orders {
		if order.SiteOrder {
			continue
		}
		p := b.participant(order.Seller)
		p.Orders = append(p.Orders, order)
	}
}
