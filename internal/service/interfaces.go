// Package service defines the interfaces between the command layer and the
// persistence layer.
package service

import (
	"context"
	"time"

	"github.com/troopledger/troopledger/internal/model"
)

// Storage is the contract for the local ledger database: manual payment
// entries and per-source import metadata. The reconciliation engine itself
// holds no persistent state; everything else is recomputed per run.
type Storage interface {
	// Payment operations
	SavePayment(ctx context.Context, payment *model.PaymentEntry) error
	GetPayments(ctx context.Context) ([]model.PaymentEntry, error)
	GetPaymentsByParticipant(ctx context.Context, participant string) ([]model.PaymentEntry, error)
	DeletePayment(ctx context.Context, id int64) error

	// Import metadata
	SetImportTime(ctx context.Context, source string, at time.Time) error
	GetImportTimes(ctx context.Context) (map[string]time.Time, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// SnapshotStore persists and retrieves the unified dataset snapshot. Writes
// must be atomic: a reader never observes a half-written dataset.
type SnapshotStore interface {
	WriteSnapshot(dataset *model.UnifiedDataset) error
	LoadSnapshot() (*model.UnifiedDataset, error)
}
