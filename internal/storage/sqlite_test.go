package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/troopledger/troopledger/internal/common"
	"github.com/troopledger/troopledger/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorageCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "troop.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); err == nil {
		t.Fatal("Expected error for empty path")
	}
}

func TestSavePayment(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	payment := &model.PaymentEntry{
		Participant: "Alice",
		Date:        time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		Amount:      35.50,
		Method:      "cash",
		Reference:   "envelope #3",
	}

	if err := store.SavePayment(ctx, payment); err != nil {
		t.Fatalf("Failed to save payment: %v", err)
	}
	if payment.ID == 0 {
		t.Error("Expected assigned payment ID")
	}

	payments, err := store.GetPayments(ctx)
	if err != nil {
		t.Fatalf("Failed to get payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("Expected 1 payment, got %d", len(payments))
	}
	got := payments[0]
	if got.Participant != "Alice" || got.Amount != 35.50 || got.Method != "cash" {
		t.Errorf("Payment round trip mismatch: %+v", got)
	}
	if got.Reference != "envelope #3" {
		t.Errorf("Expected reference to survive, got %q", got.Reference)
	}
	if !got.Date.Equal(payment.Date) {
		t.Errorf("Expected date %v, got %v", payment.Date, got.Date)
	}
}

func TestSavePaymentValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		payment *model.PaymentEntry
		name    string
	}{
		{nil, "nil payment"},
		{&model.PaymentEntry{Amount: 10}, "missing participant"},
		{&model.PaymentEntry{Participant: "Alice"}, "zero amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SavePayment(ctx, tt.payment); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestGetPaymentsByParticipant(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Alice", "Bea", "Alice"} {
		payment := &model.PaymentEntry{
			Participant: name,
			Date:        base.AddDate(0, 0, i),
			Amount:      float64(10 * (i + 1)),
			Method:      "cash",
		}
		if err := store.SavePayment(ctx, payment); err != nil {
			t.Fatalf("Failed to save payment %d: %v", i, err)
		}
	}

	payments, err := store.GetPaymentsByParticipant(ctx, "Alice")
	if err != nil {
		t.Fatalf("Failed to get payments: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("Expected 2 payments for Alice, got %d", len(payments))
	}
	if !payments[0].Date.Before(payments[1].Date) {
		t.Error("Expected payments ordered by date")
	}
}

func TestDeletePayment(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	payment := &model.PaymentEntry{
		Participant: "Alice",
		Date:        time.Now(),
		Amount:      10,
		Method:      "cash",
	}
	if err := store.SavePayment(ctx, payment); err != nil {
		t.Fatalf("Failed to save payment: %v", err)
	}

	if err := store.DeletePayment(ctx, payment.ID); err != nil {
		t.Fatalf("Failed to delete payment: %v", err)
	}

	err := store.DeletePayment(ctx, payment.ID)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing payment, got %v", err)
	}
}

func TestImportTimes(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	second := time.Date(2026, 1, 11, 9, 30, 0, 0, time.UTC)

	if err := store.SetImportTime(ctx, "digital-cookie-orders", first); err != nil {
		t.Fatalf("Failed to set import time: %v", err)
	}
	// Upsert path.
	if err := store.SetImportTime(ctx, "digital-cookie-orders", second); err != nil {
		t.Fatalf("Failed to update import time: %v", err)
	}
	if err := store.SetImportTime(ctx, "smart-cookies-api", first); err != nil {
		t.Fatalf("Failed to set import time: %v", err)
	}

	times, err := store.GetImportTimes(ctx)
	if err != nil {
		t.Fatalf("Failed to get import times: %v", err)
	}
	if len(times) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(times))
	}
	if !times["digital-cookie-orders"].Equal(second) {
		t.Errorf("Expected updated time %v, got %v", second, times["digital-cookie-orders"])
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Already migrated by the helper; a second run must be a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}

	var version int
	err := store.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Expected schema version %d, got %d", ExpectedSchemaVersion, version)
	}
}
