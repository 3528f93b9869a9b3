package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/troopledger/troopledger/internal/common"
	"github.com/troopledger/troopledger/internal/model"
)

func testDataset() *model.UnifiedDataset {
	return &model.UnifiedDataset{
		Participants: map[string]*model.Participant{
			"Alice": {
				Name:         "Alice",
				PickedUp:     model.Varieties{model.ThinMints: 12},
				NetInventory: model.Varieties{model.ThinMints: 7},
				OnHand:       model.Varieties{model.ThinMints: 7},
				Finance:      model.Financials{PickupValue: 60, CashOwed: 60, CashDue: 60},
			},
		},
		VarietyTotals: model.Varieties{model.ThinMints: 5},
		Warnings: []model.Warning{
			{Type: model.WarningReconciliation, Message: "donation totals disagree"},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store, err := NewFileSnapshotStore(path)
	if err != nil {
		t.Fatalf("Failed to create snapshot store: %v", err)
	}

	if err := store.WriteSnapshot(testDataset()); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	alice, ok := loaded.Participants["Alice"]
	if !ok {
		t.Fatal("Expected Alice in loaded snapshot")
	}
	if alice.NetInventory[model.ThinMints] != 7 {
		t.Errorf("Expected net inventory 7, got %d", alice.NetInventory[model.ThinMints])
	}
	if alice.Finance.CashDue != 60 {
		t.Errorf("Expected cash due 60, got %v", alice.Finance.CashDue)
	}
	if len(loaded.Warnings) != 1 || loaded.Warnings[0].Type != model.WarningReconciliation {
		t.Errorf("Expected warnings to survive the round trip: %+v", loaded.Warnings)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	store, err := NewFileSnapshotStore(filepath.Join(t.TempDir(), "never-written.json"))
	if err != nil {
		t.Fatalf("Failed to create snapshot store: %v", err)
	}

	_, err = store.LoadSnapshot()
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWriteSnapshotReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	store, err := NewFileSnapshotStore(path)
	if err != nil {
		t.Fatalf("Failed to create snapshot store: %v", err)
	}

	if err := store.WriteSnapshot(testDataset()); err != nil {
		t.Fatalf("Failed to write first snapshot: %v", err)
	}

	updated := testDataset()
	updated.Participants["Alice"].Finance.CashDue = -5
	if err := store.WriteSnapshot(updated); err != nil {
		t.Fatalf("Failed to overwrite snapshot: %v", err)
	}

	loaded, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded.Participants["Alice"].Finance.CashDue != -5 {
		t.Error("Expected the second write to fully replace the first")
	}

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read snapshot dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".snapshot-") {
			t.Errorf("Leftover temp file: %s", entry.Name())
		}
	}
}

func TestWriteSnapshotRejectsNil(t *testing.T) {
	store, err := NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	if err != nil {
		t.Fatalf("Failed to create snapshot store: %v", err)
	}
	if err := store.WriteSnapshot(nil); err == nil {
		t.Error("Expected error for nil dataset")
	}
}
