package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/troopledger/troopledger/internal/common"
	"github.com/troopledger/troopledger/internal/model"
	"github.com/troopledger/troopledger/internal/service"
)

// Compile-time check that FileSnapshotStore implements service.SnapshotStore.
var _ service.SnapshotStore = (*FileSnapshotStore)(nil)

// FileSnapshotStore persists the unified dataset as a JSON file. The file is
// the one resource shared between a writer and concurrent readers, so every
// write goes to a temp file in the same directory and is renamed into place;
// a reader never observes a half-written dataset.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore creates a snapshot store at the given path.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSnapshotStore{path: path}, nil
}

// WriteSnapshot atomically replaces the snapshot file.
func (f *FileSnapshotStore) WriteSnapshot(dataset *model.UnifiedDataset) error {
	if dataset == nil {
		return fmt.Errorf("dataset is required")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataset); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the current snapshot. Returns common.ErrNotFound when
// no snapshot has ever been written ("no data yet").
func (f *FileSnapshotStore) LoadSnapshot() (*model.UnifiedDataset, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot %s: %w", f.path, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var dataset model.UnifiedDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &dataset, nil
}
