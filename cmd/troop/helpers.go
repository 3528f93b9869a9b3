package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/troopledger/troopledger/internal/common"
	"github.com/troopledger/troopledger/internal/service"
	"github.com/troopledger/troopledger/internal/storage"
)

// expandPath resolves ~ and $VAR in the configured database and snapshot
// paths, which default to locations under the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// openStorage opens the ledger database configured in viper. Callers work
// against the service interface; the SQLite implementation stays behind it.
func openStorage() (service.Storage, error) {
	dbPath := expandPath(viper.GetString("storage.database"))
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// openSnapshotStore opens the configured snapshot location.
func openSnapshotStore() (service.SnapshotStore, error) {
	path := expandPath(viper.GetString("storage.snapshot"))
	return storage.NewFileSnapshotStore(path)
}

// readCSVRows reads a CSV file into header-keyed row maps. File parsing is
// boundary mechanics; the importers only ever see the row maps.
func readCSVRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, common.ErrFormatNotRecognized, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
