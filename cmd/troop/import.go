package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/troopledger/troopledger/internal/cli"
	"github.com/troopledger/troopledger/internal/common"
	"github.com/troopledger/troopledger/internal/engine"
	"github.com/troopledger/troopledger/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import source files and rebuild the unified dataset",
		Long: `Import the troop order export, the transfer feed and/or the summary
report, run the reconciliation pipeline and write a fresh snapshot.

Every import recomputes the full dataset from scratch; the previous snapshot
is replaced wholesale.

Examples:
  # Full rebuild from both sources
  troop import --orders orders.csv --transfers transfers.json

  # Transfer feed unavailable; fall back to the flat summary report
  troop import --orders orders.csv --summary report.csv`,
		RunE: runImport,
	}

	cmd.Flags().String("orders", "", "troop order export (CSV)")
	cmd.Flags().String("transfers", "", "transfer feed (JSON)")
	cmd.Flags().String("summary", "", "flat summary report (CSV, fallback for the feed)")
	cmd.Flags().BoolP("dry-run", "d", false, "run the pipeline without writing the snapshot")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	ordersPath, _ := cmd.Flags().GetString("orders")
	transfersPath, _ := cmd.Flags().GetString("transfers")
	summaryPath, _ := cmd.Flags().GetString("summary")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if ordersPath == "" && transfersPath == "" && summaryPath == "" {
		return common.NewUserError(
			"nothing to import: pass --orders, --transfers and/or --summary",
			common.ErrNoSources)
	}

	troopID := viper.GetString("troop.id")
	if troopID == "" {
		return common.NewUserError(
			"troop id is required (--troop-id or troop.id in config)",
			common.ErrMissingConfig)
	}

	set := importer.NewImportSet(troopID)

	if ordersPath != "" {
		rows, err := readCSVRows(ordersPath)
		if err != nil {
			// Structural failures are non-fatal; the pipeline proceeds with
			// whatever other sources loaded.
			slog.Error("Failed to read order export", "file", ordersPath, "error", err)
			set.Issues = append(set.Issues, fmt.Sprintf("order export: %v", err))
		} else {
			importWithProgress(set, "orders", len(rows), func() {
				importer.ImportDigitalCookieOrders(set, rows)
			})
		}
	}

	if transfersPath != "" {
		records, err := readTransferFeed(transfersPath)
		if err != nil {
			slog.Error("Failed to read transfer feed", "file", transfersPath, "error", err)
			set.Issues = append(set.Issues, fmt.Sprintf("transfer feed: %v", err))
		} else {
			importWithProgress(set, "transfers", len(records), func() {
				importer.ImportSmartCookieTransfers(set, records)
			})
		}
	}

	if summaryPath != "" {
		rows, err := readCSVRows(summaryPath)
		if err != nil {
			slog.Error("Failed to read summary report", "file", summaryPath, "error", err)
			set.Issues = append(set.Issues, fmt.Sprintf("summary report: %v", err))
		} else {
			importWithProgress(set, "summary", len(rows), func() {
				importer.ImportSummaryReport(set, rows)
			})
		}
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	payments, err := store.GetPayments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load payments: %w", err)
	}

	runner := engine.NewRunner()
	dataset, err := runner.Run(ctx, set, payments)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if dryRun {
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("Dry run complete: no snapshot written."))
		cli.RenderDataset(os.Stdout, dataset)
		return nil
	}

	if !runner.Commit(dataset) {
		// A newer run already published; this result must not overwrite it.
		return nil
	}

	snapshots, err := openSnapshotStore()
	if err != nil {
		return err
	}
	if err := snapshots.WriteSnapshot(dataset); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	for source, at := range set.Imported {
		if err := store.SetImportTime(ctx, string(source), at); err != nil {
			slog.Warn("Failed to record import time", "source", source, "error", err)
		}
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf(
		"Imported %d order(s) and %d transfer(s); snapshot updated.",
		len(set.Orders), len(set.Transfers))))
	if dataset.Blocked {
		fmt.Fprintln(os.Stdout, cli.FormatError(
			"Dataset is blocked: unknown order types present. Run `troop report` for details."))
	} else if len(dataset.Warnings) > 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning(fmt.Sprintf(
			"%d warning(s) recorded.", len(dataset.Warnings))))
	}
	return nil
}

// importWithProgress wraps one importer call with a progress bar, advancing
// it once per record through the set's progress hook.
func importWithProgress(set *importer.ImportSet, label string, total int, fn func()) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(fmt.Sprintf("importing %s", label)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	set.Progress = func() { _ = bar.Add(1) }
	fn()
	set.Progress = nil
	_ = bar.Finish()
}

func readTransferFeed(path string) ([]importer.TransferRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	var records []importer.TransferRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, common.ErrFormatNotRecognized, err)
	}
	return records, nil
}
