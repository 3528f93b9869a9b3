package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/troopledger/troopledger/internal/cli"
	"github.com/troopledger/troopledger/internal/common"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render the current unified dataset",
		Long: `Render the season report from the last written snapshot: per-seller
sales, inventory and cash position, troop inventory, donation reconciliation
and any recorded warnings.

A snapshot blocked by unknown order types shows only the warning list.`,
		RunE: runReport,
	}
}

func runReport(_ *cobra.Command, _ []string) error {
	snapshots, err := openSnapshotStore()
	if err != nil {
		return err
	}

	dataset, err := snapshots.LoadSnapshot()
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("No data imported yet. Run `troop import` first."))
			return nil
		}
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	cli.RenderDataset(os.Stdout, dataset)
	return nil
}
