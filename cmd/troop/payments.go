package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/troopledger/troopledger/internal/cli"
	"github.com/troopledger/troopledger/internal/model"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Manage manual payment entries",
		Long: `Record, list and delete the cash and check payments sellers turn in.
These entries feed the cash-due calculation on the next import.`,
	}

	cmd.AddCommand(paymentsAddCmd())
	cmd.AddCommand(paymentsListCmd())
	cmd.AddCommand(paymentsDeleteCmd())
	return cmd
}

func paymentsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment a seller turned in",
		RunE:  runPaymentsAdd,
	}

	cmd.Flags().String("participant", "", "seller the payment came from (required)")
	cmd.Flags().Float64("amount", 0, "payment amount in dollars (required)")
	cmd.Flags().String("method", "cash", "payment method (cash, check)")
	cmd.Flags().String("date", "", "payment date (YYYY-MM-DD, default today)")
	cmd.Flags().String("reference", "", "free-text reference (check number, note)")
	_ = cmd.MarkFlagRequired("participant")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPaymentsAdd(cmd *cobra.Command, _ []string) error {
	participant, _ := cmd.Flags().GetString("participant")
	amount, _ := cmd.Flags().GetFloat64("amount")
	method, _ := cmd.Flags().GetString("method")
	dateStr, _ := cmd.Flags().GetString("date")
	reference, _ := cmd.Flags().GetString("reference")

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		date = parsed
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

	payment := &model.PaymentEntry{
		Participant: participant,
		Date:        date,
		Amount:      amount,
		Method:      method,
		Reference:   reference,
	}
	if err := store.SavePayment(ctx, payment); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf(
		"Recorded payment #%d: %s: $%.2f (%s). Re-run `troop import` to update cash due.",
		payment.ID, participant, amount, method)))
	return nil
}

func paymentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded payments",
		RunE:  runPaymentsList,
	}
	cmd.Flags().String("participant", "", "only show one seller's payments")
	return cmd
}

func runPaymentsList(cmd *cobra.Command, _ []string) error {
	participant, _ := cmd.Flags().GetString("participant")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var payments []model.PaymentEntry
	if participant != "" {
		payments, err = store.GetPaymentsByParticipant(ctx, participant)
	} else {
		payments, err = store.GetPayments(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load payments: %w", err)
	}

	if len(payments) == 0 {
		fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("No payments recorded."))
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s %-24s %-12s %9s %-7s %s\n",
		"ID", "Participant", "Date", "Amount", "Method", "Reference")
	total := 0.0
	for _, payment := range payments {
		fmt.Fprintf(os.Stdout, "%-5d %-24s %-12s %9.2f %-7s %s\n",
			payment.ID, payment.Participant, payment.Date.Format("2006-01-02"),
			payment.Amount, payment.Method, payment.Reference)
		total += payment.Amount
	}
	fmt.Fprintf(os.Stdout, "%d payment(s), $%.2f total\n", len(payments), total)
	return nil
}

func paymentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payment entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runPaymentsDelete,
	}
}

func runPaymentsDelete(cmd *cobra.Command, args []string) error {
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid payment id %q", args[0])
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

	if err := store.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("Deleted payment #%d.", id)))
	return nil
}
