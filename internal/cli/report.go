package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/troopledger/troopledger/internal/model"
)

// RenderDataset writes the full season report for a dataset. Three states
// are distinguished: no data yet, loaded (possibly with a warning banner),
// and blocked. A blocked dataset renders only the raw warning list; every
// computed table is withheld because unknown order types make the totals
// unsafe.
func RenderDataset(w io.Writer, dataset *model.UnifiedDataset) {
	if dataset == nil || dataset.Empty() {
		fmt.Fprintln(w, SubtleStyle.Render("No data imported yet. Run `troop import` first."))
		return
	}

	fmt.Fprintln(w, FormatTitle("Cookie Season Report"))

	if dataset.Blocked {
		fmt.Fprintln(w, FormatError(fmt.Sprintf(
			"Reports are blocked: %d order(s) have an unrecognized type and cannot be counted.",
			dataset.Metadata.HealthChecks.UnknownOrderTypes)))
		renderWarnings(w, dataset.Warnings)
		return
	}

	if len(dataset.Warnings) > 0 {
		banner := fmt.Sprintf("%d warning(s) recorded: totals may need review", len(dataset.Warnings))
		fmt.Fprintln(w, BannerStyle.Render(FormatWarning(banner)))
	}

	renderParticipants(w, dataset)
	renderTroop(w, dataset)
	renderDonations(w, dataset.Donations)
	renderWarnings(w, dataset.Warnings)
}

func renderParticipants(w io.Writer, dataset *model.UnifiedDataset) {
	fmt.Fprintln(w, TableHeaderStyle.Render("Participants"))
	fmt.Fprintf(w, "%-24s %6s %8s %6s %8s %10s %10s\n",
		"Name", "Sold", "Shipped", "Don.", "Credited", "Cash Owed", "Cash Due")

	names := make([]string, 0, len(dataset.Participants))
	for name := range dataset.Participants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := dataset.Participants[name]
		due := fmt.Sprintf("%10.2f", p.Finance.CashDue)
		if p.Finance.CashDue < 0 {
			// Over-payment is reported as-is, just highlighted.
			due = SuccessStyle.Render(due)
		}
		fmt.Fprintf(w, "%-24s %6d %8d %6d %8d %10.2f %s\n",
			name, p.Totals.Sold, p.Totals.Shipped, p.Totals.Donations,
			p.Totals.Credited, p.Finance.CashOwed, due)

		if len(p.Oversold) > 0 {
			varieties := make([]string, len(p.Oversold))
			for i, v := range p.Oversold {
				varieties[i] = fmt.Sprintf("%s (%d)", v, p.NetInventory[v])
			}
			fmt.Fprintln(w, "  "+FormatWarning("oversold: "+strings.Join(varieties, ", ")))
		}
	}
	fmt.Fprintln(w)
}

func renderTroop(w io.Writer, dataset *model.UnifiedDataset) {
	fmt.Fprintln(w, TableHeaderStyle.Render("Troop Inventory"))
	fmt.Fprintf(w, "%-16s %9s %6s %10s %8s %8s\n",
		"Variety", "Received", "Sent", "Allocated", "On Hand", "Net")

	for _, variety := range model.AllVarieties {
		net := dataset.Troop.NetInventory[variety]
		netCell := fmt.Sprintf("%8d", net)
		if net < 0 {
			netCell = ErrorStyle.Render(netCell)
		}
		fmt.Fprintf(w, "%-16s %9d %6d %10d %8d %s\n",
			variety,
			dataset.Troop.Received[variety],
			dataset.Troop.Sent[variety],
			dataset.Troop.Allocated[variety],
			dataset.Troop.OnHand[variety],
			netCell)
	}
	fmt.Fprintln(w)
}

func renderDonations(w io.Writer, donations model.DonationReconciliation) {
	if donations.Reconciled {
		fmt.Fprintln(w, FormatSuccess(fmt.Sprintf(
			"Donations reconciled: both sources report %d package(s).", donations.OrderTotal)))
	} else {
		fmt.Fprintln(w, FormatWarning(fmt.Sprintf(
			"Donation mismatch: orders report %d, transfers report %d (difference %+d).",
			donations.OrderTotal, donations.TransferTotal, donations.Discrepancy)))
	}
	fmt.Fprintln(w)
}

func renderWarnings(w io.Writer, warnings []model.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, TableHeaderStyle.Render("Warnings"))
	for _, warning := range warnings {
		fmt.Fprintf(w, "%s [%s] %s\n", WarningIcon, warning.Type, warning.Message)
	}
}
