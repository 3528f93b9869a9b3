package engine

import (
	"fmt"

	"github.com/troopledger/troopledger/internal/model"
)

// reconcileDonations compares the donation (virtual product) totals the two
// sources report independently. One source aggregates at the order level,
// the other at the troop level, so only the two totals are compared. A
// mismatch is a warning, never a fatal error: reports still render, with a
// visible alert.
func (b *build) reconcileDonations() model.DonationReconciliation {
	orderTotal := 0
	for _, order := range b.set.Orders {
		orderTotal += order.Donation
	}

	transferTotal := 0
	for _, transfer := range b.set.Transfers {
		if transfer.Category == model.CategoryDonationSync {
			transferTotal += transfer.Donation
		}
	}

	result := model.DonationReconciliation{
		OrderTotal:    orderTotal,
		TransferTotal: transferTotal,
		Reconciled:    orderTotal == transferTotal,
		Discrepancy:   orderTotal - transferTotal,
	}

	if !result.Reconciled {
		b.warn(model.WarningReconciliation,
			fmt.Sprintf("donation totals disagree: orders report %d packages, transfers report %d",
				orderTotal, transferTotal),
			map[string]string{
				"orderTotal":    fmt.Sprintf("%d", orderTotal),
				"transferTotal": fmt.Sprintf("%d", transferTotal),
			})
	}

	return result
}
