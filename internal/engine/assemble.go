package engine

import (
	"time"

	"github.com/troopledger/troopledger/internal/model"
)

// assemble freezes the run into the final snapshot. Derived aggregates are
// computed here, layered on top of the immutable base records, instead of
// being bolted onto Order or Transfer as mutable fields.
func (b *build) assemble(donations model.DonationReconciliation) *model.UnifiedDataset {
	varietyTotals := make(model.Varieties)

	for _, name := range b.order {
		p := b.participants[name]
		p.Totals = participantTotals(p)
		for _, order := range p.Orders {
			varietyTotals.Add(order.Varieties, 1)
		}
		for _, alloc := range p.Allocations {
			varietyTotals.Add(alloc.Varieties, 1)
		}
		b.troop.Totals.Sold += p.Totals.Sold
		b.troop.Totals.Shipped += p.Totals.Shipped
		b.troop.Totals.Donations += p.Totals.Donations
		b.troop.Totals.Credited += p.Totals.Credited
		b.troop.Totals.Revenue += p.Totals.Revenue
	}

	// Site-level orders are owned by no participant but still count toward
	// the troop and variety totals, unless the transfer feed already
	// redistributed the same order to a seller via a virtual-booth credit.
	// When both sources load, the credit carries the sale and counting the
	// site order too would double it.
	redistributed := make(map[string]bool)
	for _, transfer := range b.set.Transfers {
		if transfer.Category == model.CategoryVirtualBooth && transfer.OrderNumber != "" {
			redistributed[transfer.OrderNumber] = true
		}
	}
	for _, order := range b.set.Orders {
		if !order.SiteOrder || redistributed[order.Number] {
			continue
		}
		varietyTotals.Add(order.Varieties, 1)
		b.troop.Totals.Sold += order.PhysicalPackages()
		b.troop.Totals.Donations += order.Donation
		b.troop.Totals.Revenue += order.Amount
	}

	byCategory := make(map[model.TransferCategory][]model.Transfer)
	for _, transfer := range b.set.Transfers {
		byCategory[transfer.Category] = append(byCategory[transfer.Category], transfer)
	}

	checks, blocked := healthChecks(b.warnings)

	lastImport := make(map[string]time.Time, len(b.set.Imported))
	for source, at := range b.set.Imported {
		lastImport[string(source)] = at
	}

	return &model.UnifiedDataset{
		Participants:        b.participants,
		Troop:               b.troop,
		TransfersByCategory: byCategory,
		VarietyTotals:       varietyTotals,
		Donations:           donations,
		Warnings:            b.warnings,
		Metadata: model.Metadata{
			LastImport:   lastImport,
			HealthChecks: checks,
		},
		Blocked: blocked,
	}
}

// participantTotals derives one seller's package and revenue aggregates
// from their orders and allocations.
func participantTotals(p *model.Participant) model.Totals {
	var totals model.Totals
	for _, order := range p.Orders {
		if order.Type == model.OrderTypeDirectShip {
			totals.Shipped += order.PhysicalPackages()
		} else {
			totals.Sold += order.PhysicalPackages()
		}
		totals.Donations += order.Donation
		totals.Revenue += order.Amount
	}
	for _, alloc := range p.Allocations {
		totals.Credited += alloc.Varieties.Total()
		totals.Donations += alloc.Donation
		totals.Revenue += alloc.Amount
	}
	return totals
}
