package engine

import (
	"fmt"
	"log/slog"

	"github.com/troopledger/troopledger/internal/model"
)

// directShipNote explains why direct-ship credits carry no order number.
const directShipNote = "direct-ship volume is reported in aggregate by the source; no per-order breakdown exists"

// allocate redistributes organization-level transfers to the participants
// who earn the sales credit. The remote system tracks these at the troop
// level; local program rules require per-participant accounting.
func (b *build) allocate() {
	for _, transfer := range b.set.Transfers {
		var allocations []model.Allocation

		switch transfer.Category {
		case model.CategoryVirtualBooth:
			allocations = b.allocateVirtualBooth(transfer)
		case model.CategoryDirectShip:
			allocations = b.allocateDivider(transfer, model.ChannelDirectShip)
		case model.CategoryBoothSale:
			allocations = b.allocateDivider(transfer, model.ChannelBoothSale)
		default:
			continue
		}

		b.checkConservation(transfer, allocations)

		for _, alloc := range allocations {
			p := b.participant(alloc.Participant)
			p.Allocations = append(p.Allocations, alloc)
		}
	}
}

// allocateVirtualBooth credits a troop site delivery order to the one
// participant named in the transfer's allocation record.
func (b *build) allocateVirtualBooth(transfer model.Transfer) []model.Allocation {
	if transfer.To == "" {
		b.warn(model.WarningInternal,
			fmt.Sprintf("virtual-booth transfer %s names no participant", transfer.ID),
			map[string]string{"transferId": transfer.ID})
		return nil
	}
	return []model.Allocation{{
		Channel:     model.ChannelVirtualBooth,
		TransferID:  transfer.ID,
		OrderNumber: transfer.OrderNumber,
		Participant: transfer.To,
		Varieties:   transfer.Varieties.Clone(),
		Donation:    transfer.Donation,
		Amount:      transfer.Amount,
	}}
}

// allocateDivider splits one troop-level transfer across the participants in
// its divider payload. Direct-ship shares have no order-level granularity
// and the allocator must not fabricate it: those allocations carry no order
// number and a note naming the source limitation. Booth shares copy the
// store, date and time window verbatim.
func (b *build) allocateDivider(transfer model.Transfer, channel model.AllocationChannel) []model.Allocation {
	// A divider transfer with no payload still names one participant in To.
	if len(transfer.Shares) == 0 {
		if transfer.To == "" {
			b.warn(model.WarningInternal,
				fmt.Sprintf("divider transfer %s has neither shares nor a participant", transfer.ID),
				map[string]string{"transferId": transfer.ID, "channel": string(channel)})
			return nil
		}
		alloc := model.Allocation{
			Channel:     channel,
			TransferID:  transfer.ID,
			Participant: transfer.To,
			Varieties:   transfer.Varieties.Clone(),
			Donation:    transfer.Donation,
			Amount:      transfer.Amount,
		}
		if channel == model.ChannelDirectShip {
			alloc.Note = directShipNote
		}
		return []model.Allocation{alloc}
	}

	allocations := make([]model.Allocation, 0, len(transfer.Shares))
	for _, share := range transfer.Shares {
		alloc := model.Allocation{
			Channel:     channel,
			TransferID:  transfer.ID,
			Participant: share.Participant,
			Varieties:   share.Varieties.Clone(),
			Donation:    share.Donation,
			Amount:      share.Amount,
			Store:       share.Store,
			BoothDate:   share.BoothDate,
			TimeWindow:  share.TimeWindow,
		}
		if channel == model.ChannelDirectShip {
			alloc.Note = directShipNote
		}
		allocations = append(allocations, alloc)
	}
	return allocations
}

// checkConservation verifies the allocator's core invariant: the sum of a
// transfer's allocations equals the transfer's own quantities per variety.
// A violation is a bug in the allocator, not bad input, so it is reported
// loudly as an internal error rather than silently skewing totals.
func (b *build) checkConservation(transfer model.Transfer, allocations []model.Allocation) {
	if len(allocations) == 0 {
		return
	}

	sum := make(model.Varieties)
	donation := 0
	for _, alloc := range allocations {
		sum.Add(alloc.Varieties, 1)
		donation += alloc.Donation
	}

	if sum.Equal(transfer.Varieties) && donation == transfer.Donation {
		return
	}

	slog.Error("Allocation conservation violated",
		"transfer_id", transfer.ID,
		"category", transfer.Category,
		"transfer_packages", transfer.Varieties.Total(),
		"allocated_packages", sum.Total())
	b.warn(model.WarningInternal,
		fmt.Sprintf("allocations for transfer %s do not sum to the transfer quantities", transfer.ID),
		map[string]string{
			"transferId":        transfer.ID,
			"transferPackages":  fmt.Sprintf("%d", transfer.Varieties.Total()),
			"allocatedPackages": fmt.Sprintf("%d", sum.Total()),
		})
}
