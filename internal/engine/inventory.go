package engine

import "github.com/troopledger/troopledger/internal/model"

// netInventory computes signed per-participant and troop-level inventory
// from classified transfers and orders. Negative counts are retained as-is
// in the signed aggregate; only the separate display aggregate floors them,
// because collapsing the two forms into one number loses the oversold
// signal the health view needs.
func (b *build) netInventory() {
	b.troop.Received = make(model.Varieties)
	b.troop.Sent = make(model.Varieties)
	b.troop.Allocated = make(model.Varieties)

	for _, transfer := range b.set.Transfers {
		switch transfer.Category {
		case model.CategoryTroopReceived:
			b.troop.Received.Add(transfer.Varieties, 1)
		case model.CategoryTroopSent:
			b.troop.Sent.Add(transfer.Varieties, 1)
		case model.CategoryPickup:
			p := b.participant(transfer.To)
			p.PickedUp.Add(transfer.Varieties, 1)
			b.troop.Allocated.Add(transfer.Varieties, 1)
		case model.CategoryReturn:
			p := b.participant(transfer.From)
			p.PickedUp.Add(transfer.Varieties, -1)
			b.troop.Allocated.Add(transfer.Varieties, -1)
		default:
			// Divider, sync, planned and unknown transfers never move
			// physical troop stock.
		}
	}

	for _, name := range b.order {
		p := b.participants[name]

		sold := make(model.Varieties)
		for _, order := range p.Orders {
			if order.Type.RequiresInventory() {
				sold.Add(order.Varieties, 1)
			}
		}

		p.NetInventory = p.PickedUp.Clone()
		p.NetInventory.Add(sold, -1)
		p.OnHand = p.NetInventory.Floored()
		p.Oversold = p.NetInventory.Negatives()
	}

	b.troop.NetInventory = b.troop.Received.Clone()
	b.troop.NetInventory.Add(b.troop.Allocated, -1)
	b.troop.NetInventory.Add(b.troop.Sent, -1)
	b.troop.OnHand = b.troop.NetInventory.Floored()
	b.troop.Oversold = b.troop.NetInventory.Negatives()
}
