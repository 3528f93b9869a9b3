package model

import "time"

// AllocationChannel identifies which divider mechanism produced a credit.
type AllocationChannel string

// Allocation channel constants.
const (
	ChannelVirtualBooth AllocationChannel = "virtual-booth"
	ChannelDirectShip   AllocationChannel = "direct-ship"
	ChannelBoothSale    AllocationChannel = "booth-sale"
)

// Allocation is a credit of organization-level sales to one participant,
// derived from a troop-level transfer. Many allocations may share one
// source transfer; their per-variety quantities always sum back to it.
type Allocation struct {
	Channel    AllocationChannel `json:"channel"`
	TransferID string            `json:"transferId"`
	// OrderNumber is empty for direct-ship credits: that source reports only
	// aggregate volume and the engine never fabricates order-level detail.
	OrderNumber string    `json:"orderNumber,omitempty"`
	Participant string    `json:"participant"`
	Varieties   Varieties `json:"varieties"`
	Donation    int       `json:"donation"`
	Amount      float64   `json:"amount"`
	Store       string    `json:"store,omitempty"`
	BoothDate   string    `json:"boothDate,omitempty"`
	TimeWindow  string    `json:"timeWindow,omitempty"`
	Note        string    `json:"note,omitempty"`
}

// PaymentEntry is a manually recorded cash/check payment a participant
// turned in to the troop treasurer.
type PaymentEntry struct {
	ID          int64     `json:"id"`
	Participant string    `json:"participant"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	Reference   string    `json:"reference,omitempty"`
}

// Totals holds per-participant package and revenue aggregates.
type Totals struct {
	Sold      int     `json:"sold"`
	Shipped   int     `json:"shipped"`
	Donations int     `json:"donations"`
	Credited  int     `json:"credited"`
	Revenue   float64 `json:"revenue"`
}

// Financials holds the per-participant cash position. CashDue may be
// negative (over-payment) and is reported as-is, never clamped.
type Financials struct {
	PickupValue        float64 `json:"pickupValue"`
	ElectronicPayments float64 `json:"electronicPayments"`
	PaymentsTurnedIn   float64 `json:"paymentsTurnedIn"`
	CashOwed           float64 `json:"cashOwed"`
	CashDue            float64 `json:"cashDue"`
}

// Participant aggregates one seller's orders, allocations, inventory and
// cash position. Participants are rebuilt from scratch on every pipeline
// run; they are never patched in place.
type Participant struct {
	Name        string       `json:"name"`
	Orders      []Order      `json:"orders"`
	Allocations []Allocation `json:"allocations"`
	PickedUp    Varieties    `json:"pickedUp"`
	// NetInventory is signed: pickedUp minus sold per variety. A negative
	// count signals an oversold condition and is preserved.
	NetInventory Varieties `json:"netInventory"`
	// OnHand is the zero-floored display copy of NetInventory.
	OnHand   Varieties  `json:"onHand"`
	Oversold []Variety  `json:"oversold,omitempty"`
	Totals   Totals     `json:"totals"`
	Finance  Financials `json:"finance"`
}

// AllocationsByChannel returns this participant's credits for one channel.
func (p *Participant) AllocationsByChannel(channel AllocationChannel) []Allocation {
	var out []Allocation
	for _, alloc := range p.Allocations {
		if alloc.Channel == channel {
			out = append(out, alloc)
		}
	}
	return out
}
