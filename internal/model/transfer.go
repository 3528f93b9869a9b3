package model

import "time"

// TransferCategory is the closed classification assigned to every transfer
// exactly once, at import time. Downstream code branches only on the
// category, never on the raw type code again.
type TransferCategory string

// Transfer category constants.
const (
	// CategoryTroopReceived is inventory arriving at the troop (cupboard or
	// another troop).
	CategoryTroopReceived TransferCategory = "troop-received"
	// CategoryTroopSent is inventory leaving the troop for the cupboard or
	// another troop.
	CategoryTroopSent TransferCategory = "troop-sent"
	// CategoryPickup is a participant taking physical packages from the troop.
	CategoryPickup TransferCategory = "participant-pickup"
	// CategoryReturn is a participant handing physical packages back.
	CategoryReturn TransferCategory = "participant-return"
	// CategoryVirtualBooth credits a troop site delivery order to one seller.
	CategoryVirtualBooth TransferCategory = "virtual-booth"
	// CategoryBoothSale credits a physical booth sale to sellers.
	CategoryBoothSale TransferCategory = "booth-sale"
	// CategoryDirectShip credits troop-level direct-ship volume to sellers.
	CategoryDirectShip TransferCategory = "direct-ship"
	// CategoryDonationSync mirrors donation (virtual) packages recorded
	// remotely; it never moves physical inventory.
	CategoryDonationSync TransferCategory = "donation-sync"
	// CategoryOrderSync is a bookkeeping echo of an online order already
	// counted from the order feed; it must not be double counted.
	CategoryOrderSync TransferCategory = "order-sync"
	// CategoryPlanned is a future-dated movement that has not happened yet.
	CategoryPlanned TransferCategory = "planned"
	// CategoryUnknown marks a raw type code missing from the classification
	// table. Unknown transfers are excluded from all downstream totals.
	CategoryUnknown TransferCategory = "unknown"
)

// DividerShare is one participant's slice of an organization-level divider
// transfer, copied from the remote payload. Booth shares also carry the
// store, date and time window the remote system recorded.
type DividerShare struct {
	Participant string    `json:"participant"`
	Varieties   Varieties `json:"varieties"`
	Donation    int       `json:"donation"`
	Amount      float64   `json:"amount"`
	Store       string    `json:"store,omitempty"`
	BoothDate   string    `json:"boothDate,omitempty"`
	TimeWindow  string    `json:"timeWindow,omitempty"`
}

// Transfer is a single inventory movement or organization-level sales record
// from the richer remote source. The raw feed mixes true inventory movements
// with order-sync records; Category is what disambiguates them.
type Transfer struct {
	Date        time.Time        `json:"date"`
	ID          string           `json:"id"`
	RawType     string           `json:"rawType"`
	Category    TransferCategory `json:"category"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	OrderNumber string           `json:"orderNumber,omitempty"`
	Varieties   Varieties        `json:"varieties"`
	Donation    int              `json:"donation"`
	Amount      float64          `json:"amount"`
	Status      string           `json:"status"`
	Shares      []DividerShare   `json:"shares,omitempty"`
}

// ShareTotals sums the divider payload's quantities, donations and amount.
func (t Transfer) ShareTotals() (Varieties, int, float64) {
	varieties := make(Varieties)
	donation := 0
	amount := 0.0
	for _, share := range t.Shares {
		varieties.Add(share.Varieties, 1)
		donation += share.Donation
		amount += share.Amount
	}
	return varieties, donation, amount
}
