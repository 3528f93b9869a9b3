package engine

import "github.com/troopledger/troopledger/internal/model"

// computeFinancials derives each participant's cash position:
//
//	cashOwed = pickupValue - electronicPayments
//	cashDue  = cashOwed - paymentsTurnedIn
//
// pickupValue prices the packages actually taken from troop stock; electronic
// payments already settled online and never pass through the seller's hands.
// CashDue may be negative (over-payment) and is preserved as such.
func (b *build) computeFinancials() {
	turnedIn := make(map[string]float64, len(b.payments))
	for _, payment := range b.payments {
		turnedIn[payment.Participant] += payment.Amount
	}

	for _, name := range b.order {
		p := b.participants[name]

		electronic := 0.0
		for _, order := range p.Orders {
			if order.Payment.Electronic() {
				electronic += order.Amount
			}
		}

		f := model.Financials{
			PickupValue:        p.PickedUp.Value(),
			ElectronicPayments: electronic,
			PaymentsTurnedIn:   turnedIn[name],
		}
		f.CashOwed = f.PickupValue - f.ElectronicPayments
		f.CashDue = f.CashOwed - f.PaymentsTurnedIn
		p.Finance = f
	}
}
