package model

import "time"

// OrderType is the closed sales-channel taxonomy for online orders.
type OrderType string

// Order type constants.
const (
	OrderTypeDelivery     OrderType = "delivery"
	OrderTypeDirectShip   OrderType = "direct-ship"
	OrderTypeBooth        OrderType = "booth"
	OrderTypeInHand       OrderType = "in-hand"
	OrderTypeDonationOnly OrderType = "donation-only"
	// OrderTypeUnknown marks an order whose raw type string was not
	// recognized. Unknown order types block report presentation because the
	// order cannot be safely counted in any total.
	OrderTypeUnknown OrderType = "unknown"
)

// RequiresInventory reports whether orders of this type are fulfilled from
// the seller's physical stock. Direct-ship and donation-only never touch
// local inventory.
func (t OrderType) RequiresInventory() bool {
	return t == OrderTypeDelivery || t == OrderTypeInHand
}

// PaymentMethod is the closed payment taxonomy.
type PaymentMethod string

// Payment method constants.
const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCheck   PaymentMethod = "check"
	PaymentCredit  PaymentMethod = "credit"
	PaymentPayPal  PaymentMethod = "paypal"
	PaymentVenmo   PaymentMethod = "venmo"
	PaymentUnknown PaymentMethod = "unknown"
)

// Electronic reports whether the method settles outside the cash envelope a
// seller turns in. Unknown methods are excluded from both sides and flagged.
func (m PaymentMethod) Electronic() bool {
	switch m {
	case PaymentCredit, PaymentPayPal, PaymentVenmo:
		return true
	default:
		return false
	}
}

// OrderStatus is the normalized fulfillment status used for display.
type OrderStatus string

// Order status constants.
const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusDelivered OrderStatus = "delivered"
	StatusShipped   OrderStatus = "shipped"
	StatusCanceled  OrderStatus = "canceled"
	StatusOther     OrderStatus = "other"
)

// Order is a single online transaction. Orders are immutable once imported:
// every derived number lives on Participant or UnifiedDataset, never here.
type Order struct {
	Date time.Time `json:"date"`
	// Number is the source's unique order number.
	Number string `json:"number"`
	// Seller is the participant credited with the sale, or the troop site
	// name for organization-level orders.
	Seller    string        `json:"seller"`
	SiteOrder bool          `json:"siteOrder,omitempty"`
	Type      OrderType     `json:"type"`
	RawType   string        `json:"rawType"`
	Payment   PaymentMethod `json:"payment"`
	Status    OrderStatus   `json:"status"`
	RawStatus string        `json:"rawStatus"`
	Varieties Varieties     `json:"varieties"`
	Donation  int           `json:"donation"`
	Amount    float64       `json:"amount"`
}

// PhysicalPackages returns the package count fulfilled with real cookies.
// Together with Donation it accounts for every package on the order.
func (o Order) PhysicalPackages() int {
	return o.Varieties.Total()
}

// TotalPackages returns physical packages plus donated (virtual) packages.
func (o Order) TotalPackages() int {
	return o.PhysicalPackages() + o.Donation
}
