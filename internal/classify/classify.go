// Package classify assigns canonical categories to raw source vocabulary.
// Every table here has a guaranteed unmatched arm: a value missing from a
// table is reported to the caller, never defaulted.
package classify

import (
	"strings"

	"github.com/troopledger/troopledger/internal/model"
)

// transferTable is the single source of truth for mapping raw transfer type
// codes to categories. T2T is the one direction-dependent code and is
// resolved against the troop ID in Transfer.
var transferTable = map[string]model.TransferCategory{
	"C2T": model.CategoryTroopReceived,
	"T2C": model.CategoryTroopSent,
	"T2G": model.CategoryPickup,
	"G2T": model.CategoryReturn,
	"VBD": model.CategoryVirtualBooth,
	"SBD": model.CategoryBoothSale,
	"DSD": model.CategoryDirectShip,
	"CSO": model.CategoryDonationSync,
	"DOC": model.CategoryOrderSync,
	"PLN": model.CategoryPlanned,
}

// Transfer classifies a raw transfer. The category is assigned once, at
// import time; downstream stages branch on it and never re-inspect the raw
// type code. The second return is false for raw codes absent from the
// table, in which case the transfer must be excluded from all totals.
func Transfer(troopID string, t model.Transfer) (model.TransferCategory, bool) {
	raw := strings.ToUpper(strings.TrimSpace(t.RawType))

	// Troop-to-troop movements are received or sent depending on which side
	// of the transfer we are.
	if raw == "T2T" {
		switch {
		case strings.EqualFold(t.To, troopID):
			return model.CategoryTroopReceived, true
		case strings.EqualFold(t.From, troopID):
			return model.CategoryTroopSent, true
		default:
			return model.CategoryUnknown, false
		}
	}

	if category, ok := transferTable[raw]; ok {
		return category, true
	}
	return model.CategoryUnknown, false
}

// orderTypeTable maps the order export's free-text type strings onto the
// closed order taxonomy.
var orderTypeTable = map[string]model.OrderType{
	"girl delivery":   model.OrderTypeDelivery,
	"delivery":        model.OrderTypeDelivery,
	"shipped":         model.OrderTypeDirectShip,
	"direct ship":     model.OrderTypeDirectShip,
	"booth":           model.OrderTypeBooth,
	"troop site":      model.OrderTypeBooth,
	"in hand":         model.OrderTypeInHand,
	"cookies in hand": model.OrderTypeInHand,
	"donation":        model.OrderTypeDonationOnly,
	"donation only":   model.OrderTypeDonationOnly,
}

// OrderType normalizes a raw order type string. An unrecognized value is the
// one anomaly that blocks presentation, so the caller must record it.
func OrderType(raw string) (model.OrderType, bool) {
	if t, ok := orderTypeTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t, true
	}
	return model.OrderTypeUnknown, false
}

var paymentTable = map[string]model.PaymentMethod{
	"cash":        model.PaymentCash,
	"check":       model.PaymentCheck,
	"credit":      model.PaymentCredit,
	"credit card": model.PaymentCredit,
	"paypal":      model.PaymentPayPal,
	"venmo":       model.PaymentVenmo,
}

// PaymentMethod normalizes a raw payment string. Unknown methods degrade
// gracefully: excluded from electronic-payment totals and flagged.
func PaymentMethod(raw string) (model.PaymentMethod, bool) {
	if m, ok := paymentTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return m, true
	}
	return model.PaymentUnknown, false
}

// OrderStatus folds the source's free-text fulfillment status into the small
// display taxonomy. Statuses are display-only, so the unmatched arm here is
// StatusOther rather than a warning.
func OrderStatus(raw string) model.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "needs approval":
		return model.StatusPending
	case "approved", "approved for delivery":
		return model.StatusApproved
	case "delivered", "completed", "complete":
		return model.StatusDelivered
	case "shipped", "in transit":
		return model.StatusShipped
	case "canceled", "cancelled", "refunded":
		return model.StatusCanceled
	default:
		return model.StatusOther
	}
}
