package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/troopledger/troopledger/internal/model"
)

func TestTransferClassification(t *testing.T) {
	tests := []struct {
		name    string
		rawType string
		from    string
		to      string
		want    model.TransferCategory
		known   bool
	}{
		{"cupboard to troop", "C2T", "Cupboard 12", "Troop 40404", model.CategoryTroopReceived, true},
		{"troop to cupboard", "T2C", "Troop 40404", "Cupboard 12", model.CategoryTroopSent, true},
		{"troop to girl", "T2G", "Troop 40404", "Alice", model.CategoryPickup, true},
		{"girl to troop", "G2T", "Alice", "Troop 40404", model.CategoryReturn, true},
		{"virtual booth divider", "VBD", "Troop 40404", "Alice", model.CategoryVirtualBooth, true},
		{"smart booth divider", "SBD", "Troop 40404", "", model.CategoryBoothSale, true},
		{"direct ship divider", "DSD", "Troop 40404", "", model.CategoryDirectShip, true},
		{"cookie share order", "CSO", "", "Troop 40404", model.CategoryDonationSync, true},
		{"digital order copy", "DOC", "", "Troop 40404", model.CategoryOrderSync, true},
		{"planned order", "PLN", "Cupboard 12", "Troop 40404", model.CategoryPlanned, true},
		{"lowercase with whitespace", " t2g ", "Troop 40404", "Alice", model.CategoryPickup, true},
		{"troop to troop inbound", "T2T", "Troop 555", "Troop 40404", model.CategoryTroopReceived, true},
		{"troop to troop outbound", "T2T", "Troop 40404", "Troop 555", model.CategoryTroopSent, true},
		{"troop to troop neither side", "T2T", "Troop 555", "Troop 666", model.CategoryUnknown, false},
		{"unrecognized code", "ZZZ", "Troop 40404", "Alice", model.CategoryUnknown, false},
		{"empty code", "", "Troop 40404", "Alice", model.CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, known := Transfer("Troop 40404", model.Transfer{
				RawType: tt.rawType,
				From:    tt.from,
				To:      tt.to,
			})
			assert.Equal(t, tt.want, category)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestOrderTypeClassification(t *testing.T) {
	tests := []struct {
		raw   string
		want  model.OrderType
		known bool
	}{
		{"Girl Delivery", model.OrderTypeDelivery, true},
		{"delivery", model.OrderTypeDelivery, true},
		{"Shipped", model.OrderTypeDirectShip, true},
		{"Direct Ship", model.OrderTypeDirectShip, true},
		{"Booth", model.OrderTypeBooth, true},
		{"Cookies In Hand", model.OrderTypeInHand, true},
		{"In Hand", model.OrderTypeInHand, true},
		{"Donation", model.OrderTypeDonationOnly, true},
		{"Donation Only", model.OrderTypeDonationOnly, true},
		{"Teleportation", model.OrderTypeUnknown, false},
		{"", model.OrderTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, known := OrderType(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestPaymentMethodClassification(t *testing.T) {
	tests := []struct {
		raw        string
		want       model.PaymentMethod
		known      bool
		electronic bool
	}{
		{"Cash", model.PaymentCash, true, false},
		{"Check", model.PaymentCheck, true, false},
		{"Credit Card", model.PaymentCredit, true, true},
		{"credit", model.PaymentCredit, true, true},
		{"PayPal", model.PaymentPayPal, true, true},
		{"Venmo", model.PaymentVenmo, true, true},
		{"Barter", model.PaymentUnknown, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, known := PaymentMethod(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.electronic, got.Electronic())
		})
	}
}

func TestOrderStatusDefaultsToOther(t *testing.T) {
	assert.Equal(t, model.StatusPending, OrderStatus("Needs Approval"))
	assert.Equal(t, model.StatusApproved, OrderStatus("Approved for Delivery"))
	assert.Equal(t, model.StatusDelivered, OrderStatus("Completed"))
	assert.Equal(t, model.StatusShipped, OrderStatus("In Transit"))
	assert.Equal(t, model.StatusCanceled, OrderStatus("Refunded"))
	assert.Equal(t, model.StatusOther, OrderStatus("Mystery"))
}
