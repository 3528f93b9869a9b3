package engine

import "github.com/troopledger/troopledger/internal/model"

// healthChecks counts recorded warnings by category. Unknown order types are
// the only category that blocks presentation: an order of unrecognized type
// cannot be safely counted in any total, so the UI must withhold computed
// reports while any exist. Every other category degrades gracefully.
func healthChecks(warnings []model.Warning) (model.HealthChecks, bool) {
	var checks model.HealthChecks
	for _, warning := range warnings {
		switch warning.Type {
		case model.WarningUnknownOrderType:
			checks.UnknownOrderTypes++
		case model.WarningUnknownPayment:
			checks.UnknownPaymentMethods++
		case model.WarningUnknownTransferType:
			checks.UnknownTransferTypes++
		case model.WarningUnknownVariety:
			checks.UnknownVarietyIDs++
		}
	}
	return checks, checks.UnknownOrderTypes > 0
}
