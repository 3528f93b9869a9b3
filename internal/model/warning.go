package model

import "encoding/json"

// WarningType is the closed taxonomy of recorded issues.
type WarningType string

// Warning type constants.
const (
	WarningUnknownOrderType    WarningType = "unknown-order-type"
	WarningUnknownPayment      WarningType = "unknown-payment-method"
	WarningUnknownTransferType WarningType = "unknown-transfer-type"
	WarningUnknownVariety      WarningType = "unknown-variety"
	WarningReconciliation      WarningType = "reconciliation-mismatch"
	WarningImportIssue         WarningType = "import-issue"
	// WarningInternal indicates an engine bug (an invariant violation), not
	// bad input data.
	WarningInternal WarningType = "internal-error"
)

// Warning records one anomaly with enough context to chase the source row.
type Warning struct {
	Type    WarningType
	Message string
	Context map[string]string
}

// MarshalJSON flattens Context keys beside type and message so the snapshot
// shape stays {type, message, ...context}.
func (w Warning) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(w.Context)+2)
	for k, v := range w.Context {
		flat[k] = v
	}
	flat["type"] = string(w.Type)
	flat["message"] = w.Message
	return json.Marshal(flat)
}

// UnmarshalJSON reverses the flattened shape.
func (w *Warning) UnmarshalJSON(data []byte) error {
	flat := make(map[string]string)
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	w.Type = WarningType(flat["type"])
	w.Message = flat["message"]
	delete(flat, "type")
	delete(flat, "message")
	if len(flat) > 0 {
		w.Context = flat
	} else {
		w.Context = nil
	}
	return nil
}
