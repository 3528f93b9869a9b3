package model

import "time"

// HealthChecks counts recorded anomalies by category.
type HealthChecks struct {
	UnknownOrderTypes     int `json:"unknownOrderTypes"`
	UnknownPaymentMethods int `json:"unknownPaymentMethods"`
	UnknownTransferTypes  int `json:"unknownTransferTypes"`
	UnknownVarietyIDs     int `json:"unknownVarietyIds"`
}

// Metadata describes the run that produced a snapshot.
type Metadata struct {
	// LastImport holds the most recent import time per source name.
	LastImport   map[string]time.Time `json:"lastImport"`
	HealthChecks HealthChecks         `json:"healthChecks"`
}

// DonationReconciliation compares the donation totals the two sources
// report independently. The sources aggregate at different granularities,
// so only the totals are compared, never per-order.
type DonationReconciliation struct {
	OrderTotal    int  `json:"orderTotal"`
	TransferTotal int  `json:"transferTotal"`
	Reconciled    bool `json:"reconciled"`
	Discrepancy   int  `json:"discrepancy"`
}

// TroopSummary holds organization-level aggregates.
type TroopSummary struct {
	Received  Varieties `json:"received"`
	Sent      Varieties `json:"sent"`
	Allocated Varieties `json:"allocated"`
	// NetInventory is signed received - allocated - sent; OnHand floors it.
	NetInventory Varieties `json:"netInventory"`
	OnHand       Varieties `json:"onHand"`
	Oversold     []Variety `json:"oversold,omitempty"`
	Totals       Totals    `json:"totals"`
}

// UnifiedDataset is the single immutable snapshot a pipeline run produces.
// It is superseded wholesale by the next run, never diffed or merged.
type UnifiedDataset struct {
	Participants map[string]*Participant `json:"participants"`
	Troop        TroopSummary            `json:"troop"`
	// TransfersByCategory groups every classified transfer; unknown-type
	// transfers appear here for inspection but in no numeric total.
	TransfersByCategory map[TransferCategory][]Transfer `json:"transfersByCategory"`
	VarietyTotals       Varieties                       `json:"varietyTotals"`
	Donations           DonationReconciliation          `json:"donations"`
	Warnings            []Warning                       `json:"warnings"`
	Metadata            Metadata                        `json:"metadata"`
	// Blocked is set when unknown order types are present: the presentation
	// layer must withhold computed reports and show only the warning list.
	Blocked bool `json:"blocked"`

	// runID orders concurrent rebuilds; it is deliberately not serialized so
	// identical inputs serialize byte-identically.
	runID uint64
}

// RunID returns the identifier of the run that produced this dataset.
func (d *UnifiedDataset) RunID() uint64 { return d.runID }

// SetRunID tags the dataset with its producing run. Used by the engine only.
func (d *UnifiedDataset) SetRunID(id uint64) { d.runID = id }

// Empty reports whether any source ever contributed records, letting the
// presentation layer distinguish "no data yet" from "loaded with warnings".
func (d *UnifiedDataset) Empty() bool {
	return len(d.Participants) == 0 && len(d.TransfersByCategory) == 0 && len(d.Warnings) == 0
}
