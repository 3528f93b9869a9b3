package importer

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/troopledger/troopledger/internal/model"
)

// Column names in the flat CSV summary report. The report covers the same
// transfers as the API feed but loses the divider payload, so it is only a
// fallback.
const (
	repColType     = "Transfer Type"
	repColID       = "Reference"
	repColOrder    = "Order #"
	repColFrom     = "From"
	repColTo       = "To"
	repColDate     = "Date"
	repColDonation = "Cookie Share"
	repColAmount   = "Total"
	repColStatus   = "Status"
)

var requiredReportColumns = []string{
	repColType, repColID, repColFrom, repColTo, repColDate,
	repColDonation, repColAmount, repColStatus,
}

// reportVarietyColumns maps the report's abbreviated variety columns.
var reportVarietyColumns = map[string]model.Variety{
	"ADVF": model.Adventurefuls,
	"LMNU": model.LemonUps,
	"TRE":  model.Trefoils,
	"DSD":  model.DoSiDos,
	"SAM":  model.Samoas,
	"TAG":  model.Tagalongs,
	"TM":   model.ThinMints,
	"SMR":  model.Smores,
	"TFT":  model.ToffeeTastic,
}

// ImportSummaryReport appends canonical transfers from the CSV summary
// report. The API feed and the report cover overlapping records; the richer
// feed wins, so when the API source is already present the report is
// skipped wholesale and the skip is recorded as an explicit issue, not
// silently dropped.
func ImportSummaryReport(set *ImportSet, rows []map[string]string) {
	if set.HasSource(SourceAPI) {
		set.issue("summary report: skipped, transfer feed already imported")
		slog.Info("Skipping summary report, transfer feed already present",
			"source", SourceReport)
		return
	}

	if len(rows) == 0 {
		set.issue("summary report: no rows found")
		return
	}
	if missing := missingReportColumns(rows[0]); len(missing) > 0 {
		set.issue("summary report: format not recognized (missing columns: %s)",
			strings.Join(missing, ", "))
		return
	}

	records := make([]TransferRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, reportRecord(row))
	}

	// Reuse the feed conversion so the report produces identical canonical
	// transfers, just without divider shares.
	importTransferRecords(set, records, SourceReport)
}

func missingReportColumns(row map[string]string) []string {
	var missing []string
	for _, col := range requiredReportColumns {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	for col := range reportVarietyColumns {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

func reportRecord(row map[string]string) TransferRecord {
	quantities := make(map[string]int, len(reportVarietyColumns))
	for col, variety := range reportVarietyColumns {
		quantities[string(variety)] = parseCount(row[col])
	}

	return TransferRecord{
		ID:          strings.TrimSpace(row[repColID]),
		Type:        strings.TrimSpace(row[repColType]),
		OrderNumber: strings.TrimSpace(row[repColOrder]),
		From:        strings.TrimSpace(row[repColFrom]),
		To:          strings.TrimSpace(row[repColTo]),
		Date:        strings.TrimSpace(row[repColDate]),
		Quantities:  quantities,
		Donation:    parseCount(row[repColDonation]),
		Amount:      parseAmount(row[repColAmount]),
		Status:      strings.TrimSpace(row[repColStatus]),
	}
}
