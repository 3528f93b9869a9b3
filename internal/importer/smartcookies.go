package importer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/troopledger/troopledger/internal/classify"
	"github.com/troopledger/troopledger/internal/model"
)

// TransferRecord is one transfer-shaped object from the remote API's
// order/transfer search endpoint, already decoded from JSON at the boundary.
type TransferRecord struct {
	ID          string         `json:"transferId"`
	Type        string         `json:"transferType"`
	OrderNumber string         `json:"orderNumber,omitempty"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Date        string         `json:"transferDate"`
	Quantities  map[string]int `json:"quantities"`
	Donation    int            `json:"donationQty"`
	Amount      float64        `json:"totalAmount"`
	Status      string         `json:"status"`
	Shares      []ShareRecord  `json:"dividerShares,omitempty"`
}

// ShareRecord is one participant's slice of a divider transfer as the API
// reports it.
type ShareRecord struct {
	Girl       string         `json:"girl"`
	Quantities map[string]int `json:"quantities"`
	Donation   int            `json:"donationQty"`
	Amount     float64        `json:"amount"`
	Store      string         `json:"store,omitempty"`
	BoothDate  string         `json:"boothDate,omitempty"`
	TimeWindow string         `json:"timeWindow,omitempty"`
}

// ImportSmartCookieTransfers appends canonical transfers from the API feed.
// Each transfer is classified here, once; category is never re-derived
// downstream. Records with a raw type missing from the classification table
// are kept with CategoryUnknown so the health view can show them, but they
// are excluded from every total.
func ImportSmartCookieTransfers(set *ImportSet, records []TransferRecord) {
	if len(records) == 0 {
		set.issue("transfer feed: no records found")
		return
	}
	importTransferRecords(set, records, SourceAPI)
}

func importTransferRecords(set *ImportSet, records []TransferRecord, source Source) {
	unknown := 0
	for _, rec := range records {
		transfer := transferFromRecord(set, rec)

		category, ok := classify.Transfer(set.TroopID, transfer)
		transfer.Category = category
		if !ok {
			unknown++
			set.warn(model.WarningUnknownTransferType,
				fmt.Sprintf("unknown transfer type %q", rec.Type),
				map[string]string{"transferType": rec.Type, "recordId": rec.ID})
		}

		set.Transfers = append(set.Transfers, transfer)
		set.step()
	}

	set.markImported(source)
	slog.Info("Imported transfers",
		"source", source,
		"transfers", len(records),
		"unknown_types", unknown)
}

func transferFromRecord(set *ImportSet, rec TransferRecord) model.Transfer {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(rec.Date))
	if err != nil {
		set.issue("transfer %s: unparseable date %q", rec.ID, rec.Date)
	}

	var shares []model.DividerShare
	for _, share := range rec.Shares {
		shares = append(shares, model.DividerShare{
			Participant: strings.TrimSpace(share.Girl),
			Varieties:   set.importVarieties(share.Quantities, rec.ID),
			Donation:    share.Donation,
			Amount:      share.Amount,
			Store:       share.Store,
			BoothDate:   share.BoothDate,
			TimeWindow:  share.TimeWindow,
		})
	}

	return model.Transfer{
		ID:          rec.ID,
		RawType:     strings.TrimSpace(rec.Type),
		From:        strings.TrimSpace(rec.From),
		To:          strings.TrimSpace(rec.To),
		OrderNumber: strings.TrimSpace(rec.OrderNumber),
		Date:        date,
		Varieties:   set.importVarieties(rec.Quantities, rec.ID),
		Donation:    rec.Donation,
		Amount:      rec.Amount,
		Status:      strings.TrimSpace(rec.Status),
		Shares:      shares,
	}
}
