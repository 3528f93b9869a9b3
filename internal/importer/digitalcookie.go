package importer

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/troopledger/troopledger/internal/classify"
	"github.com/troopledger/troopledger/internal/model"
)

// Column names in the troop-level order export. The export's column set is
// fixed; a sheet missing any required column fails the structural check and
// contributes nothing.
const (
	colOrderNumber = "Order Number"
	colSeller      = "Seller"
	colOrderDate   = "Order Date"
	colOrderType   = "Order Type"
	colPayment     = "Payment Type"
	colDonation    = "Donated Packages"
	colAmount      = "Order Total"
	colStatus      = "Status"
)

var requiredOrderColumns = []string{
	colOrderNumber, colSeller, colOrderDate, colOrderType,
	colPayment, colDonation, colAmount, colStatus,
}

// varietyColumns maps the export's per-variety count columns onto varieties.
var varietyColumns = map[string]model.Variety{
	"Adventurefuls": model.Adventurefuls,
	"Lemon-Ups":     model.LemonUps,
	"Trefoils":      model.Trefoils,
	"Do-si-dos":     model.DoSiDos,
	"Samoas":        model.Samoas,
	"Tagalongs":     model.Tagalongs,
	"Thin Mints":    model.ThinMints,
	"S'mores":       model.Smores,
	"Toffee-tastic": model.ToffeeTastic,
}

// siteSellerPrefix marks organization-level (troop site) orders in the
// seller column.
const siteSellerPrefix = "Troop Site"

// ImportDigitalCookieOrders appends canonical orders from the troop-level
// order export. Rows are header-keyed values, one per order. A sheet whose
// header does not match is reported as an issue and skipped whole; the
// pipeline proceeds with whatever other sources loaded.
func ImportDigitalCookieOrders(set *ImportSet, rows []map[string]string) {
	if len(rows) == 0 {
		set.issue("order export: no rows found")
		return
	}
	if missing := missingColumns(rows[0]); len(missing) > 0 {
		set.issue("order export: format not recognized (missing columns: %s)",
			strings.Join(missing, ", "))
		return
	}

	imported := 0
	for _, row := range rows {
		order := orderFromRow(set, row)
		set.Orders = append(set.Orders, order)
		imported++
		set.step()
	}

	set.markImported(SourceOrders)
	slog.Info("Imported order export",
		"source", SourceOrders,
		"orders", imported)
}

func missingColumns(row map[string]string) []string {
	var missing []string
	for _, col := range requiredOrderColumns {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	for col := range varietyColumns {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	// The issue string ends up in the dataset, so its column order must be
	// stable across runs.
	sort.Strings(missing)
	return missing
}

func orderFromRow(set *ImportSet, row map[string]string) model.Order {
	number := strings.TrimSpace(row[colOrderNumber])

	orderType, ok := classify.OrderType(row[colOrderType])
	if !ok {
		set.warn(model.WarningUnknownOrderType,
			fmt.Sprintf("unknown order type %q", row[colOrderType]),
			map[string]string{"orderType": row[colOrderType], "orderNumber": number})
	}

	payment, ok := classify.PaymentMethod(row[colPayment])
	if !ok {
		set.warn(model.WarningUnknownPayment,
			fmt.Sprintf("unknown payment method %q", row[colPayment]),
			map[string]string{"paymentMethod": row[colPayment], "orderNumber": number})
	}

	varieties := make(model.Varieties)
	for col, variety := range varietyColumns {
		varieties[variety] = parseCount(row[col])
	}

	seller := strings.TrimSpace(row[colSeller])
	date, err := time.Parse("2006-01-02", strings.TrimSpace(row[colOrderDate]))
	if err != nil {
		set.issue("order %s: unparseable date %q", number, row[colOrderDate])
	}

	return model.Order{
		Number:    number,
		Seller:    seller,
		SiteOrder: strings.HasPrefix(seller, siteSellerPrefix),
		Date:      date,
		Type:      orderType,
		RawType:   strings.TrimSpace(row[colOrderType]),
		Payment:   payment,
		Status:    classify.OrderStatus(row[colStatus]),
		RawStatus: strings.TrimSpace(row[colStatus]),
		Varieties: varieties,
		Donation:  parseCount(row[colDonation]),
		Amount:    parseAmount(row[colAmount]),
	}
}

func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func parseAmount(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}
