package invoice

import (
	"math"
	"sort"
	"strconv"

	"github.com/sells-group/billflow-cli/internal/model"
)

// codePriority fixes the display order of charge codes within an invoice:
// gross peak, peak discount, gross off-peak, off-peak discount, consumption
// charges (unlisted, default), then infrastructure and residual charges.
var codePriority = map[string]int{
	"P-5004": 1, "P-5008": 1, "P-5038": 1, "P-5048": 1,
	model.CodeDiscountPeak: 2,
	"P-5005": 3, "P-5009": 3, "P-5039": 3, "P-5049": 3,
	model.CodeDiscountOffPeak: 4,
	model.CodeSupply:          6,
	model.CodeDistribution:    7,
	model.CodeKVA:             8,
	model.CodePowerFactorFine: 9,
	model.CodeVariousCharges:  10,
	model.CodeVariousCredits:  11,
}

// defaultPriority slots unlisted codes between the off-peak discount and the
// supply charge; the consumption codes rely on landing exactly there.
const defaultPriority = 5

func priority(code string) int {
	if p, ok := codePriority[code]; ok {
		return p
	}
	return defaultPriority
}

// invoiceSortKey orders invoices numerically when document numbers are
// numeric, falling back to lexicographic order otherwise.
func invoiceSortKey(items []model.LineItem, i, j int) bool {
	a, b := items[i].InvoiceNumber, items[j].InvoiceNumber
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil && na != nb {
		return na < nb
	}
	return a < b
}

// SortAndNumber orders line items by (invoice, charge-code priority) and
// re-derives dense per-invoice line numbers. The sort is stable so emission
// order breaks priority ties.
func SortAndNumber(items []model.LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].InvoiceNumber != items[j].InvoiceNumber {
			return invoiceSortKey(items, i, j)
		}
		return priority(items[i].Code) < priority(items[j].Code)
	})

	line := 0
	prevInvoice := ""
	for i := range items {
		if items[i].InvoiceNumber != prevInvoice {
			prevInvoice = items[i].InvoiceNumber
			line = 0
		}
		line++
		items[i].LineNumber = line
	}
}

// Totals holds the run-level verification sums.
type Totals struct {
	SourceTotal   float64
	IncludedNet   float64
	IncludedGross float64
	Difference    float64
	PerfectMatch  bool
	IncludedLines int
}

// matchTolerance is the acceptance criterion: decomposed included net amounts
// must land within one currency unit of the source total.
const matchTolerance = 1.0

// ComputeTotals sums included line items and compares against the source
// rows' authoritative totals.
func ComputeTotals(rows []model.BillingRow, items []model.LineItem) Totals {
	var t Totals
	for _, r := range rows {
		t.SourceTotal += r.TotalCost
	}
	for _, it := range items {
		if !it.Included {
			continue
		}
		t.IncludedNet += it.Net
		t.IncludedGross += it.Gross
		t.IncludedLines++
	}
	t.Difference = math.Abs(t.SourceTotal - t.IncludedNet)
	t.PerfectMatch = t.Difference < matchTolerance
	return t
}
