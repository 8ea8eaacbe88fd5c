package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billflow-cli/internal/model"
)

func TestPriority(t *testing.T) {
	assert.Equal(t, 1, priority("P-5008"))
	assert.Equal(t, 2, priority(model.CodeDiscountPeak))
	assert.Equal(t, 3, priority("P-5009"))
	assert.Equal(t, 4, priority(model.CodeDiscountOffPeak))
	assert.Equal(t, 6, priority(model.CodeSupply))
	assert.Equal(t, 7, priority(model.CodeDistribution))
	assert.Equal(t, 8, priority(model.CodeKVA))
	assert.Equal(t, 11, priority(model.CodeVariousCredits))

	// Consumption codes are unlisted and take the default slot.
	assert.Equal(t, 5, priority("P-1008"))
	assert.Equal(t, 5, priority("P-2009"))
	assert.Equal(t, 5, priority("something-else"))
}

func TestSortAndNumber(t *testing.T) {
	items := []model.LineItem{
		{InvoiceNumber: "456", Code: model.CodeSupply},
		{InvoiceNumber: "123", Code: model.CodeVariousCredits},
		{InvoiceNumber: "123", Code: "P-1008"},
		{InvoiceNumber: "123", Code: "P-5008"},
		{InvoiceNumber: "123", Code: model.CodeDiscountPeak},
		{InvoiceNumber: "456", Code: "P-2008"},
	}

	SortAndNumber(items)

	codes := make([]string, len(items))
	for i, it := range items {
		codes[i] = it.InvoiceNumber + ":" + it.Code
	}
	assert.Equal(t, []string{
		"123:P-5008",
		"123:" + model.CodeDiscountPeak,
		"123:P-1008",
		"123:" + model.CodeVariousCredits,
		"456:P-2008",
		"456:" + model.CodeSupply,
	}, codes)

	// Line numbers restart per invoice.
	assert.Equal(t, []int{1, 2, 3, 4, 1, 2}, []int{
		items[0].LineNumber, items[1].LineNumber, items[2].LineNumber,
		items[3].LineNumber, items[4].LineNumber, items[5].LineNumber,
	})
}

func TestSortAndNumber_NumericInvoiceOrder(t *testing.T) {
	items := []model.LineItem{
		{InvoiceNumber: "900", Code: "P-1008"},
		{InvoiceNumber: "1200", Code: "P-1008"},
	}
	SortAndNumber(items)
	assert.Equal(t, "900", items[0].InvoiceNumber, "numeric order, not lexicographic")
}

func TestSortAndNumber_StableWithinPriority(t *testing.T) {
	items := []model.LineItem{
		{InvoiceNumber: "1", Code: "P-1008", Usage: model.UsagePeak},
		{InvoiceNumber: "1", Code: "P-1009", Usage: model.UsageOffPeak},
	}
	SortAndNumber(items)
	// Both share the default priority; emission order must survive.
	assert.Equal(t, "P-1008", items[0].Code)
	assert.Equal(t, "P-1009", items[1].Code)
}

func TestComputeTotals(t *testing.T) {
	rows := []model.BillingRow{
		{TotalCost: 1000},
		{TotalCost: 414.5},
	}
	items := []model.LineItem{
		{Net: 1000, Gross: 1180, Included: true},
		{Net: 414.4, Gross: 489, Included: true},
		{Net: 999999, Gross: 999999, Included: false}, // display-only, ignored
	}

	tot := ComputeTotals(rows, items)
	assert.InDelta(t, 1414.5, tot.SourceTotal, 1e-9)
	assert.InDelta(t, 1414.4, tot.IncludedNet, 1e-9)
	assert.InDelta(t, 1669, tot.IncludedGross, 1e-9)
	assert.InDelta(t, 0.1, tot.Difference, 1e-9)
	assert.True(t, tot.PerfectMatch)
	assert.Equal(t, 2, tot.IncludedLines)
}

func TestComputeTotals_Mismatch(t *testing.T) {
	rows := []model.BillingRow{{TotalCost: 100}}
	items := []model.LineItem{{Net: 95, Included: true}}

	tot := ComputeTotals(rows, items)
	require.False(t, tot.PerfectMatch)
	assert.InDelta(t, 5, tot.Difference, 1e-9)
}
