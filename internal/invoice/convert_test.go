package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billflow-cli/internal/model"
)

func TestConvert_EndToEnd(t *testing.T) {
	rows := []model.BillingRow{testRow()}

	conv, err := Convert(rows, Options{Payer: testPayer})
	require.NoError(t, err)

	assert.Empty(t, conv.Diagnostics)
	assert.Equal(t, 1, conv.SourceRows)
	require.Len(t, conv.Items, 9)

	// Sorted: gross peak, peak discount, gross off-peak, off-peak discount,
	// consumption (default slot, emission order), supply, distribution, KVA.
	codes := make([]string, len(conv.Items))
	for i, it := range conv.Items {
		codes[i] = it.Code
	}
	assert.Equal(t, []string{
		"P-5008", "P-6001", "P-5009", "P-6002",
		"P-1008", "P-1009",
		"P-0001", "P-0005", "P-0011",
	}, codes)

	// Dense line numbers after sorting.
	for i, it := range conv.Items {
		assert.Equal(t, i+1, it.LineNumber)
	}

	// Reconciliation: included net sum matches the authoritative total.
	assert.True(t, conv.Totals.PerfectMatch)
	assert.InDelta(t, 1414.88, conv.Totals.IncludedNet, 1e-6)
	assert.InDelta(t, 1414.88, conv.Totals.SourceTotal, 1e-9)

	sum := conv.Summary()
	assert.True(t, sum.Success)
	assert.True(t, sum.PerfectMatch)
	assert.Equal(t, 9, sum.TotalLines)
	assert.Equal(t, 7, sum.IncludedLines)
	assert.Equal(t, 1, sum.BillingMonth)
	assert.Equal(t, 2024, sum.BillingYear)
	assert.Equal(t, "2024-01", sum.BillingPeriod)
	assert.Equal(t, "January_2024", sum.MonthDisplay)
}

func TestConvert_UnknownTariffDiagnostic(t *testing.T) {
	row := testRow()
	row.TariffID = "MYSTERY PLAN"

	conv, err := Convert([]model.BillingRow{row}, Options{Payer: testPayer})
	require.NoError(t, err)

	require.Len(t, conv.Diagnostics, 1)
	assert.Equal(t, model.DiagUnknownTariff, conv.Diagnostics[0].Kind)
	assert.Equal(t, "123", conv.Diagnostics[0].Invoice)

	// Fallback uses low-voltage TOU codes.
	assert.Equal(t, "P-5004", conv.Items[0].Code)
}

func TestConvert_ZeroComponentSumDiagnostic(t *testing.T) {
	row := model.BillingRow{
		DocumentNumber: "77",
		PeriodStart:    "01/03/2024",
		PeriodEnd:      "31/03/2024",
		TariffID:       "TOU",
		TotalCost:      250, // nothing to decompose, factor cannot reconcile
	}

	conv, err := Convert([]model.BillingRow{row}, Options{Payer: testPayer})
	require.NoError(t, err)

	require.Len(t, conv.Diagnostics, 1)
	assert.Equal(t, model.DiagZeroComponentSum, conv.Diagnostics[0].Kind)
	assert.False(t, conv.Totals.PerfectMatch)
}

func TestConvert_DiscountedStrategy(t *testing.T) {
	row := testRow()
	row.CostWithDiscountPeak = 900
	row.CostWithDiscountOffPeak = 450

	conv, err := Convert([]model.BillingRow{row}, Options{
		Strategy: StrategyDiscounted,
		Payer:    testPayer,
	})
	require.NoError(t, err)

	// 900 + 450 + 20 + 10 + 5 = 1385 included; no reconciliation happens,
	// so the 1414.88 source total does not match.
	assert.InDelta(t, 1385, conv.Totals.IncludedNet, 1e-9)
	assert.False(t, conv.Totals.PerfectMatch)
}

func TestConvert_MultipleInvoicesSorted(t *testing.T) {
	a := testRow()
	b := testRow()
	b.DocumentNumber = "99"

	conv, err := Convert([]model.BillingRow{a, b}, Options{Payer: testPayer})
	require.NoError(t, err)

	assert.Equal(t, "99", conv.Items[0].InvoiceNumber)
	assert.Equal(t, "123", conv.Items[len(conv.Items)-1].InvoiceNumber)
	assert.Equal(t, 1, conv.Items[0].LineNumber)
}

func TestConvert_NoRows(t *testing.T) {
	_, err := Convert(nil, Options{})
	require.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyFactor, s)

	s, err = ParseStrategy("discounted")
	require.NoError(t, err)
	assert.Equal(t, StrategyDiscounted, s)

	_, err = ParseStrategy("bogus")
	assert.Error(t, err)
}
