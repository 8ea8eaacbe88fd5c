package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/billflow-cli/internal/model"
)

func TestComponentsSum(t *testing.T) {
	row := model.BillingRow{
		GrossPeakCost:    1000,
		GrossOffPeakCost: 500,
		DiscountPeak:     100,
		DiscountOffPeak:  50,
		Distribution:     20,
		Supply:           10,
		KVACost:          5,
	}
	assert.InDelta(t, 1385.0, ComponentsSum(row), 1e-9)
}

func TestAdjustmentFactor(t *testing.T) {
	row := model.BillingRow{
		GrossPeakCost:    1000,
		GrossOffPeakCost: 500,
		DiscountPeak:     100,
		DiscountOffPeak:  50,
		Distribution:     20,
		Supply:           10,
		KVACost:          5,
		TotalCost:        1414.88,
	}
	factor, ok := AdjustmentFactor(row)
	assert.True(t, ok)
	assert.InDelta(t, 1.0216, factor, 0.0001)
}

func TestAdjustmentFactor_ZeroSumZeroTotal(t *testing.T) {
	factor, ok := AdjustmentFactor(model.BillingRow{})
	assert.True(t, ok, "zero total with zero components is not an anomaly")
	assert.Equal(t, 1.0, factor)
}

func TestAdjustmentFactor_ZeroSumNonzeroTotal(t *testing.T) {
	row := model.BillingRow{TotalCost: 500}
	factor, ok := AdjustmentFactor(row)
	assert.False(t, ok, "non-zero total over zero components must be flagged")
	assert.Equal(t, 1.0, factor)
}

func TestAdjustmentFactor_NegativeSum(t *testing.T) {
	row := model.BillingRow{VariousCredits: -200, TotalCost: 100}
	factor, ok := AdjustmentFactor(row)
	assert.False(t, ok)
	assert.Equal(t, 1.0, factor)
}

func TestApplyFactor(t *testing.T) {
	row := model.BillingRow{
		GrossPeakCost:   1000,
		DiscountPeak:    100,
		Supply:          10,
		VariousCredits:  -5,
		PowerFactorFine: 2,
	}
	adj := applyFactor(row, 1.1)
	assert.InDelta(t, 1100, adj.GrossPeak, 1e-9)
	assert.InDelta(t, 110, adj.DiscountPeak, 1e-9)
	assert.InDelta(t, 11, adj.Supply, 1e-9)
	assert.InDelta(t, -5.5, adj.VariousCredits, 1e-9)
	assert.InDelta(t, 2.2, adj.PowerFactorFine, 1e-9)
}
