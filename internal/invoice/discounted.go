package invoice

import (
	"github.com/sells-group/billflow-cli/internal/model"
	"github.com/sells-group/billflow-cli/internal/tariff"
)

// DecomposeDiscounted is the alternate strategy driven by the export's
// pre-discounted cost columns. Net consumption charges come straight from
// "Cost with discount peak/off-peak"; discounts are derived as gross minus
// net and kept display-only; fixed charges carry their raw amounts. No
// reconciliation factor is applied, so perfect_match can fail on inputs where
// the discounted-cost columns disagree with gross minus discount.
func DecomposeDiscounted(row model.BillingRow, class tariff.Class, payer Payer, vatRate float64) []model.LineItem {
	b := &itemBuilder{row: row, payer: payer, vatRate: vatRate}

	if row.GrossPeakCost > 0 {
		b.emit(class.GrossPeakCode, class.GrossPeakDesc, model.UsagePeak,
			row.PeakConsumption, unitKWh, row.TariffPeak, row.GrossPeakCost, false)
	}

	// Discount derived from the cost columns, shown for transparency only.
	if d := row.GrossPeakCost - row.CostWithDiscountPeak; d > 0 {
		amount := -d
		b.emit(model.CodeDiscountPeak, descDiscountPeak, model.UsagePeak,
			row.PeakConsumption, unitKWh, safeUnitPrice(amount, row.PeakConsumption), amount, false)
	}

	if row.GrossOffPeakCost > 0 {
		b.emit(class.GrossOffPeakCode, class.GrossOffPeakDesc, model.UsageOffPeak,
			row.OffPeakConsumption, unitKWh, row.TariffOffPeak, row.GrossOffPeakCost, false)
	}

	if d := row.GrossOffPeakCost - row.CostWithDiscountOffPeak; d > 0 {
		amount := -d
		b.emit(model.CodeDiscountOffPeak, descDiscountOffPeak, model.UsageOffPeak,
			row.OffPeakConsumption, unitKWh, safeUnitPrice(amount, row.OffPeakConsumption), amount, false)
	}

	if row.CostWithDiscountPeak > 0 {
		b.emit(class.PeakCode, class.PeakDesc, model.UsagePeak,
			row.PeakConsumption, unitKWh, safeUnitPrice(row.CostWithDiscountPeak, row.PeakConsumption),
			row.CostWithDiscountPeak, true)
	}
	if row.CostWithDiscountOffPeak > 0 {
		b.emit(class.OffPeakCode, class.OffPeakDesc, model.UsageOffPeak,
			row.OffPeakConsumption, unitKWh, safeUnitPrice(row.CostWithDiscountOffPeak, row.OffPeakConsumption),
			row.CostWithDiscountOffPeak, true)
	}

	if row.Supply > 0 {
		b.emitFixed(model.CodeSupply, descSupply, row.Supply)
	}
	if row.Distribution > 0 {
		b.emitFixed(model.CodeDistribution, descDistribution, row.Distribution)
	}
	if row.KVACost > 0 {
		b.emitFixed(model.CodeKVA, descKVA, row.KVACost)
	}
	if row.PowerFactorFine > 0 {
		b.emitFixed(model.CodePowerFactorFine, descPowerFactorFine, row.PowerFactorFine)
	}
	if row.VariousCharges > 0 {
		b.emitFixed(model.CodeVariousCharges, descVariousCharges, row.VariousCharges)
	}
	if row.VariousCredits != 0 {
		amount := row.VariousCredits
		if amount > 0 {
			amount = -amount // credits always reduce the bill
		}
		b.emitFixed(model.CodeVariousCredits, descVariousCredits, amount)
	}

	return b.items
}
