// Package invoice decomposes billing rows into reconciled invoice line items.
package invoice

import "github.com/sells-group/billflow-cli/internal/model"

// ComponentsSum is the reconciliation denominator: the row's derived charge
// components summed from raw (unadjusted) values.
func ComponentsSum(r model.BillingRow) float64 {
	return r.GrossPeakCost +
		r.GrossOffPeakCost -
		r.DiscountPeak -
		r.DiscountOffPeak +
		r.Distribution +
		r.Supply +
		r.KVACost +
		r.PowerFactorFine +
		r.VariousCharges +
		r.VariousCredits
}

// AdjustmentFactor computes the scalar applied uniformly to every adjustable
// component so the included line items sum exactly to the row's authoritative
// total. A non-positive components sum yields the identity factor; when the
// authoritative total is non-zero that is almost certainly a data anomaly, so
// ok=false lets the caller raise a diagnostic instead of passing silently.
func AdjustmentFactor(r model.BillingRow) (factor float64, ok bool) {
	sum := ComponentsSum(r)
	if sum > 0 {
		return r.TotalCost / sum, true
	}
	return 1.0, r.TotalCost == 0
}

// adjusted holds the row's components after the factor is applied.
type adjusted struct {
	GrossPeak       float64
	GrossOffPeak    float64
	DiscountPeak    float64
	DiscountOffPeak float64
	Distribution    float64
	Supply          float64
	KVA             float64
	PowerFactorFine float64
	VariousCharges  float64
	VariousCredits  float64
}

func applyFactor(r model.BillingRow, factor float64) adjusted {
	return adjusted{
		GrossPeak:       r.GrossPeakCost * factor,
		GrossOffPeak:    r.GrossOffPeakCost * factor,
		DiscountPeak:    r.DiscountPeak * factor,
		DiscountOffPeak: r.DiscountOffPeak * factor,
		Distribution:    r.Distribution * factor,
		Supply:          r.Supply * factor,
		KVA:             r.KVACost * factor,
		PowerFactorFine: r.PowerFactorFine * factor,
		VariousCharges:  r.VariousCharges * factor,
		VariousCredits:  r.VariousCredits * factor,
	}
}
