package source

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billflow-cli/internal/model"
)

// Source column names as emitted by the utility export. Lookups are
// normalized, so parenthesized suffixes and case differences don't matter.
const (
	colDocumentNumber   = "Document number"
	colSiteName         = "Site name"
	colSiteID           = "Site ID"
	colMeterNumber      = "Meter IEC long number"
	colContractNumber   = "Contract number"
	colTariffID         = "Tariff ID"
	colFrom             = "From"
	colTo               = "To"
	colPeakConsumption  = "Peak consumption"
	colOffPeakConsump   = "Off-peak consumption"
	colTariffPeak       = "TOU tariff peak"
	colTariffOffPeak    = "TOU tariff off-peak"
	colGrossPeakCost    = "Energy cost peak by TOU tariff"
	colGrossOffPeakCost = "Energy cost off-peak by TOU tariff"
	colDiscountPeak     = "Total discount peak (ILS)"
	colDiscountOffPeak  = "Total discount off-peak (ILS)"
	colCostWithDiscPeak = "Cost with discount peak"
	colCostWithDiscOffP = "Cost with discount off-peak"
	colDistribution     = "Distribution"
	colSupply           = "Supply"
	colKVACost          = "KVA cost"
	colPowerFactorFine  = "Power factor fine"
	colVariousCharges   = "Various charges"
	colVariousCredits   = "Various credits"
	colTotalCost        = "Total cost"
)

// mandatoryColumns must be present or the run aborts.
var mandatoryColumns = []string{colDocumentNumber, colFrom, colTo, colTotalCost}

// ExtractRows normalizes the grid and converts it to typed billing rows.
// Shadow total rows (empty document number) are dropped before processing.
// Returns the rows, any data-quality diagnostics, and a fatal error when a
// mandatory column is missing or a period date cannot be parsed; an
// unparseable date cannot be skipped per-row without silently shifting the
// run-level source total.
func ExtractRows(g *Grid) ([]model.BillingRow, []model.Diagnostic, error) {
	for _, name := range mandatoryColumns {
		if !g.HasColumn(name) {
			return nil, nil, eris.Errorf("source: missing mandatory column %q", name)
		}
	}

	diags := NormalizeNumericColumns(g)

	rows := make([]model.BillingRow, 0, len(g.Rows))
	for i, raw := range g.Rows {
		doc := trimIDField(g.Value(raw, colDocumentNumber))
		if doc == "" || strings.EqualFold(doc, "nan") {
			continue // shadow total row
		}

		from, err := NormalizeDate(g.Value(raw, colFrom))
		if err != nil {
			return nil, nil, eris.Wrapf(err, "source: row %d (invoice %s) period start", i+2, doc)
		}
		to, err := NormalizeDate(g.Value(raw, colTo))
		if err != nil {
			return nil, nil, eris.Wrapf(err, "source: row %d (invoice %s) period end", i+2, doc)
		}

		rows = append(rows, model.BillingRow{
			DocumentNumber: doc,
			SiteName:       strings.TrimSpace(g.Value(raw, colSiteName)),
			SiteID:         trimIDField(g.Value(raw, colSiteID)),
			MeterNumber:    trimIDField(g.Value(raw, colMeterNumber)),
			ContractNumber: trimIDField(g.Value(raw, colContractNumber)),
			TariffID:       strings.TrimSpace(g.Value(raw, colTariffID)),
			PeriodStart:    from,
			PeriodEnd:      to,

			PeakConsumption:    parseFloat64Or(g.Value(raw, colPeakConsumption), 0),
			OffPeakConsumption: parseFloat64Or(g.Value(raw, colOffPeakConsump), 0),
			TariffPeak:         parseFloat64Or(g.Value(raw, colTariffPeak), 0),
			TariffOffPeak:      parseFloat64Or(g.Value(raw, colTariffOffPeak), 0),

			GrossPeakCost:    parseFloat64Or(g.Value(raw, colGrossPeakCost), 0),
			GrossOffPeakCost: parseFloat64Or(g.Value(raw, colGrossOffPeakCost), 0),
			DiscountPeak:     parseFloat64Or(g.Value(raw, colDiscountPeak), 0),
			DiscountOffPeak:  parseFloat64Or(g.Value(raw, colDiscountOffPeak), 0),

			CostWithDiscountPeak:    parseFloat64Or(g.Value(raw, colCostWithDiscPeak), 0),
			CostWithDiscountOffPeak: parseFloat64Or(g.Value(raw, colCostWithDiscOffP), 0),

			Distribution:    parseFloat64Or(g.Value(raw, colDistribution), 0),
			Supply:          parseFloat64Or(g.Value(raw, colSupply), 0),
			KVACost:         parseFloat64Or(g.Value(raw, colKVACost), 0),
			PowerFactorFine: parseFloat64Or(g.Value(raw, colPowerFactorFine), 0),
			VariousCharges:  parseFloat64Or(g.Value(raw, colVariousCharges), 0),
			VariousCredits:  parseFloat64Or(g.Value(raw, colVariousCredits), 0),

			TotalCost: parseFloat64Or(g.Value(raw, colTotalCost), 0),
		})
	}

	return rows, diags, nil
}
