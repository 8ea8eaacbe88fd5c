package invoice

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billflow-cli/internal/model"
	"github.com/sells-group/billflow-cli/internal/source"
	"github.com/sells-group/billflow-cli/internal/tariff"
)

// Strategy selects which decomposition path a conversion uses.
type Strategy string

const (
	// StrategyFactor reconciles via a per-row scalar adjustment factor so
	// included items sum exactly to the authoritative total. Canonical.
	StrategyFactor Strategy = "factor"
	// StrategyDiscounted trusts the export's pre-discounted cost columns and
	// performs no reconciliation.
	StrategyDiscounted Strategy = "discounted"
)

// ParseStrategy validates a strategy name from config or flags.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyFactor, StrategyDiscounted:
		return Strategy(s), nil
	case "":
		return StrategyFactor, nil
	default:
		return "", eris.Errorf("invoice: unknown strategy %q (want factor or discounted)", s)
	}
}

// DefaultVATRate is the fixed statutory VAT rate applied to every line item.
const DefaultVATRate = 0.18

// Options configures a conversion.
type Options struct {
	Strategy Strategy
	VATRate  float64
	Payer    Payer
}

// Conversion is the in-memory output of converting one file's billing rows.
type Conversion struct {
	Items       []model.LineItem
	Totals      Totals
	Diagnostics []model.Diagnostic
	Period      time.Time
	SourceRows  int
}

// Convert decomposes billing rows into the sorted, renumbered line-item table
// and computes the run-level verification totals. Rows are independent; all
// cross-row work happens in the final sort and totals pass.
func Convert(rows []model.BillingRow, opts Options) (*Conversion, error) {
	if len(rows) == 0 {
		return nil, eris.New("invoice: no billing rows to convert")
	}
	if opts.VATRate == 0 {
		opts.VATRate = DefaultVATRate
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyFactor
	}

	period, err := source.ParseDate(rows[0].PeriodStart)
	if err != nil {
		return nil, eris.Wrap(err, "invoice: billing period from first row")
	}

	conv := &Conversion{Period: period, SourceRows: len(rows)}

	for _, row := range rows {
		class, known := tariff.Classify(row.TariffID)
		if !known {
			conv.Diagnostics = append(conv.Diagnostics, model.Diagnostic{
				Kind:    model.DiagUnknownTariff,
				Invoice: row.DocumentNumber,
				Detail:  fmt.Sprintf("tariff %q not recognized, using %s codes", row.TariffID, class.Name),
			})
			zap.L().Warn("unknown tariff, falling back to low-voltage TOU codes",
				zap.String("invoice", row.DocumentNumber),
				zap.String("tariff_id", row.TariffID),
			)
		}

		var items []model.LineItem
		switch opts.Strategy {
		case StrategyDiscounted:
			items = DecomposeDiscounted(row, class, opts.Payer, opts.VATRate)
		default:
			factor, ok := AdjustmentFactor(row)
			if !ok {
				conv.Diagnostics = append(conv.Diagnostics, model.Diagnostic{
					Kind:    model.DiagZeroComponentSum,
					Invoice: row.DocumentNumber,
					Detail: fmt.Sprintf("components sum %.2f <= 0 with total %.2f, factor defaulted to 1.0",
						ComponentsSum(row), row.TotalCost),
				})
				zap.L().Warn("zero component sum, reconciliation skipped",
					zap.String("invoice", row.DocumentNumber),
					zap.Float64("total_cost", row.TotalCost),
				)
			}
			items = DecomposeFactor(row, class, applyFactor(row, factor), opts.Payer, opts.VATRate)
		}

		conv.Items = append(conv.Items, items...)
	}

	SortAndNumber(conv.Items)
	conv.Totals = ComputeTotals(rows, conv.Items)

	zap.L().Info("conversion complete",
		zap.Int("source_rows", conv.SourceRows),
		zap.Int("line_items", len(conv.Items)),
		zap.Float64("source_total", conv.Totals.SourceTotal),
		zap.Float64("included_net", conv.Totals.IncludedNet),
		zap.Float64("difference", conv.Totals.Difference),
		zap.Bool("perfect_match", conv.Totals.PerfectMatch),
	)

	return conv, nil
}

// Summary assembles the process-result contract the calling backend consumes.
func (c *Conversion) Summary() model.ConversionResult {
	return model.ConversionResult{
		Success:       true,
		SourceTotal:   c.Totals.SourceTotal,
		ComputedTotal: c.Totals.IncludedNet,
		TotalWithVAT:  c.Totals.IncludedGross,
		Difference:    c.Totals.Difference,
		PerfectMatch:  c.Totals.PerfectMatch,
		SourceRows:    c.SourceRows,
		TotalLines:    len(c.Items),
		IncludedLines: c.Totals.IncludedLines,
		BillingMonth:  int(c.Period.Month()),
		BillingYear:   c.Period.Year(),
		BillingPeriod: c.Period.Format("2006-01"),
		MonthDisplay:  c.Period.Format("January_2006"),
		Diagnostics:   c.Diagnostics,
	}
}
