package invoice

import (
	"github.com/sells-group/billflow-cli/internal/model"
	"github.com/sells-group/billflow-cli/internal/tariff"
)

// Fixed-charge descriptions (source locale).
const (
	descSupply          = "אספקה"
	descDistribution    = "חלוקה"
	descKVA             = "עלות החיבור"
	descDiscountPeak    = "הנחה פסגה"
	descDiscountOffPeak = "הנחה שפל"
	descPowerFactorFine = "קנס מקדם הספק"
	descVariousCharges  = "חיובים שונים"
	descVariousCredits  = "זיכויים שונים"
)

const unitKWh = "kWh"

// itemBuilder stamps shared invoice fields onto each emitted line item and
// applies the VAT arithmetic.
type itemBuilder struct {
	row     model.BillingRow
	payer   Payer
	vatRate float64
	items   []model.LineItem
}

// Payer identifies the paying account stamped on every line item.
type Payer struct {
	Account string
	Name    string
}

func (b *itemBuilder) emit(code, desc string, usage model.UsageTag, qty float64, unit string, unitPrice, net float64, included bool) {
	b.items = append(b.items, model.LineItem{
		InvoiceNumber:  b.row.DocumentNumber,
		PayerAccount:   b.payer.Account,
		PayerName:      b.payer.Name,
		SiteName:       b.row.SiteName,
		SiteID:         b.row.SiteID,
		MeterNumber:    b.row.MeterNumber,
		ContractNumber: b.row.ContractNumber,
		Code:           code,
		Description:    desc,
		PeriodStart:    b.row.PeriodStart,
		PeriodEnd:      b.row.PeriodEnd,
		Usage:          usage,
		Quantity:       qty,
		Unit:           unit,
		UnitPrice:      unitPrice,
		Net:            net,
		VAT:            net * b.vatRate,
		Gross:          net * (1 + b.vatRate),
		Included:       included,
	})
}

// emitFixed emits a quantity-1 charge whose unit price equals its amount.
func (b *itemBuilder) emitFixed(code, desc string, amount float64) {
	b.emit(code, desc, model.UsageNone, 1.0, "", amount, amount, true)
}

// safeUnitPrice guards the zero-quantity division: an empty consumption
// window yields unit price 0, not a division fault.
func safeUnitPrice(amount, qty float64) float64 {
	if qty > 0 {
		return amount / qty
	}
	return 0
}

// DecomposeFactor is the canonical adjustment-factor strategy. Gross display
// items carry raw amounts; every included component carries its adjusted
// amount so the row reconciles exactly against the authoritative total.
// Emission order follows the source presentation order; the aggregator's
// priority sort decides final line order.
func DecomposeFactor(row model.BillingRow, class tariff.Class, adj adjusted, payer Payer, vatRate float64) []model.LineItem {
	b := &itemBuilder{row: row, payer: payer, vatRate: vatRate}

	// Gross peak display item: raw amount, raw tariff, excluded from billing.
	if row.GrossPeakCost > 0 {
		b.emit(class.GrossPeakCode, class.GrossPeakDesc, model.UsagePeak,
			row.PeakConsumption, unitKWh, row.TariffPeak, row.GrossPeakCost, false)
	}

	if row.DiscountPeak > 0 {
		amount := -adj.DiscountPeak
		b.emit(model.CodeDiscountPeak, descDiscountPeak, model.UsagePeak,
			row.PeakConsumption, unitKWh, safeUnitPrice(amount, row.PeakConsumption), amount, true)
	}

	if row.GrossOffPeakCost > 0 {
		b.emit(class.GrossOffPeakCode, class.GrossOffPeakDesc, model.UsageOffPeak,
			row.OffPeakConsumption, unitKWh, row.TariffOffPeak, row.GrossOffPeakCost, false)
	}

	if row.DiscountOffPeak > 0 {
		amount := -adj.DiscountOffPeak
		b.emit(model.CodeDiscountOffPeak, descDiscountOffPeak, model.UsageOffPeak,
			row.OffPeakConsumption, unitKWh, safeUnitPrice(amount, row.OffPeakConsumption), amount, true)
	}

	// Net consumption charges: adjusted gross energy cost, included.
	if row.GrossPeakCost > 0 {
		b.emit(class.PeakCode, class.PeakDesc, model.UsagePeak,
			row.PeakConsumption, unitKWh, safeUnitPrice(adj.GrossPeak, row.PeakConsumption), adj.GrossPeak, true)
	}
	if row.GrossOffPeakCost > 0 {
		b.emit(class.OffPeakCode, class.OffPeakDesc, model.UsageOffPeak,
			row.OffPeakConsumption, unitKWh, safeUnitPrice(adj.GrossOffPeak, row.OffPeakConsumption), adj.GrossOffPeak, true)
	}

	if adj.Supply > 0 {
		b.emitFixed(model.CodeSupply, descSupply, adj.Supply)
	}
	if adj.Distribution > 0 {
		b.emitFixed(model.CodeDistribution, descDistribution, adj.Distribution)
	}
	if adj.KVA > 0 {
		b.emitFixed(model.CodeKVA, descKVA, adj.KVA)
	}
	if adj.PowerFactorFine > 0 {
		b.emitFixed(model.CodePowerFactorFine, descPowerFactorFine, adj.PowerFactorFine)
	}
	if adj.VariousCharges > 0 {
		b.emitFixed(model.CodeVariousCharges, descVariousCharges, adj.VariousCharges)
	}
	// Credits keep their sign and are emitted whenever non-zero.
	if adj.VariousCredits != 0 {
		b.emitFixed(model.CodeVariousCredits, descVariousCredits, adj.VariousCredits)
	}

	return b.items
}
