// Package model defines the billing conversion domain types shared across packages.
package model

// BillingRow is one metered site for one billing period, as exported by the
// utility. Values are already comma-stripped and parsed; dates are canonical
// dd/mm/yyyy strings.
type BillingRow struct {
	DocumentNumber string `json:"document_number"`
	SiteName       string `json:"site_name"`
	SiteID         string `json:"site_id"`
	MeterNumber    string `json:"meter_number"`
	ContractNumber string `json:"contract_number"`
	TariffID       string `json:"tariff_id"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`

	PeakConsumption    float64 `json:"peak_consumption"`
	OffPeakConsumption float64 `json:"offpeak_consumption"`
	TariffPeak         float64 `json:"tariff_peak"`
	TariffOffPeak      float64 `json:"tariff_offpeak"`

	// Gross energy costs before discount, per TOU tariff.
	GrossPeakCost    float64 `json:"gross_peak_cost"`
	GrossOffPeakCost float64 `json:"gross_offpeak_cost"`

	DiscountPeak    float64 `json:"discount_peak"`
	DiscountOffPeak float64 `json:"discount_offpeak"`

	// Pre-discounted cost columns, used by the discounted strategy.
	CostWithDiscountPeak    float64 `json:"cost_with_discount_peak"`
	CostWithDiscountOffPeak float64 `json:"cost_with_discount_offpeak"`

	Distribution    float64 `json:"distribution"`
	Supply          float64 `json:"supply"`
	KVACost         float64 `json:"kva_cost"`
	PowerFactorFine float64 `json:"power_factor_fine"`
	VariousCharges  float64 `json:"various_charges"`
	VariousCredits  float64 `json:"various_credits"`

	// TotalCost is the authoritative VAT-inclusive total the decomposed
	// included line items must reconcile against.
	TotalCost float64 `json:"total_cost"`
}

// UsageTag marks the time-of-use window a line item belongs to.
type UsageTag string

// Usage tags in the output locale.
const (
	UsagePeak    UsageTag = "פסגה"
	UsageOffPeak UsageTag = "שפל"
	UsageNone    UsageTag = ""
)

// Charge codes outside the tariff-dependent consumption/gross families.
const (
	CodeSupply          = "P-0001"
	CodeDistribution    = "P-0005"
	CodeKVA             = "P-0011"
	CodeDiscountPeak    = "P-6001"
	CodeDiscountOffPeak = "P-6002"
	CodePowerFactorFine = "P-8001"
	CodeVariousCharges  = "P-9001"
	CodeVariousCredits  = "P-9002"
)

// LineItem is one normalized invoice charge row in the output table.
// Items never change after creation; line numbers are assigned by the
// aggregator after the final per-invoice sort.
type LineItem struct {
	LineNumber     int      `json:"line_number"`
	InvoiceNumber  string   `json:"invoice_number"`
	PayerAccount   string   `json:"payer_account"`
	PayerName      string   `json:"payer_name"`
	SiteName       string   `json:"site_name"`
	SiteID         string   `json:"site_id"`
	MeterNumber    string   `json:"meter_number"`
	ContractNumber string   `json:"contract_number"`
	Code           string   `json:"code"`
	Description    string   `json:"description"`
	PeriodStart    string   `json:"period_start"`
	PeriodEnd      string   `json:"period_end"`
	Usage          UsageTag `json:"usage"`
	Quantity       float64  `json:"quantity"`
	Unit           string   `json:"unit"`
	UnitPrice      float64  `json:"unit_price"`
	Net            float64  `json:"net"`
	VAT            float64  `json:"vat"`
	Gross          float64  `json:"gross"`
	Included       bool     `json:"included"`
}
