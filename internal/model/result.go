package model

import "time"

// DiagnosticKind categorizes recoverable data-quality issues found during a run.
type DiagnosticKind string

const (
	// DiagNumericColumnSkipped: a keyword-selected numeric column failed
	// comma-stripped parsing and was left unconverted.
	DiagNumericColumnSkipped DiagnosticKind = "numeric_column_skipped"
	// DiagZeroComponentSum: reconciliation denominator was <= 0 while the
	// authoritative total was non-zero; the factor defaulted to 1.0.
	DiagZeroComponentSum DiagnosticKind = "zero_component_sum"
	// DiagUnknownTariff: tariff ID matched no known class and fell back to
	// low-voltage TOU codes.
	DiagUnknownTariff DiagnosticKind = "unknown_tariff"
)

// Diagnostic is a non-fatal data-quality warning attached to the run result.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Invoice string         `json:"invoice,omitempty"`
	Detail  string         `json:"detail"`
}

// ConversionResult is the structured summary the calling backend consumes to
// decide whether to accept a conversion. PerfectMatch distinguishes "succeeded
// but totals don't reconcile" from outright failure.
type ConversionResult struct {
	Success       bool    `json:"success"`
	SourceTotal   float64 `json:"source_total"`
	ComputedTotal float64 `json:"computed_total"`
	TotalWithVAT  float64 `json:"total_with_vat"`
	Difference    float64 `json:"difference"`
	PerfectMatch  bool    `json:"perfect_match"`

	SourceRows    int `json:"source_rows"`
	TotalLines    int `json:"total_lines"`
	IncludedLines int `json:"included_lines"`

	BillingMonth  int    `json:"billing_month"`
	BillingYear   int    `json:"billing_year"`
	BillingPeriod string `json:"billing_period"`
	MonthDisplay  string `json:"month_display"`

	TSVFilename   string `json:"tsv_filename,omitempty"`
	TSVPath       string `json:"tsv_path,omitempty"`
	ExcelFilename string `json:"excel_filename,omitempty"`
	ExcelPath     string `json:"excel_path,omitempty"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// RunStatus tracks the lifecycle of a stored conversion run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded conversion of one source file.
type Run struct {
	ID         string            `json:"id"`
	SourceFile string            `json:"source_file"`
	Status     RunStatus         `json:"status"`
	Result     *ConversionResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
