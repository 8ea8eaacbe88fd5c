package export

import (
	"fmt"
	"time"
)

// Filenames returns the TSV and XLSX file names for a billing period. The TSV
// name carries a run timestamp so repeated conversions of the same month never
// clobber each other; the XLSX name is stable per period.
func Filenames(period, now time.Time) (tsvName, xlsxName string) {
	tsvName = fmt.Sprintf("invoice_lines - %s_%s.txt",
		period.Format("200601"), now.Format("20060102_150405"))
	xlsxName = period.Format("January_2006") + "_FINAL.xlsx"
	return tsvName, xlsxName
}
