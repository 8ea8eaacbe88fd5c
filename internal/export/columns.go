// Package export writes the normalized line-item table as TSV and XLSX files.
package export

import (
	"strconv"

	"github.com/sells-group/billflow-cli/internal/model"
)

// outputColumns is the fixed 20-column output schema, in the exact order the
// downstream invoicing backend expects. Header text (including the trailing
// space on the net-amount column) must stay byte-identical to the legacy
// format.
var outputColumns = []string{
	"מספר שורה",
	"מספר חשבונית",
	"חשבון לקוח משלם",
	"שם הלקוח המשלם",
	"שם משתמש עיקרי",
	"מספר  מזהה לחיבור",
	`מספר מונה חח"י`,
	"מספר חוזה",
	"מזהה פריט",
	"תיאור",
	"תאריך התחלה",
	"תאריך הסיום",
	`מש"ב`,
	"כמות",
	"יחידת מידה",
	"מחיר יחידה",
	"סכום ",
	`סכום המע"מ`,
	`סכום כולל מע"מ`,
	"כלול בחיוב",
}

// Inclusion flag values in the output locale.
const (
	includedYes = "כן"
	includedNo  = "לא"
)

func inclusionFlag(included bool) string {
	if included {
		return includedYes
	}
	return includedNo
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// itemToRecord flattens a line item into output-schema column order.
func itemToRecord(it model.LineItem) []string {
	return []string{
		strconv.Itoa(it.LineNumber),
		it.InvoiceNumber,
		it.PayerAccount,
		it.PayerName,
		it.SiteName,
		it.SiteID,
		it.MeterNumber,
		it.ContractNumber,
		it.Code,
		it.Description,
		it.PeriodStart,
		it.PeriodEnd,
		string(it.Usage),
		formatNumber(it.Quantity),
		it.Unit,
		formatNumber(it.UnitPrice),
		formatNumber(it.Net),
		formatNumber(it.VAT),
		formatNumber(it.Gross),
		inclusionFlag(it.Included),
	}
}
