package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/billflow-cli/internal/model"
)

// amountFormat is the number format applied to the quantity, unit-price, and
// amount columns of the workbook.
const amountFormat = "0.000"

// WriteXLSX writes line items as a single-sheet workbook.
func WriteXLSX(path string, items []model.LineItem) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range outputColumns {
		header.AddCell().SetString(col)
	}

	for _, it := range items {
		row := sheet.AddRow()
		row.AddCell().SetInt(it.LineNumber)
		row.AddCell().SetString(it.InvoiceNumber)
		row.AddCell().SetString(it.PayerAccount)
		row.AddCell().SetString(it.PayerName)
		row.AddCell().SetString(it.SiteName)
		row.AddCell().SetString(it.SiteID)
		row.AddCell().SetString(it.MeterNumber)
		row.AddCell().SetString(it.ContractNumber)
		row.AddCell().SetString(it.Code)
		row.AddCell().SetString(it.Description)
		row.AddCell().SetString(it.PeriodStart)
		row.AddCell().SetString(it.PeriodEnd)
		row.AddCell().SetString(string(it.Usage))
		row.AddCell().SetFloatWithFormat(it.Quantity, amountFormat)
		row.AddCell().SetString(it.Unit)
		row.AddCell().SetFloatWithFormat(it.UnitPrice, amountFormat)
		row.AddCell().SetFloatWithFormat(it.Net, amountFormat)
		row.AddCell().SetFloatWithFormat(it.VAT, amountFormat)
		row.AddCell().SetFloatWithFormat(it.Gross, amountFormat)
		row.AddCell().SetString(inclusionFlag(it.Included))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}
