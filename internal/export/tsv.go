package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/billflow-cli/internal/model"
)

// WriteTSV writes line items as a tab-separated file, UTF-8 with a byte-order
// mark so spreadsheet tools pick up the Hebrew headers correctly.
func WriteTSV(path string, items []model.LineItem) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create tsv")
	}
	defer f.Close()

	// utf-8-sig: the encoder emits the BOM before the first write.
	enc := unicode.UTF8BOM.NewEncoder()
	bw := transform.NewWriter(f, enc)

	w := csv.NewWriter(bw)
	w.Comma = '\t'

	if err := w.Write(outputColumns); err != nil {
		return eris.Wrap(err, "export: write tsv header")
	}
	for _, it := range items {
		if err := w.Write(itemToRecord(it)); err != nil {
			return eris.Wrapf(err, "export: write tsv row %d of invoice %s", it.LineNumber, it.InvoiceNumber)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush tsv")
	}
	if err := bw.Close(); err != nil {
		return eris.Wrap(err, "export: close tsv encoder")
	}
	return nil
}
