package source

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Grid is a header-mapped string table read from a billing export file.
// Cell access goes through normalized column names so CSV and XLSX exports
// with cosmetic header differences resolve identically.
type Grid struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// HasColumn reports whether the grid has a column with the given name.
func (g *Grid) HasColumn(name string) bool {
	_, ok := g.colIdx[normalizeCol(name)]
	return ok
}

// Value returns the named cell of a row, or "" when the column is absent or
// the row is short.
func (g *Grid) Value(row []string, name string) string {
	idx, ok := g.colIdx[normalizeCol(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ReadFile reads a billing export, dispatching on file extension.
// CSV input may carry a UTF-8 byte-order mark; it is stripped transparently.
func ReadFile(path string) (*Grid, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "source: open csv")
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, eris.Errorf("source: unsupported file extension %q", ext)
	}
}

// ReadCSV reads a CSV billing export into a grid. The first record is the header.
func ReadCSV(r io.Reader) (*Grid, error) {
	// utf-8-sig tolerant: decode strips a leading BOM if present.
	dec := unicode.UTF8BOM.NewDecoder()
	reader := csv.NewReader(transform.NewReader(r, dec))
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "source: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("source: empty csv file")
	}

	return newGrid(records[0], records[1:]), nil
}

// ReadXLSX reads the first sheet of an XLSX billing export into a grid.
func ReadXLSX(path string) (*Grid, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "source: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("source: xlsx file has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("source: xlsx sheet is empty")
	}

	header := rowToStrings(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}

	return newGrid(header, rows), nil
}

func newGrid(header []string, rows [][]string) *Grid {
	return &Grid{
		Header: header,
		Rows:   rows,
		colIdx: mapColumnsNormalized(header),
	}
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
