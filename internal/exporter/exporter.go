// Package exporter writes decoded NEGS documents as CSV files or an XLSX workbook.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/guttosm/negspulse/internal/negs"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	csvSeparator = ';'
	utf8BOM      = "\ufeff"
)

// Export writes doc to outDir using format, naming outputs after base.
//
// Returns the paths written.
func Export(format, outDir, base string, doc *negs.Document) ([]string, error) {
	switch format {
	case FormatCSV:
		return WriteCSV(outDir, base, doc)
	case FormatXLSX:
		path := filepath.Join(outDir, base+".xlsx")
		if err := WriteXLSX(path, doc); err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// WriteCSV writes <base>_header.csv, <base>_trades.csv and <base>_trailer.csv
// into dir. Files are ';' separated and start with a UTF-8 BOM so spreadsheet
// tools pick the encoding up.
func WriteCSV(dir, base string, doc *negs.Document) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var paths []string
	for _, table := range doc.Tables() {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, table.Name))
		if err := writeCSVTable(path, table); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVTable(path string, table negs.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = csvSeparator
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatCell renders a table value as text; decimals keep two places.
func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case decimal.Decimal:
		return x.StringFixed(2)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// WriteXLSX writes doc as one workbook with the sheets "header", "trades" and
// "trailer". Numbers are stored as numbers; decimal columns use a two-place format.
func WriteXLSX(path string, doc *negs.Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	twoPlaces, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}

	for i, table := range doc.Tables() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return err
		}
		if err := writeSheet(f, table, bold, twoPlaces); err != nil {
			return fmt.Errorf("sheet %s: %w", table.Name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, table negs.Table, headerStyle, decimalStyle int) error {
	sheet := table.Name

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	decimalCols := map[int]bool{}
	for r, row := range table.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				values[i] = d.InexactFloat64()
				decimalCols[i] = true
				continue
			}
			values[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	for i := range decimalCols {
		top, _ := excelize.CoordinatesToCellName(i+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(i+1, len(table.Rows)+1)
		if err := f.SetCellStyle(sheet, top, bottom, decimalStyle); err != nil {
			return err
		}
	}

	// Auto-fit column widths (approximate)
	for i, name := range table.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(name) + 2)
		if width < 10 {
			width = 10
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
