// Package export writes result tables to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// WriteCSV writes one table to a CSV file. Multiple tables are separated
// by a blank record so a single answer can export all of its sections.
func WriteCSV(path string, tables []model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for i, t := range tables {
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return eris.Wrap(err, "export: write csv separator")
			}
		}
		if t.Title != "" {
			if err := w.Write([]string{t.Title}); err != nil {
				return eris.Wrap(err, "export: write csv title")
			}
		}
		if err := w.Write(t.Columns); err != nil {
			return eris.Wrap(err, "export: write csv header")
		}
		for _, row := range t.Rows {
			if err := w.Write(row); err != nil {
				return eris.Wrap(err, "export: write csv row")
			}
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}

// WriteXLSX writes each table to its own sheet of an XLSX workbook.
func WriteXLSX(path string, tables []model.Table) error {
	f := xlsx.NewFile()
	for i, t := range tables {
		name := t.Title
		if name == "" {
			name = sheetName(i)
		}
		sheet, err := f.AddSheet(sanitizeSheetName(name))
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %q", name)
		}
		header := sheet.AddRow()
		for _, col := range t.Columns {
			header.AddCell().SetString(col)
		}
		for _, row := range t.Rows {
			r := sheet.AddRow()
			for _, cell := range row {
				r.AddCell().SetString(cell)
			}
		}
	}
	return eris.Wrap(f.Save(path), "export: save xlsx")
}

func sheetName(i int) string {
	return "Sheet" + string(rune('1'+i))
}

// sanitizeSheetName trims titles to the 31-character XLSX sheet limit and
// strips the characters the format forbids.
func sanitizeSheetName(name string) string {
	var out []rune
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	return string(out)
}
