package main

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/dart-research/disclosure-cli/internal/export"
	"github.com/dart-research/disclosure-cli/internal/model"
)

// writeResult prints the rendering to stdout for table output, or writes
// the tables to the requested file for csv/xlsx output.
func writeResult(format, output, rendering string, tables []model.Table) error {
	switch format {
	case "", "table":
		fmt.Println(rendering)
		return nil
	case "csv":
		if output == "" {
			return eris.New("output: --output is required for csv format")
		}
		return export.WriteCSV(output, tables)
	case "xlsx":
		if output == "" {
			return eris.New("output: --output is required for xlsx format")
		}
		return export.WriteXLSX(output, tables)
	}
	return eris.Errorf("output: unknown format %q", format)
}
