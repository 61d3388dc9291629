package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/dart-research/disclosure-cli/internal/model"
)

func sampleTables() []model.Table {
	return []model.Table{
		{
			Title:   "Median WACC by sector",
			Columns: []string{"sector", "median_wacc"},
			Rows:    [][]string{{"금융", "0.0880"}, {"it", "0.1020"}},
		},
		{
			Columns: []string{"valuator", "reports"},
			Rows:    [][]string{{"한영회계법인", "2"}},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, sampleTables()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, "Median WACC by sector")
	assert.Contains(t, content, "sector,median_wacc")
	assert.Contains(t, content, "금융,0.0880")

	// sections separated by a blank record
	assert.Contains(t, content, "\n\nvaluator,reports")
	assert.True(t, strings.HasSuffix(content, "한영회계법인,2\n"))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, sampleTables()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	assert.Equal(t, "Median WACC by sector", f.Sheets[0].Name)
	assert.Equal(t, "Sheet2", f.Sheets[1].Name)

	assert.Equal(t, "sector", f.Sheets[0].Rows[0].Cells[0].String())
	assert.Equal(t, "금융", f.Sheets[0].Rows[1].Cells[0].String())
	assert.Equal(t, "0.1020", f.Sheets[0].Rows[2].Cells[1].String())
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "Transactions issuer x target", sanitizeSheetName("Transactions: issuer x target"))

	long := strings.Repeat("a", 40)
	assert.Len(t, sanitizeSheetName(long), 31)
}
