package ledger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reconciler/internal/models"
)

// buildLedger writes an xlsx workbook whose first sheet contains the given
// rows, prefixed by DefaultHeaderRows rows of header noise.
func buildLedger(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{"AP Ledger Export", "", "", "", "", ""}
	for i := 0; i < DefaultHeaderRows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &header))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, DefaultHeaderRows+i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	data := buildLedger(t, [][]interface{}{
		{"Acme Corp", "1001", 1200.00, "RO-1", "Y", "5010"},
		{"Acme Corp", " 1002 ", 750.50, "RO-2", "N", "5020"},
	})

	records, dropped, err := normalizer.Normalize(data)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, records, 2)

	assert.Equal(t, models.LedgerRecord{
		PayableName:   "Acme Corp",
		InvoiceNumber: "1001",
		Amount:        1200.00,
		RONumber:      "RO-1",
		Posted:        "Y",
		GLAccount:     "5010",
	}, records[0])

	// Invoice numbers are trimmed.
	assert.Equal(t, "1002", records[1].InvoiceNumber)
	assert.Equal(t, 750.50, records[1].Amount)
}

func TestNormalizer_NormalizeDropsRowsMissingKeyFields(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	data := buildLedger(t, [][]interface{}{
		{"Acme Corp", "3001", nil, "RO-1", "Y", "5010"},
		{"Acme Corp", "", 99.00, "RO-2", "Y", "5010"},
		{"Acme Corp", "3002", 42.00, "RO-3", "Y", "5010"},
	})

	records, dropped, err := normalizer.Normalize(data)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "3002", records[0].InvoiceNumber)
}

func TestNormalizer_NormalizeDropsNonNumericAmount(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	data := buildLedger(t, [][]interface{}{
		{"Acme Corp", "4001", "pending", "", "", ""},
		{"Acme Corp", "4002", "1,250.00", "", "", ""},
	})

	records, dropped, err := normalizer.Normalize(data)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "4002", records[0].InvoiceNumber)
	assert.Equal(t, 1250.00, records[0].Amount)
}

func TestNormalizer_NormalizeSkipsBlankRowsWithoutCounting(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	data := buildLedger(t, [][]interface{}{
		{"", "", "", "", "", ""},
		{"Acme Corp", "5001", 10.00, "", "", ""},
	})

	records, dropped, err := normalizer.Normalize(data)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Len(t, records, 1)
}

func TestNormalizer_NormalizePadsShortRows(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	// Trailing optional columns left blank: the row reader omits them.
	data := buildLedger(t, [][]interface{}{
		{"Acme Corp", "6001", 300.00},
	})

	records, dropped, err := normalizer.Normalize(data)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "6001", records[0].InvoiceNumber)
	assert.Empty(t, records[0].RONumber)
	assert.Empty(t, records[0].GLAccount)
}

func TestNormalizer_NormalizeRejectsWideRows(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	data := buildLedger(t, [][]interface{}{
		{"Acme Corp", "7001", 300.00, "RO-1", "Y", "5010", "extra"},
	})

	_, _, err := normalizer.Normalize(data)
	assert.ErrorIs(t, err, ErrLedgerFormat)
}

func TestNormalizer_NormalizeRejectsNonWorkbookBytes(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	_, _, err := normalizer.Normalize([]byte("definitely not an xlsx file"))
	assert.ErrorIs(t, err, ErrLedgerFormat)
}

func TestNormalizer_NormalizeHeaderRowsNeverBecomeRecords(t *testing.T) {
	normalizer := NewNormalizer(DefaultHeaderRows, zap.NewNop())

	// Header rows deliberately shaped like valid data rows; the fixed-offset
	// skip discards them regardless of content.
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i := 0; i < DefaultHeaderRows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := []interface{}{"Header Vendor", "9999", 1.00, "", "", ""}
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	row := []interface{}{"Acme Corp", "8001", 5.00, "", "", ""}
	cell, err := excelize.CoordinatesToCellName(1, DefaultHeaderRows+1)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, cell, &row))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	records, dropped, err := normalizer.Normalize(buf.Bytes())
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "8001", records[0].InvoiceNumber)
}
