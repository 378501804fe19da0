package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garyjia/invoice-reconciler/internal/models"
)

func TestWriter_Write(t *testing.T) {
	apAmount := 1150.00
	rows := []models.ReconciledRow{
		{
			Date:          "01/15/2024",
			InvoiceNumber: "1001",
			VendorAmount:  1200.00,
			APAmount:      &apAmount,
			MatchStatus:   models.StatusAmountMismatch,
		},
		{
			Date:          "01/16/2024",
			InvoiceNumber: "1002",
			VendorAmount:  99.00,
			MatchStatus:   models.StatusMissingInAP,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"Date", "Invoice #", "Amount_Vendor", "Amount_AP", "Match Status"}, got[0])
	assert.Equal(t, []string{"01/15/2024", "1001", "1200", "1150", "Amount Mismatch"}, got[1])

	// Amount_AP stays empty when the invoice is missing in AP.
	require.Len(t, got[2], 5)
	assert.Equal(t, "01/16/2024", got[2][0])
	assert.Equal(t, "1002", got[2][1])
	assert.Equal(t, "99", got[2][2])
	assert.Equal(t, "", got[2][3])
	assert.Equal(t, "Missing in AP", got[2][4])
}

func TestWriter_WriteEmptyTableStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, nil))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Date", got[0][0])
}
