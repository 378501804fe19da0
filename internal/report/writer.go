// Package report serializes a reconciled table into a downloadable xlsx
// workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/garyjia/invoice-reconciler/internal/models"
)

// SheetName is the sheet holding the reconciliation table.
const SheetName = "Reconciliation"

var columns = []interface{}{"Date", "Invoice #", "Amount_Vendor", "Amount_AP", "Match Status"}

// Writer renders reconciled rows as an xlsx report.
type Writer struct{}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write streams a workbook with one header row plus one row per ReconciledRow,
// in input order. The Amount_AP cell stays empty for invoices missing in AP.
func (w *Writer) Write(out io.Writer, rows []models.ReconciledRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &columns); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address report row %d: %w", i+1, err)
		}
		values := []interface{}{row.Date, row.InvoiceNumber, row.VendorAmount, nil, string(row.MatchStatus)}
		if row.APAmount != nil {
			values[3] = *row.APAmount
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write report workbook: %w", err)
	}
	return nil
}
