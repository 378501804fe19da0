// Package ledger reads an accounts-payable ledger workbook and normalizes it
// into typed records under a fixed column schema.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reconciler/internal/models"
)

// ErrLedgerFormat is returned when the workbook cannot be read or its rows do
// not fit the fixed 6-column AP ledger layout.
var ErrLedgerFormat = errors.New("ap ledger does not match the expected 6-column layout")

// schemaWidth is the fixed AP ledger layout:
// Payable Name, Invoice #, Amount, RO #, Posted, G/L Acct #.
const schemaWidth = 6

// DefaultHeaderRows is how many leading rows the standard AP export spends on
// titles and headers. The skip is a fixed offset, a known format assumption.
const DefaultHeaderRows = 4

// Normalizer reads the first sheet of an xlsx ledger into LedgerRecords.
type Normalizer struct {
	headerRows int
	logger     *zap.Logger
}

// NewNormalizer creates a ledger normalizer that skips headerRows leading
// rows before applying the column schema.
func NewNormalizer(headerRows int, logger *zap.Logger) *Normalizer {
	if headerRows < 0 {
		headerRows = DefaultHeaderRows
	}
	return &Normalizer{headerRows: headerRows, logger: logger}
}

// Normalize parses the ledger bytes and returns the usable records plus the
// number of rows dropped for missing an invoice number or a numeric amount.
// Dropped rows are not an error; they are counted so callers can surface the
// loss as a warning. A row wider than the schema is fatal. Rows narrower than
// the schema are padded with empty cells first, since xlsx readers omit
// trailing blank cells.
func (n *Normalizer) Normalize(data []byte) ([]models.LedgerRecord, int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrLedgerFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("%w: workbook has no sheets", ErrLedgerFormat)
	}

	// Only the first sheet is read.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrLedgerFormat, err)
	}

	records := make([]models.LedgerRecord, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		if i < n.headerRows {
			continue
		}
		if len(row) > schemaWidth {
			return nil, 0, fmt.Errorf("%w: row %d has %d cells", ErrLedgerFormat, i+1, len(row))
		}
		if isEmptyRow(row) {
			continue
		}
		for len(row) < schemaWidth {
			row = append(row, "")
		}

		invoiceNumber := strings.TrimSpace(row[1])
		amountCell := strings.TrimSpace(row[2])
		if invoiceNumber == "" || amountCell == "" {
			dropped++
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(amountCell, ",", ""), 64)
		if err != nil {
			n.logger.Warn("dropping ledger row with non-numeric amount",
				zap.Int("row", i+1),
				zap.String("amount", amountCell))
			dropped++
			continue
		}

		records = append(records, models.LedgerRecord{
			PayableName:   row[0],
			InvoiceNumber: invoiceNumber,
			Amount:        amount,
			RONumber:      row[3],
			Posted:        row[4],
			GLAccount:     row[5],
		})
	}

	n.logger.Debug("normalized ap ledger",
		zap.String("sheet", sheets[0]),
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped))

	return records, dropped, nil
}

// isEmptyRow reports whether every cell in the row is blank. Entirely blank
// rows are formatting artifacts, not data, so they are skipped without
// counting toward the dropped total.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
