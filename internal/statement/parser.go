package statement

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/garyjia/invoice-reconciler/internal/models"
	"go.uber.org/zap"
)

// Parser scans statement text for invoice lines. Implementations are
// vendor-layout strategies; RegexParser covers the standard layout. Zero
// matches yields an empty slice, never an error.
type Parser interface {
	Parse(text string) []models.VendorInvoiceRecord
}

// invoiceLinePattern matches one invoice line:
// a MM/DD/YYYY date, the word "Invoice", a "#"-prefixed number, then the
// first amount (comma-grouped, two decimal places) after any non-digit text.
var invoiceLinePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+Invoice\s+#(\d+)[^\d]*(\d{1,3}(?:,\d{3})*(?:\.\d{2}))`)

// RegexParser extracts invoice records with a fixed line pattern.
type RegexParser struct {
	pattern *regexp.Regexp
	logger  *zap.Logger
}

// NewRegexParser creates a parser for the standard vendor statement layout.
func NewRegexParser(logger *zap.Logger) *RegexParser {
	return &RegexParser{
		pattern: invoiceLinePattern,
		logger:  logger,
	}
}

// Parse returns one record per pattern match, in order of appearance.
// Duplicate invoice numbers are kept as-is; deduplication is not this
// layer's business.
func (p *RegexParser) Parse(text string) []models.VendorInvoiceRecord {
	matches := p.pattern.FindAllStringSubmatch(text, -1)

	records := make([]models.VendorInvoiceRecord, 0, len(matches))
	for _, m := range matches {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", ""), 64)
		if err != nil {
			// The pattern only admits parseable amounts; log and move on.
			p.logger.Warn("skipping invoice line with unparseable amount",
				zap.String("invoice_number", m[2]),
				zap.String("amount", m[3]))
			continue
		}
		records = append(records, models.VendorInvoiceRecord{
			Date:          m[1],
			InvoiceNumber: m[2],
			Amount:        amount,
		})
	}

	p.logger.Debug("parsed vendor statement text",
		zap.Int("invoices", len(records)))

	return records
}
