package reconcile

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reconciler/internal/models"
)

// TextExtractor pulls plain text out of a vendor statement document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// StatementParser scans statement text for invoice records.
type StatementParser interface {
	Parse(text string) []models.VendorInvoiceRecord
}

// LedgerNormalizer reads ledger bytes into records plus a dropped-row count.
type LedgerNormalizer interface {
	Normalize(data []byte) ([]models.LedgerRecord, int, error)
}

// Result is the outcome of one reconciliation run.
type Result struct {
	RunID             string                 `json:"run_id"`
	Rows              []models.ReconciledRow `json:"rows"`
	VendorInvoices    int                    `json:"vendor_invoices"`
	LedgerRecords     int                    `json:"ledger_records"`
	DroppedLedgerRows int                    `json:"dropped_ledger_rows"`
}

// Service runs one reconciliation over a (vendor statement, AP ledger) pair.
// Each run is independent; the service holds no per-run state.
type Service struct {
	extractor  TextExtractor
	parser     StatementParser
	normalizer LedgerNormalizer
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewService creates a reconciliation service.
func NewService(
	extractor TextExtractor,
	parser StatementParser,
	normalizer LedgerNormalizer,
	reconciler *Reconciler,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractor:  extractor,
		parser:     parser,
		normalizer: normalizer,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Run reconciles one vendor statement against one AP ledger. Structural
// errors from either input abort the run with no partial result.
func (s *Service) Run(ctx context.Context, statementPDF, ledgerXLSX []byte) (*Result, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	text, err := s.extractor.ExtractText(statementPDF)
	if err != nil {
		logger.Error("failed to extract vendor statement text", zap.Error(err))
		return nil, err
	}

	invoices := s.parser.Parse(text)
	logger.Info("parsed vendor statement",
		zap.Int("invoices", len(invoices)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, dropped, err := s.normalizer.Normalize(ledgerXLSX)
	if err != nil {
		logger.Error("failed to normalize ap ledger", zap.Error(err))
		return nil, err
	}
	if dropped > 0 {
		logger.Warn("ledger rows dropped for missing invoice number or amount",
			zap.Int("dropped", dropped))
	}

	rows := s.reconciler.Reconcile(invoices, records)

	logger.Info("reconciliation complete",
		zap.Int("rows", len(rows)),
		zap.Int("ledger_records", len(records)),
		zap.Int("dropped_ledger_rows", dropped))

	return &Result{
		RunID:             runID,
		Rows:              rows,
		VendorInvoices:    len(invoices),
		LedgerRecords:     len(records),
		DroppedLedgerRows: dropped,
	}, nil
}
