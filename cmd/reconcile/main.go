// Command reconcile runs one reconciliation from the command line:
// a vendor statement PDF against an AP ledger workbook, producing an xlsx
// report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-reconciler/internal/ledger"
	"github.com/garyjia/invoice-reconciler/internal/reconcile"
	"github.com/garyjia/invoice-reconciler/internal/report"
	"github.com/garyjia/invoice-reconciler/internal/statement"
	"github.com/garyjia/invoice-reconciler/pkg/utils"
)

func main() {
	vendorPath := flag.String("vendor", "", "path to the vendor statement PDF")
	ledgerPath := flag.String("ledger", "", "path to the AP ledger xlsx")
	outPath := flag.String("out", "reconciliation_report.xlsx", "path for the xlsx report")
	headerRows := flag.Int("header-rows", ledger.DefaultHeaderRows, "ledger header rows to skip")
	tolerance := flag.Float64("tolerance", reconcile.DefaultAmountTolerance, "amount match tolerance")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if *vendorPath == "" || *ledgerPath == "" {
		fmt.Fprintln(os.Stderr, "usage: reconcile -vendor statement.pdf -ledger ap_ledger.xlsx [-out report.xlsx]")
		os.Exit(2)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      *logLevel,
		OutputPath: "stderr",
		Format:     "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	vendorBytes, err := os.ReadFile(*vendorPath)
	if err != nil {
		logger.Fatal("failed to read vendor statement", zap.Error(err))
	}
	ledgerBytes, err := os.ReadFile(*ledgerPath)
	if err != nil {
		logger.Fatal("failed to read ap ledger", zap.Error(err))
	}

	service := reconcile.NewService(
		statement.NewPDFExtractor(logger),
		statement.NewRegexParser(logger),
		ledger.NewNormalizer(*headerRows, logger),
		reconcile.NewReconciler(*tolerance),
		logger,
	)

	result, err := service.Run(context.Background(), vendorBytes, ledgerBytes)
	if err != nil {
		logger.Fatal("reconciliation failed", zap.Error(err))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Fatal("failed to create report file", zap.Error(err))
	}
	defer out.Close()

	if err := report.NewWriter().Write(out, result.Rows); err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}

	fmt.Printf("Reconciled %d vendor invoice(s) against %d ledger record(s)\n",
		result.VendorInvoices, result.LedgerRecords)
	if result.DroppedLedgerRows > 0 {
		fmt.Printf("Warning: %d ledger row(s) dropped for missing invoice number or amount\n",
			result.DroppedLedgerRows)
	}
	fmt.Printf("Report written to %s\n", *outPath)
}
