// Package reconcile joins parsed vendor invoices against the normalized AP
// ledger and classifies every vendor invoice.
package reconcile

import (
	"math"

	"github.com/garyjia/invoice-reconciler/internal/models"
)

// DefaultAmountTolerance is the largest vendor/AP amount difference still
// treated as a match: one cent.
const DefaultAmountTolerance = 0.01

// Reconciler classifies vendor invoices against ledger records. It is a pure
// transform: same inputs, same output, no side effects.
type Reconciler struct {
	tolerance float64
}

// NewReconciler creates a reconciler with the given amount tolerance.
func NewReconciler(tolerance float64) *Reconciler {
	if tolerance < 0 {
		tolerance = DefaultAmountTolerance
	}
	return &Reconciler{tolerance: tolerance}
}

// Reconcile produces one ReconciledRow per vendor invoice, preserving input
// order and cardinality (a left-outer join on invoice number). When several
// ledger records share an invoice number, the first occurrence wins. Ledger
// records with no vendor counterpart are never surfaced.
func (r *Reconciler) Reconcile(invoices []models.VendorInvoiceRecord, records []models.LedgerRecord) []models.ReconciledRow {
	apAmounts := make(map[string]float64, len(records))
	for _, rec := range records {
		if _, ok := apAmounts[rec.InvoiceNumber]; !ok {
			apAmounts[rec.InvoiceNumber] = rec.Amount
		}
	}

	rows := make([]models.ReconciledRow, 0, len(invoices))
	for _, inv := range invoices {
		row := models.ReconciledRow{
			Date:          inv.Date,
			InvoiceNumber: inv.InvoiceNumber,
			VendorAmount:  inv.Amount,
		}
		apAmount, ok := apAmounts[inv.InvoiceNumber]
		switch {
		case !ok:
			row.MatchStatus = models.StatusMissingInAP
		case math.Abs(inv.Amount-apAmount) > r.tolerance:
			row.APAmount = &apAmount
			row.MatchStatus = models.StatusAmountMismatch
		default:
			row.APAmount = &apAmount
			row.MatchStatus = models.StatusMatched
		}
		rows = append(rows, row)
	}
	return rows
}
