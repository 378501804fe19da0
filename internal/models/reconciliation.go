package models

// MatchStatus classifies a vendor invoice against the AP ledger.
type MatchStatus string

const (
	// StatusMatched means the ledger amount agrees with the vendor amount
	// within the configured tolerance.
	StatusMatched MatchStatus = "Matched"

	// StatusAmountMismatch means the ledger has the invoice but the amounts
	// differ by more than the tolerance.
	StatusAmountMismatch MatchStatus = "Amount Mismatch"

	// StatusMissingInAP means no ledger record carries the invoice number.
	StatusMissingInAP MatchStatus = "Missing in AP"
)

// VendorInvoiceRecord is one invoice line parsed from a vendor statement.
// Date is kept verbatim as it appeared in the statement (MM/DD/YYYY).
type VendorInvoiceRecord struct {
	Date          string  `json:"date"`
	InvoiceNumber string  `json:"invoice_number"`
	Amount        float64 `json:"amount"`
}

// LedgerRecord is one normalized row of the AP ledger. InvoiceNumber and
// Amount are always present; rows missing either never make it into the
// model. The remaining fields are carried through unvalidated.
type LedgerRecord struct {
	PayableName   string  `json:"payable_name"`
	InvoiceNumber string  `json:"invoice_number"`
	Amount        float64 `json:"amount"`
	RONumber      string  `json:"ro_number,omitempty"`
	Posted        string  `json:"posted,omitempty"`
	GLAccount     string  `json:"gl_account,omitempty"`
}

// ReconciledRow pairs a vendor invoice with its ledger counterpart, if any.
// APAmount is nil exactly when MatchStatus is StatusMissingInAP.
type ReconciledRow struct {
	Date          string      `json:"date"`
	InvoiceNumber string      `json:"invoice_number"`
	VendorAmount  float64     `json:"amount_vendor"`
	APAmount      *float64    `json:"amount_ap,omitempty"`
	MatchStatus   MatchStatus `json:"match_status"`
}
