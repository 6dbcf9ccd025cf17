package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProposedEntry is one candidate transaction produced by the natural-language
// interpreter, after the untrusted payload has been schema-validated. Date is
// optional (YYYY-MM-DD); when empty the entry lands on the current day.
type ProposedEntry struct {
	Type     EntryType       `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes,omitempty"`
	Date     string          `json:"date,omitempty"`
}

// Interpreter converts free text into proposed ledger entries and produces
// advisory summaries. Implementations must degrade to an empty slice on
// malformed model output; an error is diagnostic only and callers treat it
// as "nothing to add".
type Interpreter interface {
	ParseEntries(ctx context.Context, text string) ([]ProposedEntry, error)
	Summarize(ctx context.Context, rows []DailyRow) (string, error)
}
