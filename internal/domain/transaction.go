package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeIncome     EntryType = "income"
	EntryTypeExpense    EntryType = "expense"
	EntryTypeBillPaid   EntryType = "bill_paid"
	EntryTypeBillUnpaid EntryType = "bill_unpaid"
	EntryTypeExtra      EntryType = "extra"
)

// Valid reports whether t is one of the five known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeIncome, EntryTypeExpense, EntryTypeBillPaid, EntryTypeBillUnpaid, EntryTypeExtra:
		return true
	}
	return false
}

// Transaction is a single financial event. Transactions are immutable once
// created; they can only be removed from a row, never edited in place.
// Amount is always a positive magnitude; direction is implied by Type.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	Type      EntryType       `json:"type"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// DefaultCategory is used when an entry arrives without a category.
const DefaultCategory = "Other"
