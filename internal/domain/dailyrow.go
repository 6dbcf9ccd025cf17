package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyRow is one calendar day of the ledger grid: four transaction buckets,
// free-text notes, and the two balances derived by the ledger engine.
// Date is the row's unique key within the window, formatted YYYY-MM-DD.
type DailyRow struct {
	Date        string          `json:"date"`
	Income      []Transaction   `json:"income"`
	Expenses    []Transaction   `json:"expenses"`
	Bills       []Transaction   `json:"bills"`
	ExtraIncome []Transaction   `json:"extraIncome"`
	Notes       string          `json:"notes"`
	CarryForward decimal.Decimal `json:"carryForward"`
	DailyBalance decimal.Decimal `json:"dailyBalance"`
}

// AddTransaction routes tx into the bucket matching its type.
// Both bill variants land in the Bills bucket.
func (r *DailyRow) AddTransaction(tx Transaction) error {
	switch tx.Type {
	case EntryTypeIncome:
		r.Income = append(r.Income, tx)
	case EntryTypeExpense:
		r.Expenses = append(r.Expenses, tx)
	case EntryTypeBillPaid, EntryTypeBillUnpaid:
		r.Bills = append(r.Bills, tx)
	case EntryTypeExtra:
		r.ExtraIncome = append(r.ExtraIncome, tx)
	default:
		return ErrInvalidEntryType
	}
	return nil
}

// RemoveTransaction removes the transaction with the given id from every
// bucket. IDs are assumed unique across buckets; the search does not stop at
// the first hit. Returns true if anything was removed.
func (r *DailyRow) RemoveTransaction(id uuid.UUID) bool {
	removed := false
	for _, bucket := range []*[]Transaction{&r.Income, &r.Expenses, &r.Bills, &r.ExtraIncome} {
		kept := (*bucket)[:0]
		for _, tx := range *bucket {
			if tx.ID == id {
				removed = true
				continue
			}
			kept = append(kept, tx)
		}
		*bucket = kept
	}
	return removed
}

// Net returns the day's net movement: income and extra income minus expenses
// and bills. Unpaid bills count against the balance just like paid ones
// (accrual-style; owed money is treated as spent).
func (r *DailyRow) Net() decimal.Decimal {
	return sumAmounts(r.Income).
		Add(sumAmounts(r.ExtraIncome)).
		Sub(sumAmounts(r.Expenses)).
		Sub(sumAmounts(r.Bills))
}

// Clone returns a deep copy of the row; bucket slices are copied so the
// clone can be mutated without touching the original.
func (r DailyRow) Clone() DailyRow {
	c := r
	c.Income = append([]Transaction(nil), r.Income...)
	c.Expenses = append([]Transaction(nil), r.Expenses...)
	c.Bills = append([]Transaction(nil), r.Bills...)
	c.ExtraIncome = append([]Transaction(nil), r.ExtraIncome...)
	return c
}

func sumAmounts(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}
