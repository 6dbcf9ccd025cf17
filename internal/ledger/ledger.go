// Package ledger is the balance engine: it builds the initial day window and
// re-derives every row's carry-forward and daily balance after a mutation.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/util"
)

// GenerateWindow produces days consecutive empty rows ending at today and
// going backward, newest first. Pure function of its arguments.
func GenerateWindow(today time.Time, days int) []domain.DailyRow {
	rows := make([]domain.DailyRow, 0, days)
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, -i)
		rows = append(rows, domain.DailyRow{
			Date:         util.FormatDay(d),
			Income:       []domain.Transaction{},
			Expenses:     []domain.Transaction{},
			Bills:        []domain.Transaction{},
			ExtraIncome:  []domain.Transaction{},
			CarryForward: decimal.Zero,
			DailyBalance: decimal.Zero,
		})
	}
	return rows
}

// Recompute re-derives carry-forward and daily balance for every row from
// scratch and returns the rows newest first. The recurrence runs oldest
// first: the chronologically first row enters with a zero carry, and each
// row's closing balance becomes the next row's carry. Negative balances
// propagate like any other. The input slice is not modified.
//
// The full re-derivation on every mutation is deliberate: an edit on an
// earlier day shifts every later day's carry, and at a bounded window size
// the O(n log n) walk is cheaper than getting incremental patching wrong.
func Recompute(rows []domain.DailyRow) []domain.DailyRow {
	out := append([]domain.DailyRow(nil), rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	carry := decimal.Zero
	for i := range out {
		out[i].CarryForward = carry
		out[i].DailyBalance = carry.Add(out[i].Net())
		carry = out[i].DailyBalance
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Totals are the window-wide figures shown in the grid header.
type Totals struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// WindowTotals sums the income and expense buckets across the window and
// reports the newest day's closing balance as the current balance.
func WindowTotals(rows []domain.DailyRow) Totals {
	t := Totals{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Balance:       decimal.Zero,
	}
	newest := ""
	for i := range rows {
		for _, tx := range rows[i].Income {
			t.TotalIncome = t.TotalIncome.Add(tx.Amount)
		}
		for _, tx := range rows[i].Expenses {
			t.TotalExpenses = t.TotalExpenses.Add(tx.Amount)
		}
		if rows[i].Date > newest {
			newest = rows[i].Date
			t.Balance = rows[i].DailyBalance
		}
	}
	return t
}
