package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(t domain.EntryType, amount float64) domain.Transaction {
	return domain.Transaction{
		ID:        uuid.New(),
		Type:      t,
		Category:  "Other",
		Amount:    decimal.NewFromFloat(amount),
		Timestamp: time.Now(),
	}
}

func emptyRow(date string) domain.DailyRow {
	return domain.DailyRow{
		Date:         date,
		Income:       []domain.Transaction{},
		Expenses:     []domain.Transaction{},
		Bills:        []domain.Transaction{},
		ExtraIncome:  []domain.Transaction{},
		CarryForward: decimal.Zero,
		DailyBalance: decimal.Zero,
	}
}

func TestGenerateWindow(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	rows := GenerateWindow(today, 365)

	require.Len(t, rows, 365)
	assert.Equal(t, "2024-03-10", rows[0].Date)
	assert.Equal(t, "2023-03-12", rows[364].Date)

	seen := make(map[string]bool)
	for _, row := range rows {
		assert.False(t, seen[row.Date], "duplicate date %s", row.Date)
		seen[row.Date] = true
		assert.Empty(t, row.Income)
		assert.True(t, row.DailyBalance.IsZero())
		assert.True(t, row.CarryForward.IsZero())
	}
}

func TestRecompute_EmptyLedger(t *testing.T) {
	assert.Empty(t, Recompute([]domain.DailyRow{}))
}

func TestRecompute_SingleRow(t *testing.T) {
	row := emptyRow("2024-01-01")
	row.Income = append(row.Income, tx(domain.EntryTypeIncome, 100))

	out := Recompute([]domain.DailyRow{row})

	require.Len(t, out, 1)
	assert.Equal(t, "0", out[0].CarryForward.String())
	assert.Equal(t, "100", out[0].DailyBalance.String())
}

func TestRecompute_CarriesBalanceForward(t *testing.T) {
	day1 := emptyRow("2024-01-01")
	day1.Income = append(day1.Income, tx(domain.EntryTypeIncome, 100))
	day2 := emptyRow("2024-01-02")

	// Input intentionally unordered; display order is newest first.
	out := Recompute([]domain.DailyRow{day1, day2})

	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-02", out[0].Date)
	assert.Equal(t, "100", out[0].CarryForward.String())
	assert.Equal(t, "100", out[0].DailyBalance.String())
	assert.Equal(t, "2024-01-01", out[1].Date)
	assert.Equal(t, "0", out[1].CarryForward.String())
	assert.Equal(t, "100", out[1].DailyBalance.String())
}

func TestRecompute_DailyNetAllBuckets(t *testing.T) {
	prior := emptyRow("2024-01-01")
	prior.Income = append(prior.Income, tx(domain.EntryTypeIncome, 20))

	day := emptyRow("2024-01-02")
	day.Income = append(day.Income, tx(domain.EntryTypeIncome, 200))
	day.Expenses = append(day.Expenses, tx(domain.EntryTypeExpense, 50))
	day.Bills = append(day.Bills, tx(domain.EntryTypeBillPaid, 30))
	day.ExtraIncome = append(day.ExtraIncome, tx(domain.EntryTypeExtra, 10))

	out := Recompute([]domain.DailyRow{day, prior})

	// net = 200 + 10 - 50 - 30 = 130, carry in = 20
	require.Equal(t, "2024-01-02", out[0].Date)
	assert.Equal(t, "20", out[0].CarryForward.String())
	assert.Equal(t, "150", out[0].DailyBalance.String())
}

func TestRecompute_UnpaidBillsReduceBalance(t *testing.T) {
	day := emptyRow("2024-01-01")
	day.Bills = append(day.Bills, tx(domain.EntryTypeBillUnpaid, 75))

	out := Recompute([]domain.DailyRow{day})

	assert.Equal(t, "-75", out[0].DailyBalance.String())
}

func TestRecompute_NegativeCarryPropagates(t *testing.T) {
	day1 := emptyRow("2024-01-01")
	day1.Expenses = append(day1.Expenses, tx(domain.EntryTypeExpense, 40))
	day2 := emptyRow("2024-01-02")
	day2.Income = append(day2.Income, tx(domain.EntryTypeIncome, 15))

	out := Recompute([]domain.DailyRow{day2, day1})

	assert.Equal(t, "-40", out[1].DailyBalance.String())
	assert.Equal(t, "-40", out[0].CarryForward.String())
	assert.Equal(t, "-25", out[0].DailyBalance.String())
}

func TestRecompute_AdjacentRowsChain(t *testing.T) {
	rows := GenerateWindow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 30)
	rows[5].Income = append(rows[5].Income, tx(domain.EntryTypeIncome, 300))
	rows[12].Expenses = append(rows[12].Expenses, tx(domain.EntryTypeExpense, 120))
	rows[20].Bills = append(rows[20].Bills, tx(domain.EntryTypeBillUnpaid, 45))

	out := Recompute(rows)

	// Rows come back newest first; walk oldest to newest.
	for i := len(out) - 1; i >= 0; i-- {
		if i == len(out)-1 {
			assert.True(t, out[i].CarryForward.IsZero(), "first chronological row must enter at zero")
		} else {
			assert.True(t, out[i].CarryForward.Equal(out[i+1].DailyBalance),
				"carry into %s must equal balance leaving %s", out[i].Date, out[i+1].Date)
		}
		assert.True(t, out[i].DailyBalance.Equal(out[i].CarryForward.Add(out[i].Net())))
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	rows := GenerateWindow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 10)
	rows[2].Income = append(rows[2].Income, tx(domain.EntryTypeIncome, 500))
	rows[7].Expenses = append(rows[7].Expenses, tx(domain.EntryTypeExpense, 80))

	once := Recompute(rows)
	twice := Recompute(once)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Date, twice[i].Date)
		assert.True(t, once[i].CarryForward.Equal(twice[i].CarryForward))
		assert.True(t, once[i].DailyBalance.Equal(twice[i].DailyBalance))
	}
}

func TestRecompute_DoesNotModifyInput(t *testing.T) {
	day := emptyRow("2024-01-01")
	day.Income = append(day.Income, tx(domain.EntryTypeIncome, 100))
	in := []domain.DailyRow{day}

	Recompute(in)

	assert.True(t, in[0].DailyBalance.IsZero())
}

func TestWindowTotals(t *testing.T) {
	rows := GenerateWindow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 5)
	rows[0].Income = append(rows[0].Income, tx(domain.EntryTypeIncome, 1000))
	rows[1].Income = append(rows[1].Income, tx(domain.EntryTypeIncome, 200))
	rows[1].Expenses = append(rows[1].Expenses, tx(domain.EntryTypeExpense, 75))
	rows = Recompute(rows)

	totals := WindowTotals(rows)

	assert.Equal(t, "1200", totals.TotalIncome.String())
	assert.Equal(t, "75", totals.TotalExpenses.String())
	assert.Equal(t, "1125", totals.Balance.String())
}
