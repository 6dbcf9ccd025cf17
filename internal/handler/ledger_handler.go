package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
	"github.com/smartledger-ai/smartledger-backend/internal/util"
)

// LedgerHandler handles ledger grid HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// AddEntryRequest represents the add entry request body
type AddEntryRequest struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes,omitempty"`
}

// EditNotesRequest represents the edit notes request body
type EditNotesRequest struct {
	Notes string `json:"notes"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Notes     string `json:"notes,omitempty"`
	Timestamp string `json:"timestamp"`
}

// DailyRowResponse represents one day of the ledger in API responses
type DailyRowResponse struct {
	Date         string                `json:"date"`
	Income       []TransactionResponse `json:"income"`
	Expenses     []TransactionResponse `json:"expenses"`
	Bills        []TransactionResponse `json:"bills"`
	ExtraIncome  []TransactionResponse `json:"extraIncome"`
	Notes        string                `json:"notes"`
	CarryForward string                `json:"carryForward"`
	DailyBalance string                `json:"dailyBalance"`
}

// LedgerResponse represents the full window plus header totals
type LedgerResponse struct {
	Rows          []DailyRowResponse `json:"rows"`
	TotalIncome   string             `json:"totalIncome"`
	TotalExpenses string             `json:"totalExpenses"`
	Balance       string             `json:"balance"`
}

// DeleteEntryResponse reports the outcome of a delete
type DeleteEntryResponse struct {
	Removed bool `json:"removed"`
}

func toTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = TransactionResponse{
			ID:        tx.ID.String(),
			Type:      string(tx.Type),
			Category:  tx.Category,
			Amount:    tx.Amount.String(),
			Notes:     tx.Notes,
			Timestamp: tx.Timestamp.Format(time.RFC3339),
		}
	}
	return out
}

func toDailyRowResponse(row domain.DailyRow) DailyRowResponse {
	return DailyRowResponse{
		Date:         row.Date,
		Income:       toTransactionResponses(row.Income),
		Expenses:     toTransactionResponses(row.Expenses),
		Bills:        toTransactionResponses(row.Bills),
		ExtraIncome:  toTransactionResponses(row.ExtraIncome),
		Notes:        row.Notes,
		CarryForward: row.CarryForward.String(),
		DailyBalance: row.DailyBalance.String(),
	}
}

// GetLedger handles GET /api/v1/ledger
func (h *LedgerHandler) GetLedger(c echo.Context) error {
	rows := h.ledgerService.Rows()
	totals := h.ledgerService.Totals()

	response := LedgerResponse{
		Rows:          make([]DailyRowResponse, len(rows)),
		TotalIncome:   totals.TotalIncome.String(),
		TotalExpenses: totals.TotalExpenses.String(),
		Balance:       totals.Balance.String(),
	}
	for i, row := range rows {
		response.Rows[i] = toDailyRowResponse(row)
	}

	return c.JSON(http.StatusOK, response)
}

// GetRow handles GET /api/v1/ledger/:date
func (h *LedgerHandler) GetRow(c echo.Context) error {
	date := c.Param("date")
	if !util.IsDay(date) {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	row, err := h.ledgerService.Row(date)
	if err != nil {
		return NewNotFoundError(c, "Day not found in ledger window")
	}

	return c.JSON(http.StatusOK, toDailyRowResponse(row))
}

// AddEntry handles POST /api/v1/ledger/:date/entries
func (h *LedgerHandler) AddEntry(c echo.Context) error {
	date := c.Param("date")
	if !util.IsDay(date) {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	var req AddEntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	entryType := domain.EntryType(req.Type)
	if !entryType.Valid() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Must be one of income, expense, bill_paid, bill_unpaid, extra"},
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	tx, err := h.ledgerService.AddEntry(c.Request().Context(), date, entryType, amount, req.Category, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRowNotFound):
			return NewNotFoundError(c, "Day not found in ledger window")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be non-zero"},
			})
		default:
			return NewInternalError(c, "Failed to add entry")
		}
	}

	return c.JSON(http.StatusCreated, toTransactionResponses([]domain.Transaction{*tx})[0])
}

// DeleteEntry handles DELETE /api/v1/ledger/:date/entries/:id
func (h *LedgerHandler) DeleteEntry(c echo.Context) error {
	date := c.Param("date")
	if !util.IsDay(date) {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction id", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	removed, err := h.ledgerService.DeleteTransaction(c.Request().Context(), date, id)
	if err != nil {
		return NewInternalError(c, "Failed to delete entry")
	}

	return c.JSON(http.StatusOK, DeleteEntryResponse{Removed: removed})
}

// EditNotes handles PUT /api/v1/ledger/:date/notes
func (h *LedgerHandler) EditNotes(c echo.Context) error {
	date := c.Param("date")
	if !util.IsDay(date) {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	var req EditNotesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.ledgerService.EditNotes(c.Request().Context(), date, req.Notes); err != nil {
		if errors.Is(err, domain.ErrRowNotFound) {
			return NewNotFoundError(c, "Day not found in ledger window")
		}
		return NewInternalError(c, "Failed to update notes")
	}

	row, err := h.ledgerService.Row(date)
	if err != nil {
		return NewInternalError(c, "Failed to load updated day")
	}
	return c.JSON(http.StatusOK, toDailyRowResponse(row))
}
