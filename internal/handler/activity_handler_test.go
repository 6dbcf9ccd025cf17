package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/util"
)

func TestGetActivity(t *testing.T) {
	e := echo.New()
	ledgerService := newTestLedgerService()
	handler := NewActivityHandler(ledgerService)

	today := util.FormatDay(time.Now())
	if _, err := ledgerService.AddEntry(context.Background(), today, domain.EntryTypeIncome, decimal.NewFromInt(10), "Salary", ""); err != nil {
		t.Fatalf("Failed to seed entry: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activity", nil)
	rec := httptest.NewRecorder()
	if err := handler.GetActivity(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []LogEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(response))
	}
	if response[0].Action != string(domain.LogActionAdd) {
		t.Errorf("Expected ADD action, got %s", response[0].Action)
	}
	if response[0].ID == "" || response[0].Timestamp == "" {
		t.Error("Expected id and timestamp on log entry")
	}
}

func TestGetActivity_Empty(t *testing.T) {
	e := echo.New()
	handler := NewActivityHandler(newTestLedgerService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activity", nil)
	rec := httptest.NewRecorder()
	if err := handler.GetActivity(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []LogEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("Expected empty log, got %d entries", len(response))
	}
}
