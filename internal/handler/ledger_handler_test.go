package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/ledger"
	"github.com/smartledger-ai/smartledger-backend/internal/service"
	"github.com/smartledger-ai/smartledger-backend/internal/testutil"
	"github.com/smartledger-ai/smartledger-backend/internal/util"
	"github.com/smartledger-ai/smartledger-backend/internal/websocket"
)

func newTestLedgerService() *service.LedgerService {
	state := &domain.AppState{
		Rows: ledger.GenerateWindow(time.Now(), 30),
		Logs: []domain.LogEntry{},
		User: domain.UserProfile{Name: "Guest User"},
	}
	return service.NewLedgerService(state, testutil.NewMockSnapshotRepository(), "test_state", &websocket.NoOpPublisher{})
}

func TestGetLedger(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetLedger(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response LedgerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response.Rows) != 30 {
		t.Errorf("Expected 30 rows, got %d", len(response.Rows))
	}

	// Newest first
	if response.Rows[0].Date != util.FormatDay(time.Now()) {
		t.Errorf("Expected first row to be today, got %s", response.Rows[0].Date)
	}

	if response.Balance != "0" {
		t.Errorf("Expected balance '0', got %s", response.Balance)
	}
}

func TestGetRow_InvalidDate(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/not-a-date", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("not-a-date")

	if err := handler.GetRow(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetRow_OutsideWindow(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/1999-01-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("1999-01-01")

	if err := handler.GetRow(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeNotFound {
		t.Errorf("Expected type %s, got %s", ErrorTypeNotFound, problem.Type)
	}
}

func TestAddEntry_Success(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())
	today := util.FormatDay(time.Now())

	reqBody := `{"type": "expense", "category": "Food", "amount": "45.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/"+today+"/entries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues(today)

	if err := handler.AddEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Type != "expense" {
		t.Errorf("Expected type 'expense', got %s", response.Type)
	}
	if response.Amount != "45.5" {
		t.Errorf("Expected amount '45.5', got %s", response.Amount)
	}
	if response.ID == "" {
		t.Error("Expected a transaction id")
	}
}

func TestAddEntry_InvalidType(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())
	today := util.FormatDay(time.Now())

	reqBody := `{"type": "transfer", "category": "Food", "amount": "10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/"+today+"/entries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues(today)

	if err := handler.AddEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAddEntry_ZeroAmount(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())
	today := util.FormatDay(time.Now())

	reqBody := `{"type": "income", "category": "Salary", "amount": "0"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/"+today+"/entries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues(today)

	if err := handler.AddEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAddEntry_OutsideWindow(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())

	reqBody := `{"type": "income", "category": "Salary", "amount": "10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/1999-01-01/entries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("1999-01-01")

	if err := handler.AddEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteEntry_RoundTrip(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())
	today := util.FormatDay(time.Now())

	// Create an entry first
	reqBody := `{"type": "income", "category": "Salary", "amount": "200"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/"+today+"/entries", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues(today)
	if err := handler.AddEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var created TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	// Delete it
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/ledger/"+today+"/entries/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("date", "id")
	c.SetParamValues(today, created.ID)

	if err := handler.DeleteEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DeleteEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Removed {
		t.Error("Expected removed to be true")
	}
}

func TestDeleteEntry_InvalidID(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())
	today := util.FormatDay(time.Now())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/ledger/"+today+"/entries/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date", "id")
	c.SetParamValues(today, "not-a-uuid")

	if err := handler.DeleteEntry(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestEditNotes(t *testing.T) {
	e := echo.New()
	handler := NewLedgerHandler(newTestLedgerService())
	today := util.FormatDay(time.Now())

	reqBody := `{"notes": "rent due soon"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/ledger/"+today+"/notes", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues(today)

	if err := handler.EditNotes(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DailyRowResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Notes != "rent due soon" {
		t.Errorf("Expected notes 'rent due soon', got %s", response.Notes)
	}
}
