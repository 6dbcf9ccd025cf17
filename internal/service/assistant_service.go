package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/util"
)

// AssistantService runs the natural-language entry pipeline: free text goes
// to the interpreter, the proposed entries are fed one by one through the
// state store's normal validation, and the batch is closed with a single
// AI_PROCESS log entry. The batch never fails as a whole.
type AssistantService struct {
	ledgerService *LedgerService
	interpreter   domain.Interpreter

	now func() time.Time
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(ledgerService *LedgerService, interpreter domain.Interpreter) *AssistantService {
	return &AssistantService{
		ledgerService: ledgerService,
		interpreter:   interpreter,
		now:           time.Now,
	}
}

// BatchResult reports what happened to an assistant batch. Submitted counts
// every entry the interpreter proposed; Accepted only those that passed
// validation and landed in the ledger.
type BatchResult struct {
	Submitted int
	Accepted  int
	Dates     []string
}

// Process converts text into ledger entries. Interpreter failures degrade to
// an empty batch; individually rejected entries are dropped silently.
// Entries without a date land on the current day.
func (s *AssistantService) Process(ctx context.Context, text string) (*BatchResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}

	entries, err := s.interpreter.ParseEntries(ctx, text)
	if err != nil {
		// Adapter errors are diagnostic only; the batch proceeds with
		// whatever (possibly nothing) was extracted.
		log.Warn().Err(err).Msg("Interpreter failed, processing empty batch")
	}

	today := util.FormatDay(s.now())
	result := &BatchResult{Submitted: len(entries)}
	seen := make(map[string]bool)

	for _, entry := range entries {
		date := entry.Date
		if date == "" {
			date = today
		}

		if _, err := s.ledgerService.AddEntry(ctx, date, entry.Type, entry.Amount, entry.Category, entry.Notes); err != nil {
			log.Debug().
				Err(err).
				Str("date", date).
				Str("type", string(entry.Type)).
				Msg("Dropped proposed entry")
			continue
		}

		result.Accepted++
		if !seen[date] {
			seen[date] = true
			result.Dates = append(result.Dates, date)
		}
	}

	s.ledgerService.RecordAIProcess(ctx, result.Submitted)
	return result, nil
}

// Summary asks the interpreter for an advisory summary of the current window.
func (s *AssistantService) Summary(ctx context.Context) (string, error) {
	return s.interpreter.Summarize(ctx, s.ledgerService.Rows())
}
