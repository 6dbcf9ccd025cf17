// Package gemini converts free text into proposed ledger entries using the
// Gemini API. It is a boundary adapter: model or transport failures degrade
// to an empty entry list and never reach the ingestion pipeline as fatal
// errors.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"google.golang.org/genai"
)

// Interpreter implements domain.Interpreter against the Gemini API.
type Interpreter struct {
	client *genai.Client
	model  string
}

var _ domain.Interpreter = (*Interpreter)(nil)

// NewInterpreter creates a Gemini-backed interpreter.
func NewInterpreter(ctx context.Context, apiKey, model string) (*Interpreter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Interpreter{client: client, model: model}, nil
}

// entriesSchema constrains the model to the proposed-entry shape.
var entriesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"entries": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type": {
						Type: genai.TypeString,
						Enum: []string{
							string(domain.EntryTypeIncome),
							string(domain.EntryTypeExpense),
							string(domain.EntryTypeBillPaid),
							string(domain.EntryTypeBillUnpaid),
							string(domain.EntryTypeExtra),
						},
					},
					"category": {Type: genai.TypeString},
					"amount":   {Type: genai.TypeNumber},
					"notes":    {Type: genai.TypeString},
					"date":     {Type: genai.TypeString},
				},
				Required: []string{"type", "category", "amount"},
			},
		},
	},
}

// ParseEntries asks the model to extract financial entries from text.
// A returned error is diagnostic; the entry slice is always safe to use.
func (i *Interpreter) ParseEntries(ctx context.Context, text string) ([]domain.ProposedEntry, error) {
	prompt := fmt.Sprintf(
		"Parse the following text for financial entries: %q.\n"+
			"Return a JSON object with an \"entries\" array. Each entry has keys:\n"+
			"- \"type\": one of income, expense, bill_paid, bill_unpaid, extra\n"+
			"- \"category\": a short label like 'food', 'salary', 'tea'\n"+
			"- \"amount\": a positive number\n"+
			"- \"notes\": optional string\n"+
			"- \"date\": include only if a specific date is mentioned, format YYYY-MM-DD\n"+
			"Output STRICT JSON only, no code fences, no extra text.",
		text)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   entriesSchema,
	}

	resp, err := i.client.Models.GenerateContent(ctx, i.model, contents, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Interpreter request failed")
		return []domain.ProposedEntry{}, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		log.Warn().Msg("Interpreter returned an empty response")
		return []domain.ProposedEntry{}, nil
	}

	entries, err := decodeEntries([]byte(cleanModelJSON(raw)))
	if err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("Interpreter returned unparsable payload")
		return []domain.ProposedEntry{}, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

// Summarize asks the model for a short advisory summary of the ledger window.
func (i *Interpreter) Summarize(ctx context.Context, rows []domain.DailyRow) (string, error) {
	history, err := json.Marshal(summaryInput(rows))
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}

	prompt := "Analyze this financial history and provide a short summary including top spending " +
		"categories, total savings, and any potential warnings or missing data: " + string(history)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: "You are a concise financial advisor. Provide feedback in friendly bullet points."}},
		},
	}

	resp, err := i.client.Models.GenerateContent(ctx, i.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return resp.Text(), nil
}

// summaryInput trims the window to days with activity so the prompt stays
// small; 365 mostly-empty rows are noise to the model.
func summaryInput(rows []domain.DailyRow) []domain.DailyRow {
	active := make([]domain.DailyRow, 0, len(rows))
	for _, row := range rows {
		if len(row.Income)+len(row.Expenses)+len(row.Bills)+len(row.ExtraIncome) > 0 {
			active = append(active, row)
		}
	}
	return active
}
