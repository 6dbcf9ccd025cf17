package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/util"
)

// entryPayload is the untrusted wire shape of one proposed entry. Amount is
// kept raw so one bad value drops that entry instead of the whole payload.
type entryPayload struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Notes    string          `json:"notes"`
	Date     string          `json:"date"`
}

type entriesPayload struct {
	Entries []entryPayload `json:"entries"`
}

// decodeEntries parses the model payload and validates each entry. Individual
// entries that fail validation are dropped; an error is returned only when
// the payload as a whole cannot be decoded.
func decodeEntries(data []byte) ([]domain.ProposedEntry, error) {
	var raw []entryPayload

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		// Some responses arrive as a bare array despite the schema.
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal entry array: %w", err)
		}
	} else {
		var payload entriesPayload
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal entries object: %w", err)
		}
		raw = payload.Entries
	}

	entries := make([]domain.ProposedEntry, 0, len(raw))
	for _, e := range raw {
		entry, ok := validateEntry(e)
		if !ok {
			log.Debug().
				Str("type", e.Type).
				Str("amount", string(e.Amount)).
				Str("date", e.Date).
				Msg("Dropped invalid proposed entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func validateEntry(e entryPayload) (domain.ProposedEntry, bool) {
	entryType := domain.EntryType(e.Type)
	if !entryType.Valid() {
		return domain.ProposedEntry{}, false
	}

	raw := strings.Trim(strings.TrimSpace(string(e.Amount)), `"`)
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsZero() {
		return domain.ProposedEntry{}, false
	}

	if e.Date != "" && !util.IsDay(e.Date) {
		return domain.ProposedEntry{}, false
	}

	category := strings.TrimSpace(e.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	return domain.ProposedEntry{
		Type:     entryType,
		Category: category,
		Amount:   amount,
		Notes:    e.Notes,
		Date:     e.Date,
	}, true
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the strict-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only the outermost JSON value if junk surrounds it. The opening
	// delimiter that appears first decides whether we have an object or array.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	open, closing := "{", "}"
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		open, closing = "[", "]"
	}
	start := strings.Index(s, open)
	end := strings.LastIndex(s, closing)
	if start != -1 && end > start {
		return strings.TrimSpace(s[start : end+1])
	}
	return s
}
