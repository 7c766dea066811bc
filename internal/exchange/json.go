// Package exchange holds the on-disk formats decks are exported to and
// imported from.
package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// Payload is the JSON document written by an export.
type Payload struct {
	Name       string      `json:"name"`
	ExportedAt time.Time   `json:"exported_at"`
	Cards      []CardEntry `json:"cards"`
}

// CardEntry is one card inside a Payload.
type CardEntry struct {
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	CorrectCount int       `json:"correct_count"`
	SeenCount    int       `json:"seen_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// importPayload only carries the fields an import consumes. Everything else
// in the document is ignored.
type importPayload struct {
	Name  string `json:"name"`
	Cards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"cards"`
}

// NewPayload builds an export document for the deck and its cards, in the
// order given.
func NewPayload(deck domain.Deck, cards []domain.Card, exportedAt time.Time) Payload {
	p := Payload{
		Name:       deck.Name,
		ExportedAt: exportedAt.UTC(),
		Cards:      make([]CardEntry, 0, len(cards)),
	}
	for _, c := range cards {
		p.Cards = append(p.Cards, CardEntry{
			Front:        c.Front,
			Back:         c.Back,
			CorrectCount: c.CorrectCount,
			SeenCount:    c.SeenCount,
			CreatedAt:    c.CreatedAt.UTC(),
		})
	}
	return p
}

// Encode writes p as indented UTF-8 JSON. Non-ASCII text and HTML characters
// are written as-is.
func Encode(w io.Writer, p Payload) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode deck %q: %w", p.Name, err)
	}
	return nil
}

// Decode reads an exported deck and returns its name (possibly empty) and card
// texts in document order. Statistics and timestamps are not read.
func Decode(r io.Reader) (string, []domain.CardText, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to read deck: %v", domain.ErrIO, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", nil, fmt.Errorf("%w: expected a JSON object", domain.ErrFormat)
	}

	var p importPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	cards := make([]domain.CardText, 0, len(p.Cards))
	for _, c := range p.Cards {
		cards = append(cards, domain.CardText{Front: c.Front, Back: c.Back})
	}
	return p.Name, cards, nil
}
