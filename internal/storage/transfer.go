package storage

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/exchange"
	"github.com/jmoiron/sqlx"
)

// ExportDeck writes a deck and its cards to w in the exchange JSON format.
// It returns domain.ErrDeckNotFound if the deck does not exist.
func (db *DB) ExportDeck(deckID int64, w io.Writer) error {
	var payload exchange.Payload
	err := db.withTx(func(tx *sqlx.Tx) error {
		deck, err := getDeck(tx, deckID)
		if err != nil {
			return err
		}
		cards, err := listCards(tx, deckID)
		if err != nil {
			return err
		}
		payload = exchange.NewPayload(deck, cards, db.now())
		return nil
	})
	if err != nil {
		return err
	}

	if err := exchange.Encode(w, payload); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	slog.Info("deck exported", "deck_id", deckID, "cards", len(payload.Cards))
	return nil
}

// ExportDeckFile exports a deck to the file at path, replacing it.
func (db *DB) ExportDeckFile(deckID int64, path string) error {
	// Render first so a missing deck never truncates an existing file.
	var buf bytes.Buffer
	if err := db.ExportDeck(deckID, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", domain.ErrIO, path, err)
	}
	return nil
}

// ImportDeck reads an exported deck from r and stores it as a new deck,
// returning the new id. Only names and card texts are taken from the
// document: every imported card starts with zero statistics and a fresh
// creation time. A missing name is replaced by one carrying the import time.
func (db *DB) ImportDeck(r io.Reader) (int64, error) {
	name, cards, err := exchange.Decode(r)
	if err != nil {
		return 0, err
	}
	return db.CreateDeckWithCards(name, cards)
}

// ImportDeckFile imports the exported deck stored at path.
func (db *DB) ImportDeckFile(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to open %s: %v", domain.ErrIO, path, err)
	}
	defer f.Close()

	return db.ImportDeck(f)
}

// CreateDeckWithCards creates a deck holding cards, in order, as a single
// transaction. An empty name is replaced by "Deck <UTC timestamp>".
func (db *DB) CreateDeckWithCards(name string, cards []domain.CardText) (int64, error) {
	if name == "" {
		name = "Deck " + db.timestamp()
	}

	var deckID int64
	err := db.withTx(func(tx *sqlx.Tx) error {
		var err error
		deckID, err = db.insertDeck(tx, name)
		if err != nil {
			return err
		}
		for _, c := range cards {
			if _, err := db.insertCard(tx, deckID, c.Front, c.Back); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import deck %q: %w", name, err)
	}

	slog.Info("deck imported", "deck_id", deckID, "name", name, "cards", len(cards))
	return deckID, nil
}
