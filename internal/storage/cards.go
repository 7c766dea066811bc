package storage

import (
	"fmt"
	"log/slog"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/jmoiron/sqlx"
)

type cardRow struct {
	ID           int64  `db:"id"`
	DeckID       int64  `db:"deck_id"`
	Front        string `db:"front"`
	Back         string `db:"back"`
	CorrectCount int    `db:"correct_count"`
	SeenCount    int    `db:"seen_count"`
	CreatedAt    string `db:"created_at"`
}

func (r cardRow) toDomain() (domain.Card, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Card{}, err
	}
	return domain.Card{
		ID:           r.ID,
		DeckID:       r.DeckID,
		Front:        r.Front,
		Back:         r.Back,
		CorrectCount: r.CorrectCount,
		SeenCount:    r.SeenCount,
		CreatedAt:    created,
	}, nil
}

// ListCards returns the cards of a deck in insertion order. A deck that does
// not exist has no cards.
func (db *DB) ListCards(deckID int64) ([]domain.Card, error) {
	var cards []domain.Card
	err := db.withTx(func(tx *sqlx.Tx) error {
		var err error
		cards, err = listCards(tx, deckID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func listCards(tx *sqlx.Tx, deckID int64) ([]domain.Card, error) {
	var rows []cardRow
	err := tx.Select(&rows, `
		SELECT id, deck_id, front, back, correct_count, seen_count, created_at
		FROM cards WHERE deck_id = ?
		ORDER BY id
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for deck %d: %w", deckID, err)
	}

	cards := make([]domain.Card, 0, len(rows))
	for _, r := range rows {
		c, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to read card %d: %w", r.ID, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// AddCard inserts a card into a deck and returns its id. It returns
// domain.ErrReferential if the deck does not exist.
func (db *DB) AddCard(deckID int64, front, back string) (int64, error) {
	var id int64
	err := db.withTx(func(tx *sqlx.Tx) error {
		if err := requireDeck(tx, deckID); err != nil {
			return err
		}
		var err error
		id, err = db.insertCard(tx, deckID, front, back)
		return err
	})
	if err != nil {
		return 0, err
	}
	slog.Debug("card added", "card_id", id, "deck_id", deckID)
	return id, nil
}

func requireDeck(tx *sqlx.Tx, deckID int64) error {
	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM decks WHERE id = ?)`, deckID); err != nil {
		return fmt.Errorf("failed to check deck %d: %w", deckID, err)
	}
	if !exists {
		return fmt.Errorf("%w: deck %d", domain.ErrReferential, deckID)
	}
	return nil
}

func (db *DB) insertCard(tx *sqlx.Tx, deckID int64, front, back string) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO cards (deck_id, front, back, correct_count, seen_count, created_at)
		VALUES (?, ?, ?, 0, 0, ?)
	`, deckID, front, back, db.timestamp())
	if err != nil {
		return 0, fmt.Errorf("failed to insert card into deck %d: %w", deckID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for card in deck %d: %w", deckID, err)
	}
	return id, nil
}

// UpdateCard replaces a card's front and back. Statistics are left alone and
// a missing card is a no-op.
func (db *DB) UpdateCard(id int64, front, back string) error {
	err := db.withTx(func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`UPDATE cards SET front = ?, back = ? WHERE id = ?`, front, back, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", id, err)
	}
	slog.Debug("card updated", "card_id", id)
	return nil
}

// DeleteCard removes a card. Deleting a missing card is a no-op.
func (db *DB) DeleteCard(id int64) error {
	err := db.withTx(func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`DELETE FROM cards WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	slog.Debug("card deleted", "card_id", id)
	return nil
}

// RecordResult counts one answer for a card: seen_count always goes up by one
// and correct_count too when the answer was correct. It is the only writer of
// the statistics columns.
func (db *DB) RecordResult(cardID int64, correct bool) error {
	inc := 0
	if correct {
		inc = 1
	}

	var affected int64
	err := db.withTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`
			UPDATE cards
			SET seen_count = seen_count + 1, correct_count = correct_count + ?
			WHERE id = ?
		`, inc, cardID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record result for card %d: %w", cardID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCardNotFound, cardID)
	}
	slog.Debug("result recorded", "card_id", cardID, "correct", correct)
	return nil
}
