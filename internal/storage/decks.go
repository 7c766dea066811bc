package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/jmoiron/sqlx"
)

type deckRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

func (r deckRow) toDomain() (domain.Deck, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Deck{}, err
	}
	return domain.Deck{ID: r.ID, Name: r.Name, CreatedAt: created}, nil
}

// ListDecks returns every deck ordered by name.
func (db *DB) ListDecks() ([]domain.Deck, error) {
	var rows []deckRow
	err := db.withTx(func(tx *sqlx.Tx) error {
		return tx.Select(&rows, `SELECT id, name, created_at FROM decks ORDER BY name, id`)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	decks := make([]domain.Deck, 0, len(rows))
	for _, r := range rows {
		d, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to read deck %d: %w", r.ID, err)
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// GetDeck retrieves a deck by id. It returns domain.ErrDeckNotFound if the
// deck does not exist.
func (db *DB) GetDeck(id int64) (*domain.Deck, error) {
	var deck domain.Deck
	err := db.withTx(func(tx *sqlx.Tx) error {
		var err error
		deck, err = getDeck(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func getDeck(tx *sqlx.Tx, id int64) (domain.Deck, error) {
	var r deckRow
	err := tx.Get(&r, `SELECT id, name, created_at FROM decks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Deck{}, fmt.Errorf("%w: id %d", domain.ErrDeckNotFound, id)
	}
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to find deck %d: %w", id, err)
	}
	return r.toDomain()
}

// AddDeck inserts a new deck and returns its id. The name is stored as given;
// callers validate it with domain.ValidateDeckName.
func (db *DB) AddDeck(name string) (int64, error) {
	var id int64
	err := db.withTx(func(tx *sqlx.Tx) error {
		var err error
		id, err = db.insertDeck(tx, name)
		return err
	})
	if err != nil {
		return 0, err
	}
	slog.Debug("deck added", "deck_id", id, "name", name)
	return id, nil
}

func (db *DB) insertDeck(tx *sqlx.Tx, name string) (int64, error) {
	res, err := tx.Exec(`INSERT INTO decks (name, created_at) VALUES (?, ?)`, name, db.timestamp())
	if err != nil {
		return 0, fmt.Errorf("failed to insert deck %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for deck %q: %w", name, err)
	}
	return id, nil
}

// RenameDeck changes a deck's name. Renaming a deck that does not exist is a
// no-op.
func (db *DB) RenameDeck(id int64, name string) error {
	err := db.withTx(func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`UPDATE decks SET name = ? WHERE id = ?`, name, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to rename deck %d: %w", id, err)
	}
	slog.Debug("deck renamed", "deck_id", id, "name", name)
	return nil
}

// DeleteDeck removes a deck and all of its cards atomically. Deleting a deck
// that does not exist is a no-op.
func (db *DB) DeleteDeck(id int64) error {
	var removed int64
	err := db.withTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`DELETE FROM cards WHERE deck_id = ?`, id)
		if err != nil {
			return err
		}
		removed, _ = res.RowsAffected()
		_, err = tx.Exec(`DELETE FROM decks WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete deck %d: %w", id, err)
	}
	slog.Info("deck deleted", "deck_id", id, "cards_deleted", removed)
	return nil
}
