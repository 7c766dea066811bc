package domain

import "time"

// Deck is a named collection of cards. Names are not unique.
type Deck struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Card is a front/back text pair owned by exactly one deck, together with
// its accumulated answer statistics.
type Card struct {
	ID           int64
	DeckID       int64
	Front        string
	Back         string
	CorrectCount int
	SeenCount    int
	CreatedAt    time.Time
}

// CardText is the editable content of a card, as read by importers.
type CardText struct {
	Front string
	Back  string
}
