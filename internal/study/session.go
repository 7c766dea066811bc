// Package study runs review sessions over a snapshot of a deck's cards.
//
// A session holds only card ids and display text. Each answer is written
// through a Recorder before the in-memory queue moves, so statistics are
// never cached here.
package study

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/google/uuid"
)

// ErrNothingToStudy is returned by Start when there are no cards.
var ErrNothingToStudy = errors.New("nothing to study")

// emptySide is shown in place of blank card text.
const emptySide = "(empty)"

// Recorder persists the outcome of one answer.
type Recorder interface {
	RecordResult(cardID int64, correct bool) error
}

// Entry is the part of a card a session needs.
type Entry struct {
	CardID int64
	Front  string
	Back   string
}

// EntriesFromCards projects cards into session entries, keeping their order.
func EntriesFromCards(cards []domain.Card) []Entry {
	entries := make([]Entry, 0, len(cards))
	for _, c := range cards {
		entries = append(entries, Entry{CardID: c.ID, Front: c.Front, Back: c.Back})
	}
	return entries
}

// Summary counts the answers given during a session.
type Summary struct {
	Marks     int
	Correct   int
	Incorrect int
}

// Session is a single review pass. Cards answered correctly leave the
// session; cards answered incorrectly go to the back of the queue. There is
// no limit on retries. A Session is not safe for concurrent use.
type Session struct {
	rec     Recorder
	id      string
	log     *slog.Logger
	queue   []Entry
	current *Entry
	back    bool
	summary Summary
}

// New returns an idle session that reports answers to rec.
func New(rec Recorder) *Session {
	id := uuid.NewString()
	return &Session{
		rec: rec,
		id:  id,
		log: slog.With("session", id),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Start loads a copy of entries and shows the front of the first one.
func (s *Session) Start(entries []Entry) error {
	if len(entries) == 0 {
		return ErrNothingToStudy
	}
	s.queue = append([]Entry(nil), entries...)
	s.summary = Summary{}
	s.log.Info("study session started", "cards", len(entries))
	s.advance()
	return nil
}

// Flip toggles between the front and the back of the current card.
func (s *Session) Flip() {
	if s.current == nil {
		return
	}
	s.back = !s.back
}

// Mark records an answer for the current card and moves to the next one.
// If recording fails the session is left unchanged and the error returned.
func (s *Session) Mark(correct bool) error {
	if s.current == nil {
		return nil
	}

	entry := *s.current
	if err := s.rec.RecordResult(entry.CardID, correct); err != nil {
		return fmt.Errorf("failed to record answer for card %d: %w", entry.CardID, err)
	}

	s.summary.Marks++
	if correct {
		s.summary.Correct++
	} else {
		s.summary.Incorrect++
		s.queue = append(s.queue, entry)
	}
	s.log.Debug("card marked", "card_id", entry.CardID, "correct", correct, "remaining", len(s.queue))

	s.advance()
	if s.current == nil {
		s.log.Info("study session complete",
			"marks", s.summary.Marks,
			"correct", s.summary.Correct,
			"incorrect", s.summary.Incorrect,
		)
	}
	return nil
}

func (s *Session) advance() {
	s.back = false
	if len(s.queue) == 0 {
		s.current = nil
		return
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &next
}

// Current returns the card being reviewed, if any.
func (s *Session) Current() (Entry, bool) {
	if s.current == nil {
		return Entry{}, false
	}
	return *s.current, true
}

// ShowingBack reports whether the back of the current card is displayed.
func (s *Session) ShowingBack() bool { return s.back }

// Visible returns the text of the displayed side, or "(empty)" when that side
// is blank. It returns "" once the session is done.
func (s *Session) Visible() string {
	if s.current == nil {
		return ""
	}
	text := s.current.Front
	if s.back {
		text = s.current.Back
	}
	if strings.TrimSpace(text) == "" {
		return emptySide
	}
	return text
}

// Done reports whether there is no card left to show.
func (s *Session) Done() bool { return s.current == nil }

// Remaining is the number of queued entries, including the current one.
func (s *Session) Remaining() int {
	n := len(s.queue)
	if s.current != nil {
		n++
	}
	return n
}

// Summary returns the answer counts so far.
func (s *Session) Summary() Summary { return s.summary }
