package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conorfennell/flashdeck/internal/study"
	"github.com/spf13/pflag"
)

const studyHelp = "[f] flip  [y] correct  [n] incorrect  [q] quit"

// study drives an interactive review of one deck, one command per line.
func (c *cli) study(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("study", pflag.ContinueOnError), args, 1, "study DECK_ID")
	if err != nil {
		return err
	}
	deckID, err := parseID(pos[0])
	if err != nil {
		return err
	}
	deck, err := c.db.GetDeck(deckID)
	if err != nil {
		return err
	}
	cards, err := c.db.ListCards(deckID)
	if err != nil {
		return err
	}

	session := study.New(c.db)
	if err := session.Start(study.EntriesFromCards(cards)); err != nil {
		if errors.Is(err, study.ErrNothingToStudy) {
			fmt.Fprintf(c.out, "Deck %q has no cards.\n", deck.Name)
			return nil
		}
		return err
	}

	fmt.Fprintf(c.out, "Studying %s. %s\n", deck.Name, studyHelp)
	for !session.Done() {
		side := "Front"
		if session.ShowingBack() {
			side = "Back"
		}
		fmt.Fprintf(c.out, "\n[%d left] %s: %s\n> ", session.Remaining(), side, session.Visible())

		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			break
		}
		switch strings.ToLower(strings.TrimSpace(c.in.Text())) {
		case "f", "flip", "":
			session.Flip()
		case "y", "yes", "correct":
			if err := session.Mark(true); err != nil {
				return err
			}
		case "n", "no", "incorrect":
			if err := session.Mark(false); err != nil {
				return err
			}
		case "q", "quit":
			fmt.Fprintln(c.out, "Session closed.")
			return c.printSummary(session)
		default:
			fmt.Fprintln(c.out, studyHelp)
		}
	}

	if session.Done() {
		fmt.Fprintln(c.out, "You finished the queue!")
	}
	return c.printSummary(session)
}

func (c *cli) printSummary(session *study.Session) error {
	sum := session.Summary()
	_, err := fmt.Fprintf(c.out, "Answered %d: %d correct, %d incorrect.\n", sum.Marks, sum.Correct, sum.Incorrect)
	return err
}
