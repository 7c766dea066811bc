// Package parser reads decks written as plain text question/answer blocks:
//
//	Q: hola
//	A: hello
//	---
//	Q: adiós
//	A: bye
//
// Lines following a Q: or A: line continue that side until the next prefix
// or separator.
package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/flashdeck/internal/domain"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	separator   = "---"
)

type side int

const (
	none side = iota
	front
	back
)

// ParseFile parses the file at path and returns its cards together with a
// deck name derived from the file's base name.
func ParseFile(path string) (string, []domain.CardText, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	cards, err := Parse(file)
	if err != nil {
		return "", nil, err
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), cards, nil
}

// Parse extracts cards from r. Blocks with neither a front nor a back are dropped.
func Parse(r io.Reader) ([]domain.CardText, error) {
	var (
		cards   []domain.CardText
		lines   = map[side][]string{}
		current = none
	)

	flush := func() {
		card := domain.CardText{
			Front: strings.TrimSpace(strings.Join(lines[front], "\n")),
			Back:  strings.TrimSpace(strings.Join(lines[back], "\n")),
		}
		if card.Front != "" || card.Back != "" {
			cards = append(cards, card)
		}
		lines = map[side][]string{}
		current = none
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == separator:
			flush()
		case strings.HasPrefix(line, frontPrefix):
			// A second question starts a new card.
			if current != none {
				flush()
			}
			current = front
			lines[front] = append(lines[front], stripPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix):
			current = back
			lines[back] = append(lines[back], stripPrefix(line, backPrefix))
		case current != none:
			lines[current] = append(lines[current], line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return cards, nil
}

func stripPrefix(line, prefix string) string {
	return strings.TrimPrefix(line[len(prefix):], " ")
}
