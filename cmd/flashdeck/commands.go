package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/exchange"
	"github.com/conorfennell/flashdeck/internal/parser"
	"github.com/conorfennell/flashdeck/internal/storage"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

const previewLength = 60

// cli is the presentation layer. It owns no state besides its collaborators.
type cli struct {
	db  *storage.DB
	in  *bufio.Scanner
	out io.Writer
}

func (c *cli) dispatch(name string, args []string) error {
	switch name {
	case "decks":
		return c.listDecks(args)
	case "add-deck":
		return c.addDeck(args)
	case "rename-deck":
		return c.renameDeck(args)
	case "delete-deck":
		return c.deleteDeck(args)
	case "cards":
		return c.listCards(args)
	case "add-card":
		return c.addCard(args)
	case "edit-card":
		return c.editCard(args)
	case "delete-card":
		return c.deleteCard(args)
	case "export":
		return c.exportDeck(args)
	case "import":
		return c.importDeck(args)
	case "study":
		return c.study(args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

// parseArgs parses command flags and checks the number of positional arguments.
func parseArgs(fs *pflag.FlagSet, args []string, want int, synopsis string) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != want {
		return nil, fmt.Errorf("%w: flashdeck %s", errUsage, synopsis)
	}
	return fs.Args(), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, s)
	}
	return id, nil
}

// confirm asks a yes/no question on the terminal. Anything but y/yes, or
// end of input, is a no.
func (c *cli) confirm(question string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", question)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *cli) listDecks(args []string) error {
	if _, err := parseArgs(pflag.NewFlagSet("decks", pflag.ContinueOnError), args, 0, "decks"); err != nil {
		return err
	}
	decks, err := c.db.ListDecks()
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Fprintln(c.out, "No decks yet. Create one with: flashdeck add-deck NAME")
		return nil
	}
	for _, d := range decks {
		fmt.Fprintf(c.out, "%4d  %s\n", d.ID, d.Name)
	}
	return nil
}

func (c *cli) addDeck(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("add-deck", pflag.ContinueOnError), args, 1, "add-deck NAME")
	if err != nil {
		return err
	}
	name := strings.TrimSpace(pos[0])
	if err := domain.ValidateDeckName(name); err != nil {
		return err
	}
	id, err := c.db.AddDeck(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Created deck %d: %s\n", id, name)
	return nil
}

func (c *cli) renameDeck(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("rename-deck", pflag.ContinueOnError), args, 2, "rename-deck ID NAME")
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	name := strings.TrimSpace(pos[1])
	if err := domain.ValidateDeckName(name); err != nil {
		return err
	}
	// The store ignores unknown ids, so check first to give feedback.
	if _, err := c.db.GetDeck(id); err != nil {
		return err
	}
	if err := c.db.RenameDeck(id, name); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Renamed deck %d to %s\n", id, name)
	return nil
}

func (c *cli) deleteDeck(args []string) error {
	fs := pflag.NewFlagSet("delete-deck", pflag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Do not ask for confirmation")
	pos, err := parseArgs(fs, args, 1, "delete-deck ID [--yes]")
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	deck, err := c.db.GetDeck(id)
	if err != nil {
		return err
	}
	if !*yes && !c.confirm(fmt.Sprintf("Delete deck %q and all its cards?", deck.Name)) {
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	}
	if err := c.db.DeleteDeck(id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted deck %d\n", id)
	return nil
}

func (c *cli) listCards(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("cards", pflag.ContinueOnError), args, 1, "cards DECK_ID")
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

	fmt.Fprintf(c.out, "%s (%d cards)\n", deck.Name, len(cards))
	for _, card := range cards {
		fmt.Fprintf(c.out, "%4d  %s (✓%d / seen %d)\n", card.ID, preview(card.Front), card.CorrectCount, card.SeenCount)
	}
	return nil
}

// preview flattens text to one line and cuts it to previewLength runes.
func preview(text string) string {
	flat := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(flat) > previewLength {
		flat = flat[:previewLength]
	}
	return string(flat)
}

func (c *cli) addCard(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("add-card", pflag.ContinueOnError), args, 3, "add-card DECK_ID FRONT BACK")
	if err != nil {
		return err
	}
	deckID, err := parseID(pos[0])
	if err != nil {
		return err
	}
	front, back := strings.TrimSpace(pos[1]), strings.TrimSpace(pos[2])
	if err := domain.ValidateCardText(front, back); err != nil {
		return err
	}
	id, err := c.db.AddCard(deckID, front, back)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added card %d to deck %d\n", id, deckID)
	return nil
}

func (c *cli) editCard(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("edit-card", pflag.ContinueOnError), args, 3, "edit-card ID FRONT BACK")
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	front, back := strings.TrimSpace(pos[1]), strings.TrimSpace(pos[2])
	if err := domain.ValidateCardText(front, back); err != nil {
		return err
	}
	if err := c.db.UpdateCard(id, front, back); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Updated card %d\n", id)
	return nil
}

func (c *cli) deleteCard(args []string) error {
	fs := pflag.NewFlagSet("delete-card", pflag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Do not ask for confirmation")
	pos, err := parseArgs(fs, args, 1, "delete-card ID [--yes]")
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	if !*yes && !c.confirm("Delete selected card?") {
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	}
	if err := c.db.DeleteCard(id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted card %d\n", id)
	return nil
}

func (c *cli) exportDeck(args []string) error {
	pos, err := parseArgs(pflag.NewFlagSet("export", pflag.ContinueOnError), args, 2, "export DECK_ID PATH")
	if err != nil {
		return err
	}
	deckID, err := parseID(pos[0])
	if err != nil {
		return err
	}
	if err := c.db.ExportDeckFile(deckID, pos[1]); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Exported deck %d to %s\n", deckID, pos[1])
	return nil
}

func (c *cli) importDeck(args []string) error {
	fs := pflag.NewFlagSet("import", pflag.ContinueOnError)
	format := fs.StringP("format", "f", "", "Source format: json, md or xlsx (default: from extension)")
	pos, err := parseArgs(fs, args, 1, "import PATH [--format json|md|xlsx]")
	if err != nil {
		return err
	}
	path := pos[0]
	if *format == "" {
		*format = formatFromExt(path)
	}

	var id int64
	switch *format {
	case "json":
		id, err = c.db.ImportDeckFile(path)
	case "md":
		id, err = c.importMarkdown(path)
	case "xlsx":
		id, err = c.importSheet(path)
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Imported %s as deck %d\n", path, id)
	return nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt":
		return "md"
	case ".xlsx":
		return "xlsx"
	default:
		return "json"
	}
}

func (c *cli) importMarkdown(path string) (int64, error) {
	name, cards, err := parser.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read %s: %v", domain.ErrIO, path, err)
	}
	return c.db.CreateDeckWithCards(name, cards)
}

func (c *cli) importSheet(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to open %s: %v", domain.ErrIO, path, err)
	}
	defer f.Close()

	cards, err := exchange.ReadSheet(f)
	if err != nil {
		return 0, err
	}
	base := filepath.Base(path)
	return c.db.CreateDeckWithCards(strings.TrimSuffix(base, filepath.Ext(base)), cards)
}
