package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/conorfennell/flashdeck/internal/config"
	"github.com/conorfennell/flashdeck/internal/logger"
	"github.com/conorfennell/flashdeck/internal/storage"
	"github.com/spf13/pflag"
)

const usage = `Usage: flashdeck [global flags] <command> [args]

Commands:
  decks                          List decks
  add-deck NAME                  Create a deck
  rename-deck ID NAME            Rename a deck
  delete-deck ID [--yes]         Delete a deck and all of its cards
  cards DECK_ID                  List the cards of a deck
  add-card DECK_ID FRONT BACK    Add a card to a deck
  edit-card ID FRONT BACK        Change a card's text
  delete-card ID [--yes]         Delete a card
  export DECK_ID PATH            Export a deck as JSON
  import PATH [--format F]       Import a deck (json, md or xlsx)
  study DECK_ID                  Review a deck interactively

Global flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("flashdeck", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(false)
	config.RegisterFlags(flags)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.Setup(cfg, stderr)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer db.Close()
	slog.Info("Database opened", "path", cfg.DBPath)

	c := &cli{
		db:  db,
		in:  bufio.NewScanner(stdin),
		out: stdout,
	}
	if err := c.dispatch(flags.Arg(0), flags.Args()[1:]); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}
