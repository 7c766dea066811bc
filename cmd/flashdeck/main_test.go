package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type result struct {
	stdout string
	stderr string
	code   int
}

// runCLI runs one flashdeck invocation against dbPath with input on stdin.
func runCLI(t *testing.T, dbPath, input string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--db", dbPath}, args...), strings.NewReader(input), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func mustRun(t *testing.T, dbPath, input string, args ...string) string {
	t.Helper()
	res := runCLI(t, dbPath, input, args...)
	if res.code != 0 {
		t.Fatalf("flashdeck %v exited %d: %s", args, res.code, res.stderr)
	}
	return res.stdout
}

func TestDeckAndCardLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "flashdeck.db")

	if out := mustRun(t, db, "", "decks"); !strings.Contains(out, "No decks yet") {
		t.Errorf("Unexpected empty listing: %q", out)
	}

	if out := mustRun(t, db, "", "add-deck", "Spanish"); out != "Created deck 1: Spanish\n" {
		t.Errorf("Unexpected add-deck output: %q", out)
	}
	mustRun(t, db, "", "add-deck", "French")

	if out := mustRun(t, db, "", "decks"); out != "   2  French\n   1  Spanish\n" {
		t.Errorf("Decks should be sorted by name, got %q", out)
	}

	mustRun(t, db, "", "rename-deck", "2", "Français")
	mustRun(t, db, "", "add-card", "1", "hola", "hello")
	mustRun(t, db, "", "add-card", "1", "adios", "")
	mustRun(t, db, "", "edit-card", "2", "adiós", "bye")

	out := mustRun(t, db, "", "cards", "1")
	want := "Spanish (2 cards)\n   1  hola (✓0 / seen 0)\n   2  adiós (✓0 / seen 0)\n"
	if out != want {
		t.Errorf("cards output = %q, want %q", out, want)
	}

	mustRun(t, db, "", "delete-card", "--yes", "1")
	if out := mustRun(t, db, "", "cards", "1"); !strings.Contains(out, "(1 cards)") {
		t.Errorf("Expected one card after delete, got %q", out)
	}

	if out := mustRun(t, db, "n\n", "delete-deck", "1"); !strings.Contains(out, "Cancelled.") {
		t.Errorf("Expected cancellation, got %q", out)
	}
	if out := mustRun(t, db, "", "decks"); !strings.Contains(out, "Spanish") {
		t.Error("Deck should survive a cancelled delete")
	}

	if out := mustRun(t, db, "y\n", "delete-deck", "1"); !strings.Contains(out, "Deleted deck 1") {
		t.Errorf("Expected deletion, got %q", out)
	}
	if out := mustRun(t, db, "", "decks"); strings.Contains(out, "Spanish") || !strings.Contains(out, "Français") {
		t.Errorf("Unexpected listing after delete: %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "flashdeck.db")
	mustRun(t, db, "", "add-deck", "Spanish")

	testCases := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "unknown command", args: []string{"fly"}, wantCode: 2, wantErr: "unknown command"},
		{name: "missing argument", args: []string{"add-deck"}, wantCode: 2, wantErr: "flashdeck add-deck NAME"},
		{name: "bad id", args: []string{"cards", "abc"}, wantCode: 2, wantErr: "invalid id"},
		{name: "blank deck name", args: []string{"add-deck", "  "}, wantCode: 1, wantErr: "validation failed"},
		{name: "blank card", args: []string{"add-card", "1", "", ""}, wantCode: 1, wantErr: "validation failed"},
		{name: "card for missing deck", args: []string{"add-card", "9", "a", "b"}, wantCode: 1, wantErr: "referenced deck does not exist"},
		{name: "rename missing deck", args: []string{"rename-deck", "9", "x"}, wantCode: 1, wantErr: "not found"},
		{name: "export missing deck", args: []string{"export", "9", filepath.Join(t.TempDir(), "x.json")}, wantCode: 1, wantErr: "not found"},
		{name: "unknown import format", args: []string{"import", "--format", "csv", "deck.csv"}, wantCode: 2, wantErr: "unknown format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, db, "", tc.args...)
			if res.code != tc.wantCode {
				t.Errorf("Expected exit code %d, got %d (stderr %q)", tc.wantCode, res.code, res.stderr)
			}
			if !strings.Contains(res.stderr, tc.wantErr) {
				t.Errorf("Expected stderr to contain %q, got %q", tc.wantErr, res.stderr)
			}
		})
	}
}

func TestNoCommandPrintsUsage(t *testing.T) {
	res := runCLI(t, filepath.Join(t.TempDir(), "flashdeck.db"), "")
	if res.code != 2 || !strings.Contains(res.stderr, "Usage: flashdeck") {
		t.Errorf("Expected usage with exit code 2, got %d: %q", res.code, res.stderr)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "flashdeck.db")
	mustRun(t, db, "", "add-deck", "Spanish")
	mustRun(t, db, "", "add-card", "1", "hola", "hello")
	// Input ends before any answer; the session just closes.
	mustRun(t, db, "", "study", "1")

	path := filepath.Join(dir, "spanish.json")
	mustRun(t, db, "", "export", "1", path)
	if out := mustRun(t, db, "", "import", path); out != "Imported "+path+" as deck 2\n" {
		t.Errorf("Unexpected import output: %q", out)
	}

	md := filepath.Join(dir, "verbs.md")
	if err := os.WriteFile(md, []byte("Q: ser\nA: to be\n---\nQ: ir\nA: to go\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	mustRun(t, db, "", "import", md)

	if out := mustRun(t, db, "", "decks"); out != "   1  Spanish\n   2  Spanish\n   3  verbs\n" {
		t.Errorf("Unexpected decks after import: %q", out)
	}
	if out := mustRun(t, db, "", "cards", "3"); !strings.Contains(out, "ser (✓0 / seen 0)") || !strings.Contains(out, "ir (✓0 / seen 0)") {
		t.Errorf("Unexpected markdown deck: %q", out)
	}

	res := runCLI(t, db, "", "import", filepath.Join(dir, "missing.json"))
	if res.code != 1 || !strings.Contains(res.stderr, "i/o failure") {
		t.Errorf("Expected an i/o error, got %d: %q", res.code, res.stderr)
	}
}

func TestStudySession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "flashdeck.db")
	mustRun(t, db, "", "add-deck", "Spanish")
	mustRun(t, db, "", "add-card", "1", "hola", "hello")
	mustRun(t, db, "", "add-card", "1", "adios", "bye")

	out := mustRun(t, db, "f\nn\ny\ny\n", "study", "1")

	for _, want := range []string{
		"[2 left] Front: hola",
		"[2 left] Back: hello",
		"[2 left] Front: adios",
		"[1 left] Front: hola",
		"You finished the queue!",
		"Answered 3: 2 correct, 1 incorrect.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected study output to contain %q, got:\n%s", want, out)
		}
	}

	cards := mustRun(t, db, "", "cards", "1")
	if !strings.Contains(cards, "hola (✓1 / seen 2)") || !strings.Contains(cards, "adios (✓1 / seen 1)") {
		t.Errorf("Statistics not persisted: %q", cards)
	}
}

func TestStudyQuitAndEmptyDeck(t *testing.T) {
	db := filepath.Join(t.TempDir(), "flashdeck.db")
	mustRun(t, db, "", "add-deck", "Empty")
	mustRun(t, db, "", "add-deck", "Spanish")
	mustRun(t, db, "", "add-card", "2", "hola", "hello")

	if out := mustRun(t, db, "", "study", "1"); !strings.Contains(out, `Deck "Empty" has no cards.`) {
		t.Errorf("Unexpected output for empty deck: %q", out)
	}

	out := mustRun(t, db, "n\nq\n", "study", "2")
	if !strings.Contains(out, "Session closed.") || !strings.Contains(out, "Answered 1: 0 correct, 1 incorrect.") {
		t.Errorf("Unexpected output after quitting: %q", out)
	}
	if strings.Contains(out, "You finished the queue!") {
		t.Error("Quitting should not report a finished queue")
	}

	if cards := mustRun(t, db, "", "cards", "2"); !strings.Contains(cards, "(✓0 / seen 1)") {
		t.Errorf("Answer before quitting should be persisted: %q", cards)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("ñ", 70)
	testCases := map[string]string{
		"short":        "short",
		"line\nbreaks": "line breaks",
		long:           strings.Repeat("ñ", 60),
		"":             "",
	}
	for in, want := range testCases {
		if got := preview(in); got != want {
			t.Errorf("preview(%q) = %q, want %q", in, got, want)
		}
	}
}
