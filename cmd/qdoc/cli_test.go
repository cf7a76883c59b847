package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/ops"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	cleanup := func() {
		database.Close()
	}
	return database, cleanup
}

// runApp runs the CLI app capturing stdout, optionally piping stdin content.
func runApp(t *testing.T, app interface{ Run([]string) error }, stdin string, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	oldStdin := os.Stdin
	if stdin != "" {
		stdinR, stdinW, _ := os.Pipe()
		os.Stdin = stdinR
		go func() {
			_, _ = stdinW.WriteString(stdin)
			stdinW.Close()
		}()
	}

	err := app.Run(append([]string{"qdoc"}, args...))

	os.Stdin = oldStdin
	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", nil},
		{"single tag", "qms", []string{"qms"}},
		{"multiple tags", "qms,audit,iso", []string{"qms", "audit", "iso"}},
		{"tags with spaces", " qms , audit ", []string{"qms", "audit"}},
		{"empty tags filtered", "qms,,audit,", []string{"qms", "audit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseTags(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("expected %d tags, got %d", len(tt.expected), len(result))
				return
			}
			for i, tag := range result {
				if tag != tt.expected[i] {
					t.Errorf("expected tag[%d]=%q, got %q", i, tt.expected[i], tag)
				}
			}
		})
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single page", "<p>One</p>", []string{"<p>One</p>"}},
		{
			"two pages",
			"<p>One</p>\n--- Page Break ---\n<p>Two</p>",
			[]string{"<p>One</p>", "<p>Two</p>"},
		},
		{"empty input", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPages(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pages, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("page[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCLIStore(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	app := newCLIApp(database, cfg)

	out, err := runApp(t, app, "<h1>Quality Policy</h1><p>Body.</p>",
		"store", "--code=DOC-001", "--title=Quality Policy", "--type=Policy", "--tags=qms,audit")
	if err != nil {
		t.Fatalf("store command failed: %v", err)
	}

	var output ops.StoreOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.ID == "" {
		t.Error("expected non-empty ID")
	}
	if output.Code != "DOC-001" {
		t.Errorf("expected code=DOC-001, got %s", output.Code)
	}
	if output.Rev != "A" {
		t.Errorf("expected rev=A, got %s", output.Rev)
	}
}

func TestCLIFetch(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	storeOutput, err := ops.Store(database, cfg, ops.StoreInput{
		Settings: document.Settings{ID: "DOC-001", Title: "Quality Policy"},
		Pages:    []string{"<p>Body.</p>"},
	})
	if err != nil {
		t.Fatalf("failed to store test document: %v", err)
	}

	app := newCLIApp(database, cfg)

	t.Run("fetch by code", func(t *testing.T) {
		out, err := runApp(t, app, "", "fetch", "--code=DOC-001")
		if err != nil {
			t.Fatalf("fetch command failed: %v", err)
		}

		var output ops.FetchOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.ID != storeOutput.ID {
			t.Errorf("expected ID=%s, got %s", storeOutput.ID, output.ID)
		}
	})

	t.Run("fetch by id", func(t *testing.T) {
		out, err := runApp(t, app, "", "fetch", storeOutput.ID)
		if err != nil {
			t.Fatalf("fetch command failed: %v", err)
		}

		var output ops.FetchOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.ID != storeOutput.ID {
			t.Errorf("expected ID=%s, got %s", storeOutput.ID, output.ID)
		}
	})

	t.Run("no pages", func(t *testing.T) {
		out, err := runApp(t, app, "", "fetch", "--no-pages", storeOutput.ID)
		if err != nil {
			t.Fatalf("fetch command failed: %v", err)
		}

		var output ops.FetchOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Pages != nil {
			t.Errorf("expected no pages, got %v", output.Pages)
		}
		if output.PageCount != 1 {
			t.Errorf("expected page_count=1, got %d", output.PageCount)
		}
	})
}

func TestCLIList(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	for _, code := range []string{"DOC-001", "DOC-002"} {
		if _, err := ops.Store(database, cfg, ops.StoreInput{
			Settings: document.Settings{ID: code, Title: "Doc " + code},
		}); err != nil {
			t.Fatalf("failed to store test document: %v", err)
		}
	}

	app := newCLIApp(database, cfg)
	out, err := runApp(t, app, "", "list")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output ops.ListOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(output.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(output.Items))
	}
	if output.Pagination.Total != 2 {
		t.Errorf("expected total=2, got %d", output.Pagination.Total)
	}
}

func TestCLIReviseAndHistory(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	storeOutput, err := ops.Store(database, cfg, ops.StoreInput{
		Settings: document.Settings{ID: "DOC-001", Title: "Quality Policy"},
	})
	if err != nil {
		t.Fatalf("failed to store test document: %v", err)
	}

	app := newCLIApp(database, cfg)

	out, err := runApp(t, app, "", "revise", storeOutput.ID,
		"--rev=B", "--date=2024-03-01", "--description=Scope update",
		"--author=R. Amari", "--approver=L. Chen")
	if err != nil {
		t.Fatalf("revise command failed: %v", err)
	}
	var revOut ops.AddRevisionOutput
	if err := json.Unmarshal([]byte(out), &revOut); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if revOut.Rev != "B" {
		t.Errorf("expected rev=B, got %s", revOut.Rev)
	}

	out, err = runApp(t, app, "", "history", storeOutput.ID)
	if err != nil {
		t.Fatalf("history command failed: %v", err)
	}
	var histOut ops.HistoryOutput
	if err := json.Unmarshal([]byte(out), &histOut); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(histOut.Entries) != 2 || histOut.Current != "B" {
		t.Errorf("history = %+v", histOut)
	}
}

func TestCLIDelete(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	storeOutput, err := ops.Store(database, cfg, ops.StoreInput{
		Settings: document.Settings{ID: "DOC-001", Title: "Quality Policy"},
	})
	if err != nil {
		t.Fatalf("failed to store test document: %v", err)
	}

	app := newCLIApp(database, cfg)
	out, err := runApp(t, app, "", "delete", storeOutput.ID)
	if err != nil {
		t.Fatalf("delete command failed: %v", err)
	}

	var output ops.DeleteOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.ID != storeOutput.ID {
		t.Errorf("expected ID=%s, got %s", storeOutput.ID, output.ID)
	}

	// Fetching the deleted document now fails.
	_, err = runApp(t, app, "", "fetch", storeOutput.ID)
	if err == nil {
		t.Error("expected error fetching deleted document")
	}
}

func TestCLIErrorHandling(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()
	cfg := config.DefaultConfig()

	app := newCLIApp(database, cfg)

	_, err := runApp(t, app, "", "fetch", "nonexistent-id")
	if err == nil {
		t.Fatal("expected error for nonexistent document")
	}
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("error should carry the code, got: %v", err)
	}
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", []string{"qdoc"}, false},
		{"store command", []string{"qdoc", "store"}, true},
		{"fetch command", []string{"qdoc", "fetch"}, true},
		{"template command", []string{"qdoc", "template", "list"}, true},
		{"serve command", []string{"qdoc", "serve"}, true},
		{"help flag", []string{"qdoc", "--help"}, true},
		{"version flag", []string{"qdoc", "--version"}, true},
		{"unknown arg", []string{"qdoc", "bogus"}, false},
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			if got := isCLIMode(); got != tt.want {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", []string{"qdoc"}, false},
		{"help flag", []string{"qdoc", "--help"}, true},
		{"short help", []string{"qdoc", "-h"}, true},
		{"version flag", []string{"qdoc", "--version"}, true},
		{"help command", []string{"qdoc", "help"}, true},
		{"store command", []string{"qdoc", "store"}, false},
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			if got := isHelpOrVersion(); got != tt.want {
				t.Errorf("isHelpOrVersion() = %v, want %v", got, tt.want)
			}
		})
	}
}
