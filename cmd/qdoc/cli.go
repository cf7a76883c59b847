package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/ops"
	"github.com/qmskit/qdoc/internal/web"
)

// pageBreakMarker separates pages in piped stdin content.
const pageBreakMarker = "--- Page Break ---"

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "qdoc",
		Usage:   "Controlled document store and export pipeline",
		Version: Version,
		Commands: []*cli.Command{
			storeCmd(db, cfg),
			fetchCmd(db),
			listCmd(db),
			deleteCmd(db),
			setContentCmd(db),
			reviseCmd(db),
			revertCmd(db),
			historyCmd(db),
			exportCmd(db, cfg),
			templateCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// storeCmd creates the store command.
func storeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Store a new document (reads page HTML from stdin, pages separated by '--- Page Break ---')",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code (e.g. DOC-001)"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Document title"},
			&cli.StringFlag{Name: "type", Usage: "Document type (e.g. SOP, Policy)"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author name"},
			&cli.StringFlag{Name: "department", Usage: "Owning department"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "settings-json", Usage: "Full settings as a JSON object (overrides other flags)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.StoreInput{}

			if raw := c.String("settings-json"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &input.Settings); err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid settings-json: %v", err)))
				}
			} else {
				input.Settings = document.Settings{
					ID:           c.String("code"),
					Title:        c.String("title"),
					DocumentType: c.String("type"),
					Author:       c.String("author"),
					Department:   c.String("department"),
					Tags:         parseTags(c.String("tags")),
				}
			}

			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Pages = splitPages(text)
			}

			output, err := ops.Store(db, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a document by ID or code",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted documents"},
			&cli.BoolFlag{Name: "no-pages", Usage: "Exclude page content from output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				Ref:            refFromContext(c),
				IncludeDeleted: c.Bool("include-deleted"),
			}
			if c.Bool("no-pages") {
				includePages := false
				input.IncludePages = &includePages
			}

			output, err := ops.Fetch(db, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored documents",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted documents"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, ops.ListInput{
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a document",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(db, ops.DeleteInput{Ref: refFromContext(c)})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// setContentCmd creates the set-content command.
func setContentCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "set-content",
		Usage:     "Replace a document's live pages and/or settings (reads pages from stdin if piped)",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
			&cli.StringFlag{Name: "settings-json", Usage: "New settings as a JSON object"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SetContentInput{Ref: refFromContext(c)}

			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Pages = splitPages(text)
			}
			if raw := c.String("settings-json"); raw != "" {
				var settings document.Settings
				if err := json.Unmarshal([]byte(raw), &settings); err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid settings-json: %v", err)))
				}
				input.Settings = &settings
			}

			output, err := ops.SetContent(db, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reviseCmd creates the revise command.
func reviseCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "revise",
		Usage:     "Snapshot the current document state as a new revision",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
			&cli.StringFlag{Name: "rev", Aliases: []string{"r"}, Required: true, Usage: "Revision identifier (e.g. B)"},
			&cli.StringFlag{Name: "date", Usage: "Revision date YYYY-MM-DD (default: today)"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Change description"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Author name"},
			&cli.StringFlag{Name: "approver", Usage: "Approver name"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.AddRevision(db, ops.AddRevisionInput{
				Ref:         refFromContext(c),
				Rev:         c.String("rev"),
				Date:        c.String("date"),
				Description: c.String("description"),
				Author:      c.String("author"),
				Approver:    c.String("approver"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// revertCmd creates the revert command.
func revertCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "revert",
		Usage:     "Restore a prior revision's snapshot as the live document state",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
			&cli.StringFlag{Name: "rev", Aliases: []string{"r"}, Required: true, Usage: "Revision identifier to restore"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Revert(db, ops.RevertInput{
				Ref: refFromContext(c),
				Rev: c.String("rev"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show a document's revision history",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(db, ops.HistoryInput{Ref: refFromContext(c)})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a document to all formats (docx, pdf, pdf_clean, txt, xlsx, csv)",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Document code"},
			&cli.StringFlag{Name: "dir", Usage: "Target directory (default: ~/.qdoc/exports)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ExportAll(db, cfg, ops.ExportAllInput{
				Ref: refFromContext(c),
				Dir: c.String("dir"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// templateCmd creates the template command group.
func templateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "Manage the reusable template library",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a template (reads markdown body from stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Template name"},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Required: true, Usage: "Template category"},
				},
				Action: func(c *cli.Context) error {
					if !stdinHasData() {
						return outputError(errors.NewInvalidRequest("template body must be piped via stdin"))
					}
					body, err := readStdin()
					if err != nil {
						return outputError(errors.NewInternal(err))
					}

					output, err := ops.TemplateAdd(db, ops.TemplateAddInput{
						Name:     c.String("name"),
						Category: c.String("category"),
						Body:     body,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List templates",
				Action: func(_ *cli.Context) error {
					output, err := ops.TemplateList(db, ops.TemplateListInput{})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "export",
				Usage: "Export the template library to all formats (txt, docx, json, csv, xlsx, xml)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "Target directory (default: ~/.qdoc/exports)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.TemplateExport(db, cfg, ops.TemplateExportInput{
						Dir: c.String("dir"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the read-only document viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: "127.0.0.1:8787", Usage: "Listen address"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("addr"))
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// refFromContext builds a document Ref from the positional ID or --code flag.
func refFromContext(c *cli.Context) ops.Ref {
	if c.NArg() > 0 {
		return ops.Ref{ID: c.Args().First()}
	}
	return ops.Ref{Code: c.String("code")}
}

// splitPages splits piped content into pages on the page-break marker.
func splitPages(text string) []string {
	parts := strings.Split(text, pageBreakMarker)
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		pages = append(pages, strings.TrimSpace(p))
	}
	return pages
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if qerr, ok := err.(*errors.QdocError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", qerr.Code, qerr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
