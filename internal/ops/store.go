package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/revision"
)

// StoreInput contains parameters for the Store operation.
type StoreInput struct {
	// Settings is the initial settings record. Empty ID/Title fall back to
	// the fixed identity defaults.
	Settings document.Settings `json:"settings"`

	// Pages holds the initial page HTML fragments. An empty list stores one
	// empty page.
	Pages []string `json:"pages,omitempty"`
}

// StoreOutput contains the result of the Store operation.
type StoreOutput struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Rev  string `json:"rev"`
}

// Store creates a new document and seeds its revision history with "A"; the
// history list is never empty after creation.
func Store(database *sql.DB, cfg *config.Config, input StoreInput) (*StoreOutput, error) {
	settings := input.Settings
	if strings.TrimSpace(settings.DateFormat) == "" && cfg != nil {
		settings.DateFormat = cfg.DefaultDateFormat
	}
	if strings.TrimSpace(settings.Language) == "" && cfg != nil {
		settings.Language = cfg.DefaultLanguage
	}
	if settings.Revision == "" {
		settings.Revision = revision.SeedRev
	}

	pages := input.Pages
	if len(pages) == 0 {
		pages = []string{""}
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	doc := &db.Document{
		ID:        id,
		Settings:  settings,
		Pages:     pages,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.InsertDocument(database, doc); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewInvalidRequest("a document with code " + settings.EffectiveID() + " already exists")
		}
		return nil, err
	}

	seed := revision.Seed(isoToday(), pages, settings)
	revID, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.InsertRevision(database, id, revID, &seed, now); err != nil {
		return nil, err
	}

	return &StoreOutput{ID: id, Code: settings.EffectiveID(), Rev: seed.Rev}, nil
}
