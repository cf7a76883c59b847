package web

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/db"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/ops"
)

// Handlers contains HTTP route handlers for the read-only viewer.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleList handles GET /documents: list stored documents.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Limit:          parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset:         parseIntParam(r, "offset", 0),
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	}

	result, err := ops.List(h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Documents",
			Version: h.renderer.version,
			Nav:     "documents",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		Deleted:    input.IncludeDeleted,
	})
}

// HandleDetail handles GET /documents/{id}: a single document with its
// settings, pages, and revision history.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("document ID is required"))
		return
	}

	doc, err := ops.Fetch(h.db, ops.FetchInput{
		Ref:            ops.Ref{ID: id},
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	history, err := ops.History(h.db, ops.HistoryInput{Ref: ops.Ref{ID: id}})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// Pages are the document's own authored HTML, shown as-is.
	pages := make([]template.HTML, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pages = append(pages, template.HTML(p))
	}

	showRevisions := true
	if r.URL.Query().Has("revisions") {
		showRevisions = parseBoolParam(r, "revisions")
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   doc.Settings.EffectiveTitle(),
			Version: h.renderer.version,
			Nav:     "documents",
		},
		Document:      doc,
		Fields:        doc.Settings.Fields(),
		Pages:         pages,
		Revisions:     history.Entries,
		CurrentRev:    history.Current,
		ShowRevisions: showRevisions,
	})
}

// HandleTemplates handles GET /templates: the rendered template library.
func (h *Handlers) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := db.ListTemplates(h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	items := make([]TemplateView, 0, len(templates))
	for _, t := range templates {
		items = append(items, TemplateView{
			ID:       t.ID,
			Name:     t.Name,
			Category: t.Category,
			Rendered: renderMarkdown(t.Body),
		})
	}

	h.renderer.renderPage(w, r, "templates", TemplatesPageData{
		PageData: PageData{
			Title:   "Templates",
			Version: h.renderer.version,
			Nav:     "templates",
		},
		Items: items,
		Total: len(items),
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}
