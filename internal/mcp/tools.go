package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// refOpts are the shared addressing parameters: row ULID or document code,
// exactly one of which must be supplied.
func refOpts() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("id", mcp.Description("Document ULID")),
		mcp.WithString("code", mcp.Description("Document code (e.g. DOC-001)")),
	}
}

var storeToolDef = mcp.NewTool("doc_store",
	mcp.WithDescription("Store a new controlled document with settings and page content. Seeds revision A."),
	mcp.WithObject("settings", mcp.Description("Document settings (id, title, document_type, author, dates, ...)")),
	mcp.WithArray("pages",
		mcp.Description("Page HTML fragments in order"),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var fetchToolDef = mcp.NewTool("doc_fetch",
	append([]mcp.ToolOption{mcp.WithDescription("Fetch a document by ULID or code.")},
		append(refOpts(),
			mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted documents")),
			mcp.WithBoolean("include_pages", mcp.Description("Include page content (default true)")),
		)...)...,
)

var listToolDef = mcp.NewTool("doc_list",
	mcp.WithDescription("List stored documents."),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted documents")),
)

var deleteToolDef = mcp.NewTool("doc_delete",
	append([]mcp.ToolOption{mcp.WithDescription("Soft-delete a document. Revision history is retained.")},
		refOpts()...)...,
)

var setContentToolDef = mcp.NewTool("doc_set_content",
	append([]mcp.ToolOption{mcp.WithDescription("Replace a document's live pages and/or settings. History is untouched.")},
		append(refOpts(),
			mcp.WithArray("pages",
				mcp.Description("New page HTML fragments in order"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithObject("settings", mcp.Description("New document settings")),
		)...)...,
)

var reviseToolDef = mcp.NewTool("doc_revise",
	append([]mcp.ToolOption{mcp.WithDescription("Snapshot the current document state as a new revision. The identifier must sort after the current head.")},
		append(refOpts(),
			mcp.WithString("rev", mcp.Required(), mcp.Description("Revision identifier (e.g. B)")),
			mcp.WithString("date", mcp.Description("Revision date YYYY-MM-DD (default: today)")),
			mcp.WithString("description", mcp.Description("Change description")),
			mcp.WithString("author", mcp.Description("Author name")),
			mcp.WithString("approver", mcp.Description("Approver name")),
		)...)...,
)

var revertToolDef = mcp.NewTool("doc_revert",
	append([]mcp.ToolOption{mcp.WithDescription("Restore a prior revision's snapshot as the live document state. Non-destructive to history.")},
		append(refOpts(),
			mcp.WithString("rev", mcp.Required(), mcp.Description("Revision identifier to restore")),
		)...)...,
)

var historyToolDef = mcp.NewTool("doc_history",
	append([]mcp.ToolOption{mcp.WithDescription("Show a document's ordered revision history and current head.")},
		refOpts()...)...,
)

var exportToolDef = mcp.NewTool("doc_export",
	append([]mcp.ToolOption{mcp.WithDescription("Export a document to all formats (docx, pdf, pdf_clean, txt, xlsx, csv). Fail-fast sequence.")},
		append(refOpts(),
			mcp.WithString("dir", mcp.Description("Target directory (default: ~/.qdoc/exports)")),
		)...)...,
)

var templateAddToolDef = mcp.NewTool("template_add",
	mcp.WithDescription("Add a reusable template to the library. Bodies are markdown."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Template name")),
	mcp.WithString("category", mcp.Required(), mcp.Description("Template category (e.g. SOP, Policy)")),
	mcp.WithString("body", mcp.Required(), mcp.Description("Markdown body text")),
)

var templateListToolDef = mcp.NewTool("template_list",
	mcp.WithDescription("List templates in the library."),
)

var templateExportToolDef = mcp.NewTool("template_export",
	mcp.WithDescription("Export the whole template library to all formats (txt, docx, json, csv, xlsx, xml)."),
	mcp.WithString("dir", mcp.Description("Target directory (default: ~/.qdoc/exports)")),
)
