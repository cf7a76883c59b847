package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/qmskit/qdoc/internal/config"
	"github.com/qmskit/qdoc/internal/document"
	"github.com/qmskit/qdoc/internal/errors"
	"github.com/qmskit/qdoc/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// StoreRequest represents the arguments for doc_store.
type StoreRequest struct {
	Settings document.Settings `json:"settings"`
	Pages    []string          `json:"pages,omitempty"`
}

// FetchRequest represents the arguments for doc_fetch.
type FetchRequest struct {
	ID             string `json:"id,omitempty"`
	Code           string `json:"code,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
	IncludePages   *bool  `json:"include_pages,omitempty"`
}

// ListRequest represents the arguments for doc_list.
type ListRequest struct {
	Limit          int  `json:"limit,omitempty"`
	Offset         int  `json:"offset,omitempty"`
	IncludeDeleted bool `json:"include_deleted,omitempty"`
}

// DeleteRequest represents the arguments for doc_delete.
type DeleteRequest struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
}

// SetContentRequest represents the arguments for doc_set_content.
type SetContentRequest struct {
	ID       string             `json:"id,omitempty"`
	Code     string             `json:"code,omitempty"`
	Pages    []string           `json:"pages,omitempty"`
	Settings *document.Settings `json:"settings,omitempty"`
}

// ReviseRequest represents the arguments for doc_revise.
type ReviseRequest struct {
	ID          string `json:"id,omitempty"`
	Code        string `json:"code,omitempty"`
	Rev         string `json:"rev"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Approver    string `json:"approver,omitempty"`
}

// RevertRequest represents the arguments for doc_revert.
type RevertRequest struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
	Rev  string `json:"rev"`
}

// HistoryRequest represents the arguments for doc_history.
type HistoryRequest struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
}

// ExportRequest represents the arguments for doc_export.
type ExportRequest struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// TemplateAddRequest represents the arguments for template_add.
type TemplateAddRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

// TemplateExportRequest represents the arguments for template_export.
type TemplateExportRequest struct {
	Dir string `json:"dir,omitempty"`
}

// Handler implementations

// HandleStore handles the doc_store tool call.
func (h *Handlers) HandleStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StoreRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Store(h.db, h.cfg, ops.StoreInput{
		Settings: input.Settings,
		Pages:    input.Pages,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the doc_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.db, ops.FetchInput{
		Ref:            ops.Ref{ID: input.ID, Code: input.Code},
		IncludeDeleted: input.IncludeDeleted,
		IncludePages:   input.IncludePages,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the doc_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{
		Limit:          input.Limit,
		Offset:         input.Offset,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the doc_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.db, ops.DeleteInput{
		Ref: ops.Ref{ID: input.ID, Code: input.Code},
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSetContent handles the doc_set_content tool call.
func (h *Handlers) HandleSetContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SetContentRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetContent(h.db, ops.SetContentInput{
		Ref:      ops.Ref{ID: input.ID, Code: input.Code},
		Pages:    input.Pages,
		Settings: input.Settings,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRevise handles the doc_revise tool call.
func (h *Handlers) HandleRevise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReviseRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddRevision(h.db, ops.AddRevisionInput{
		Ref:         ops.Ref{ID: input.ID, Code: input.Code},
		Rev:         input.Rev,
		Date:        input.Date,
		Description: input.Description,
		Author:      input.Author,
		Approver:    input.Approver,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRevert handles the doc_revert tool call.
func (h *Handlers) HandleRevert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RevertRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Revert(h.db, ops.RevertInput{
		Ref: ops.Ref{ID: input.ID, Code: input.Code},
		Rev: input.Rev,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the doc_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(h.db, ops.HistoryInput{
		Ref: ops.Ref{ID: input.ID, Code: input.Code},
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the doc_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ExportAll(h.db, h.cfg, ops.ExportAllInput{
		Ref: ops.Ref{ID: input.ID, Code: input.Code},
		Dir: input.Dir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTemplateAdd handles the template_add tool call.
func (h *Handlers) HandleTemplateAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplateAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TemplateAdd(h.db, ops.TemplateAddInput{
		Name:     input.Name,
		Category: input.Category,
		Body:     input.Body,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTemplateList handles the template_list tool call.
func (h *Handlers) HandleTemplateList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.TemplateList(h.db, ops.TemplateListInput{})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTemplateExport handles the template_export tool call.
func (h *Handlers) HandleTemplateExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplateExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TemplateExport(h.db, h.cfg, ops.TemplateExportInput{
		Dir: input.Dir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if qerr, ok := err.(*errors.QdocError); ok {
		errorObj := map[string]any{
			"code":    qerr.Code,
			"message": qerr.Message,
			"status":  qerr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if qerr.Code != errors.ErrInternal && qerr.Details != nil {
			errorObj["details"] = qerr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
