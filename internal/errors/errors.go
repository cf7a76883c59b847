package errors

import "fmt"

// ErrorCode represents a qdoc error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"          // 400
	ErrValidation     ErrorCode = "VALIDATION_FAILED"        // 422
	ErrNotFound       ErrorCode = "NOT_FOUND"                // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"           // 404
	ErrRevisionExists ErrorCode = "REVISION_EXISTS"          // 409
	ErrOutOfSequence  ErrorCode = "REVISION_OUT_OF_SEQUENCE" // 422
	ErrExportFailed   ErrorCode = "EXPORT_FAILED"            // 500
	ErrCancelled      ErrorCode = "CANCELLED"                // 499
	ErrInternal       ErrorCode = "INTERNAL"                 // 500
)

// QdocError represents a structured error with code, status, and details.
type QdocError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *QdocError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *QdocError) Unwrap() error {
	if cause, ok := e.Details["cause"].(error); ok {
		return cause
	}
	return nil
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *QdocError {
	return &QdocError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewValidation creates a 422 error for a failed field validation.
func NewValidation(msg string) *QdocError {
	return &QdocError{
		Code:    ErrValidation,
		Status:  422,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a document or revision cannot be found.
func NewNotFound(identifier string) *QdocError {
	return &QdocError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFileNotFound creates a 404 error for a missing file path.
func NewFileNotFound(path string) *QdocError {
	return &QdocError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewRevisionExists creates a 409 error for a duplicate revision identifier.
func NewRevisionExists(rev string) *QdocError {
	return &QdocError{
		Code:    ErrRevisionExists,
		Status:  409,
		Message: fmt.Sprintf("revision %q already exists", rev),
		Details: map[string]any{"rev": rev},
	}
}

// NewOutOfSequence creates a 422 error for a revision identifier that does not
// sort after the current last revision.
func NewOutOfSequence(rev, last string) *QdocError {
	return &QdocError{
		Code:    ErrOutOfSequence,
		Status:  422,
		Message: fmt.Sprintf("revision %q must follow the current revision %q", rev, last),
		Details: map[string]any{"rev": rev, "last": last},
	}
}

// NewExportFailed creates a 500 error for a failed format export.
// The format key identifies which step of the export sequence failed.
func NewExportFailed(format string, err error) *QdocError {
	return &QdocError{
		Code:    ErrExportFailed,
		Status:  500,
		Message: err.Error(),
		Details: map[string]any{"format": format, "cause": err},
	}
}

// NewCancelled creates a 499 error for a cancelled operation.
func NewCancelled(operation string) *QdocError {
	return &QdocError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("operation cancelled: %s", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *QdocError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &QdocError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a QdocError with the given code.
func Is(err error, code ErrorCode) bool {
	if qErr, ok := err.(*QdocError); ok {
		return qErr.Code == code
	}
	return false
}
