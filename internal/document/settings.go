package document

import (
	"strconv"
	"strings"
)

// Identity fallbacks used whenever the corresponding settings field is empty.
// Exporters and the filename deriver must never emit an empty identity field.
const (
	DefaultID           = "DOC-001"
	DefaultTitle        = "Document"
	DefaultDocumentType = "Document"
)

// Settings is the flat record of document attributes collected by the editor
// shell. All dates are ISO YYYY-MM-DD strings; DateFormat is a token pattern
// consumed by FormatDate.
type Settings struct {
	// Identity
	ID           string `json:"id"`
	Title        string `json:"title"`
	LegacyNumber string `json:"legacy_number,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	Category     string `json:"category,omitempty"`

	// People
	Author         string `json:"author,omitempty"`
	Approver       string `json:"approver,omitempty"`
	Owner          string `json:"owner,omitempty"`
	ProcessOwner   string `json:"process_owner,omitempty"`
	QualityManager string `json:"quality_manager,omitempty"`

	// Organization
	Department   string `json:"department,omitempty"`
	Region       string `json:"region,omitempty"`
	Site         string `json:"site,omitempty"`
	BusinessUnit string `json:"business_unit,omitempty"`
	System       string `json:"system,omitempty"`

	// Lifecycle
	Status         string `json:"status,omitempty"`
	ApprovalStatus string `json:"approval_status,omitempty"`

	// Classification
	Classification string `json:"classification,omitempty"`
	Sensitivity    string `json:"sensitivity,omitempty"`

	// Dates (ISO YYYY-MM-DD)
	CreatedDate    string `json:"created_date,omitempty"`
	EffectiveDate  string `json:"effective_date,omitempty"`
	RevisedDate    string `json:"revised_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	NextReviewDate string `json:"next_review_date,omitempty"`
	ReviewCycle    string `json:"review_cycle,omitempty"`

	// Revision
	Revision string `json:"revision,omitempty"`

	// Locale
	Language   string `json:"language,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Tags
	Tags []string `json:"tags,omitempty"`

	// Content descriptors
	Purpose          string `json:"purpose,omitempty"`
	Scope            string `json:"scope,omitempty"`
	Definitions      string `json:"definitions,omitempty"`
	References       string `json:"references,omitempty"`
	StandardRef      string `json:"standard_ref,omitempty"`
	RelatedDocuments string `json:"related_documents,omitempty"`
	SupersededBy     string `json:"superseded_by,omitempty"`
	ChangeSummary    string `json:"change_summary,omitempty"`
	DistributionList string `json:"distribution_list,omitempty"`
	Keywords         string `json:"keywords,omitempty"`
	Comments         string `json:"comments,omitempty"`

	// Retention and control flags
	TrainingRequired  bool   `json:"training_required,omitempty"`
	ControlledCopy    bool   `json:"controlled_copy,omitempty"`
	RetentionRequired bool   `json:"retention_required,omitempty"`
	RetentionYears    int    `json:"retention_years,omitempty"`
	Confidentiality   string `json:"confidentiality,omitempty"`
}

// EffectiveID returns ID or the fixed fallback when empty.
func (s Settings) EffectiveID() string {
	if strings.TrimSpace(s.ID) == "" {
		return DefaultID
	}
	return s.ID
}

// EffectiveTitle returns Title or the fixed fallback when empty.
func (s Settings) EffectiveTitle() string {
	if strings.TrimSpace(s.Title) == "" {
		return DefaultTitle
	}
	return s.Title
}

// EffectiveDocumentType returns DocumentType or the fixed fallback when empty.
func (s Settings) EffectiveDocumentType() string {
	if strings.TrimSpace(s.DocumentType) == "" {
		return DefaultDocumentType
	}
	return s.DocumentType
}

// Field is one labeled settings value for tabular exports.
type Field struct {
	Label string
	Value string
}

// Fields returns the full settings field set in a fixed order.
// Booleans render as Yes/No; empty values are returned as-is (the CSV
// exporter substitutes its own null placeholder).
func (s Settings) Fields() []Field {
	return []Field{
		{"Document ID", s.EffectiveID()},
		{"Title", s.EffectiveTitle()},
		{"Legacy Number", s.LegacyNumber},
		{"Document Type", s.EffectiveDocumentType()},
		{"Category", s.Category},
		{"Author", s.Author},
		{"Approver", s.Approver},
		{"Owner", s.Owner},
		{"Process Owner", s.ProcessOwner},
		{"Quality Manager", s.QualityManager},
		{"Department", s.Department},
		{"Region", s.Region},
		{"Site", s.Site},
		{"Business Unit", s.BusinessUnit},
		{"System", s.System},
		{"Status", s.Status},
		{"Approval Status", s.ApprovalStatus},
		{"Classification", s.Classification},
		{"Sensitivity", s.Sensitivity},
		{"Created Date", s.CreatedDate},
		{"Effective Date", s.EffectiveDate},
		{"Revised Date", s.RevisedDate},
		{"Expiry Date", s.ExpiryDate},
		{"Next Review Date", s.NextReviewDate},
		{"Review Cycle", s.ReviewCycle},
		{"Revision", s.Revision},
		{"Language", s.Language},
		{"Date Format", s.DateFormat},
		{"Tags", strings.Join(s.Tags, ", ")},
		{"Purpose", s.Purpose},
		{"Scope", s.Scope},
		{"Definitions", s.Definitions},
		{"References", s.References},
		{"Standard Reference", s.StandardRef},
		{"Related Documents", s.RelatedDocuments},
		{"Superseded By", s.SupersededBy},
		{"Change Summary", s.ChangeSummary},
		{"Distribution List", s.DistributionList},
		{"Keywords", s.Keywords},
		{"Comments", s.Comments},
		{"Training Required", yesNo(s.TrainingRequired)},
		{"Controlled Copy", yesNo(s.ControlledCopy)},
		{"Retention Required", yesNo(s.RetentionRequired)},
		{"Retention Years", intString(s.RetentionYears)},
		{"Confidentiality", s.Confidentiality},
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
