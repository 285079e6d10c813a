// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentType classifies a case document by its role in the decision.
type DocumentType string

const (
	DocTypeDecision        DocumentType = "decision"
	DocTypeDissent         DocumentType = "dissent"
	DocTypeConcurrence     DocumentType = "concurrence"
	DocTypeRecord          DocumentType = "record"
	DocTypeBriefPetitioner DocumentType = "brief_petitioner"
	DocTypeBriefRespondent DocumentType = "brief_respondent"
	DocTypeBriefAmicus     DocumentType = "brief_amicus"

	// DocTypeUnknown marks a document whose role could not be determined
	// from upstream metadata. Callers should treat it as a best guess, not
	// a silent default.
	DocTypeUnknown DocumentType = "unknown"
)

// SourceCourtListener tags documents that originate from the CourtListener API.
const SourceCourtListener = "courtlistener"

// CaseDocument is the normalized unit returned to callers. Every document is
// traceable to exactly one upstream cluster/opinion pair, even when that
// pair's data is incomplete.
type CaseDocument struct {
	// ID is synthesized from the source and upstream identifiers, unique
	// per (source, cluster, opinion) tuple (e.g. "cl-v4-1", "cl-118144-unknown").
	ID string `json:"id" yaml:"id"`

	Type DocumentType `json:"type" yaml:"type"`

	// Display metadata. Any of these may be empty or zero when the
	// upstream source lacks it.
	Title        string `json:"title" yaml:"title"`
	Court        string `json:"court" yaml:"court"`
	DocketNumber string `json:"docket_number" yaml:"docket_number"`
	Date         string `json:"date" yaml:"date"`
	PageCount    int    `json:"page_count" yaml:"page_count"`

	// Source identifies provenance (currently always SourceCourtListener).
	Source string `json:"source" yaml:"source"`

	// Content fields populated only when the upstream response included them.
	DownloadURL string   `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	PlainText   string   `json:"plain_text,omitempty" yaml:"plain_text,omitempty"`
	Authors     []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// IsSelected is caller-local selection state, not part of the upstream
	// source of truth.
	IsSelected bool `json:"is_selected" yaml:"is_selected"`
}
