// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the caselaw-engine
// pipeline: parsed citations, search queries, case documents, and stage
// configuration.
package types

// ParsedCitation is the structured form of a free-text legal citation.
// It is produced once per input string and never mutated afterwards.
type ParsedCitation struct {
	// CaseName is the party-vs-party portion. Always present: when no
	// structured pattern matches it falls back to the text before the
	// first comma or digit, or the whole input.
	CaseName string `json:"case_name" yaml:"case_name"`

	// Volume, Reporter, and Page are the components of a
	// "Volume Reporter Page" citation. Empty when the citation is not in
	// that form.
	Volume   string `json:"volume" yaml:"volume"`
	Reporter string `json:"reporter" yaml:"reporter"`
	Page     string `json:"page" yaml:"page"`

	// Year and Court are present only when parenthetical year/court text
	// was recognized.
	Year  string `json:"year,omitempty" yaml:"year,omitempty"`
	Court string `json:"court,omitempty" yaml:"court,omitempty"`

	// FullCitation is the original trimmed input, preserved verbatim for
	// re-display and as a search fallback.
	FullCitation string `json:"full_citation" yaml:"full_citation"`

	// IsValid is true only when one of the structured patterns matched.
	// When false, only CaseName and FullCitation are trustworthy.
	IsValid bool `json:"is_valid" yaml:"is_valid"`
}

// CitationQuery is one attempt at the legacy structured-field search API.
// Multiple queries are generated per ParsedCitation and tried in order.
type CitationQuery struct {
	CaseName string `json:"case_name,omitempty" yaml:"case_name,omitempty"`
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`
	Court    string `json:"court,omitempty" yaml:"court,omitempty"`
	YearFrom int    `json:"year_from,omitempty" yaml:"year_from,omitempty"`
	YearTo   int    `json:"year_to,omitempty" yaml:"year_to,omitempty"`
}

// IsEmpty reports whether the query contains no searchable fields.
func (q CitationQuery) IsEmpty() bool {
	return q.CaseName == "" && q.Citation == "" && q.Court == "" &&
		q.YearFrom == 0 && q.YearTo == 0
}
