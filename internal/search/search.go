// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search implements the multi-strategy case-law search cascade over
// the CourtListener API and the normalization of its responses into uniform
// case documents.
//
// The cascade treats search as progressively-relaxed approximate matching:
// citation text as users type it drifts in abbreviation and punctuation, and
// the upstream endpoints vary in quality, so each stage trades precision for
// recall. Stages run strictly in order and stop at the first one that yields
// documents; the absence of results is the signal to advance, so there is no
// parallel fan-out against the rate-limited upstream.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/caselaw-engine/internal/citation"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// Mode tunes how aggressively the full-text stage broadens its queries.
type Mode string

const (
	// ModeExact restricts the full-text stage to quoted, strict variants.
	ModeExact Mode = "exact"
	// ModeRelated adds party-name and court-scoped variants.
	ModeRelated Mode = "related"
	// ModeComprehensive unions all variant families.
	ModeComprehensive Mode = "comprehensive"
)

// ParseMode validates a mode string from the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExact, ModeRelated, ModeComprehensive:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown search mode %q: use exact, related, or comprehensive", s)
	}
}

// Result is the terminal outcome of one search. An empty document list is a
// valid result; failures accumulate as strings in Errors and are advisory,
// never fatal.
type Result struct {
	Documents  []types.CaseDocument `json:"documents" yaml:"documents"`
	TotalFound int                  `json:"total_found" yaml:"total_found"`
	Errors     []string             `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// hydrateLimit caps on-demand opinion-text fetches per search so a large
// result set cannot trigger a burst of upstream calls.
const hydrateLimit = 3

// Orchestrator runs the strategy cascade. Warnings and progress stream to w.
type Orchestrator struct {
	client *Client
	w      io.Writer
}

// NewOrchestrator wires the cascade to a CourtListener client.
func NewOrchestrator(client *Client, w io.Writer) *Orchestrator {
	if w == nil {
		w = io.Discard
	}
	return &Orchestrator{client: client, w: w}
}

// Search runs the cascade for one parsed citation. It never returns a Go
// error: every failure is recorded in Result.Errors and the cascade moves on.
func (o *Orchestrator) Search(ctx context.Context, cit types.ParsedCitation, mode Mode) Result {
	var res Result

	docs, errs := o.fullTextStage(ctx, cit, mode)
	res.Errors = append(res.Errors, errs...)

	if len(docs) == 0 && cit.FullCitation != "" {
		docs, errs = o.lookupStage(ctx, cit)
		res.Errors = append(res.Errors, errs...)
	}

	if len(docs) == 0 {
		docs, errs = o.legacyStage(ctx, citation.GenerateQueries(cit))
		res.Errors = append(res.Errors, errs...)
	}

	if len(docs) == 0 && cit.CaseName != "" {
		firstWord := strings.Fields(cit.CaseName)[0]
		docs, errs = o.legacyStage(ctx, []types.CitationQuery{{CaseName: firstWord}})
		res.Errors = append(res.Errors, errs...)
		if len(docs) > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"Exact matches were unavailable; showing broader results for %q.", firstWord))
		}
	}

	if len(docs) == 0 {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"No results found for %q. Try the related or comprehensive search mode.", cit.FullCitation))
	}

	res.Documents = dedupeByID(docs)
	res.TotalFound = len(res.Documents)
	return res
}

// fullTextStage tries the v4 search endpoint with mode-dependent query
// variants, stopping at the first variant that yields hits.
func (o *Orchestrator) fullTextStage(ctx context.Context, cit types.ParsedCitation, mode Mode) ([]types.CaseDocument, []string) {
	var errs []string

	for _, variant := range queryVariants(cit, mode) {
		resp, err := o.client.searchV4(ctx, variant)
		if err != nil {
			errs = append(errs, fmt.Sprintf("full-text search %q: %v", variant, err))
			continue
		}
		if len(resp.Results) == 0 {
			continue
		}

		docs := make([]types.CaseDocument, 0, len(resp.Results))
		for _, hit := range resp.Results {
			docs = append(docs, normalizeV4Hit(hit))
		}
		return docs, errs
	}

	return nil, errs
}

// lookupStage posts the raw citation text to the citation-lookup endpoint.
func (o *Orchestrator) lookupStage(ctx context.Context, cit types.ParsedCitation) ([]types.CaseDocument, []string) {
	results, err := o.client.lookupCitation(ctx, cit.FullCitation)
	if err != nil {
		return nil, []string{fmt.Sprintf("citation lookup: %v", err)}
	}

	var docs []types.CaseDocument
	for _, r := range results {
		if r.Status != 200 {
			continue
		}
		for _, cl := range r.Clusters {
			docs = append(docs, normalizeCluster(cl, "cl-lookup")...)
		}
	}
	return docs, nil
}

// legacyStage runs the ordered structured-field queries against the clusters
// endpoint, short-circuiting on the first nonempty result. Citation queries
// are tried against both the general and federal citation fields. Clusters
// whose nested data is incomplete are re-fetched as detail records, and a
// few text-less opinions are hydrated from the opinion endpoint.
func (o *Orchestrator) legacyStage(ctx context.Context, queries []types.CitationQuery) ([]types.CaseDocument, []string) {
	var errs []string

	for _, q := range queries {
		attempts := []bool{false}
		if q.Citation != "" {
			attempts = append(attempts, true)
		}

		for _, federalCite := range attempts {
			resp, err := o.client.queryClusters(ctx, q, federalCite)
			if err != nil {
				errs = append(errs, fmt.Sprintf("legacy search: %v", err))
				continue
			}
			if len(resp.Results) == 0 {
				continue
			}

			var docs []types.CaseDocument
			for _, cl := range resp.Results {
				docs = append(docs, normalizeCluster(o.completeCluster(ctx, cl), "cl")...)
			}
			o.hydrateOpinions(ctx, docs)
			return docs, errs
		}
	}

	return nil, errs
}

// completeCluster fetches the cluster detail record when the list entry has
// no opinion references and no summary text. On failure the partial record
// is kept: a synthesized document beats a dropped result.
func (o *Orchestrator) completeCluster(ctx context.Context, cl clusterDetail) clusterDetail {
	if len(cl.SubOpinions) > 0 || len(cl.Opinions) > 0 || cl.Syllabus != "" || cl.Summary != "" {
		return cl
	}
	if cl.ID <= 0 {
		return cl
	}

	detail, err := o.client.getCluster(ctx, cl.ID)
	if err != nil {
		fmt.Fprintf(o.w, "warning: cluster %d detail fetch failed: %v\n", cl.ID, err)
		return cl
	}
	return *detail
}

// hydrateOpinions fills in plain text for up to hydrateLimit documents whose
// opinion ID is known but whose text was absent from the search response.
func (o *Orchestrator) hydrateOpinions(ctx context.Context, docs []types.CaseDocument) {
	fetched := 0
	for i := range docs {
		if fetched >= hydrateLimit {
			return
		}
		if docs[i].PlainText != "" {
			continue
		}

		var clusterID, opinionID int
		if n, err := fmt.Sscanf(docs[i].ID, "cl-%d-%d", &clusterID, &opinionID); err != nil || n != 2 || opinionID <= 0 {
			continue
		}

		op, err := o.client.getOpinion(ctx, opinionID)
		fetched++
		if err != nil {
			fmt.Fprintf(o.w, "warning: opinion %d fetch failed: %v\n", opinionID, err)
			continue
		}
		docs[i].PlainText = op.PlainText
		if docs[i].PageCount == 0 {
			docs[i].PageCount = op.PageCount
		}
	}
}

// queryVariants builds the mode-dependent full-text query list, strictest
// first. Duplicate and empty variants are dropped.
func queryVariants(cit types.ParsedCitation, mode Mode) []string {
	var variants []string

	if cit.FullCitation != "" {
		variants = append(variants, `"`+cit.FullCitation+`"`)
	}
	if cit.IsValid {
		variants = append(variants, fmt.Sprintf(`"%s %s %s"`, cit.Volume, cit.Reporter, cit.Page))
	}
	if cit.CaseName != "" {
		variants = append(variants, `"`+cit.CaseName+`"`)
	}

	if mode != ModeExact && cit.CaseName != "" {
		variants = append(variants, splitParties(cit.CaseName)...)
		if cit.Court != "" {
			variants = append(variants, cit.CaseName+" "+cit.Court)
		}
	}

	if mode == ModeComprehensive && cit.CaseName != "" {
		variants = append(variants, cit.CaseName)
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// splitParties breaks "Miller v. McDonald" into its party names.
func splitParties(caseName string) []string {
	for _, sep := range []string{" v. ", " vs. ", " v ", " vs "} {
		if strings.Contains(caseName, sep) {
			var parties []string
			for _, p := range strings.Split(caseName, sep) {
				if p = strings.TrimSpace(p); p != "" {
					parties = append(parties, p)
				}
			}
			return parties
		}
	}
	return nil
}

// dedupeByID drops documents whose synthesized ID was already seen, keeping
// first occurrence order. The short-circuiting cascade rarely produces
// duplicates, but the broadened fallback can resurface a cluster.
func dedupeByID(docs []types.CaseDocument) []types.CaseDocument {
	if len(docs) == 0 {
		return docs
	}
	seen := make(map[string]bool, len(docs))
	out := docs[:0]
	for _, d := range docs {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		out = append(out, d)
	}
	return out
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(res Result, w io.Writer) {
	if len(res.Documents) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-44s  %-30s  %-12s  %s\n",
		"Rank", "Type", "Title", "Court", "Date", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, d := range res.Documents {
		fmt.Fprintf(w, "%-4d  %-16s  %-44s  %-30s  %-12s  %s\n",
			i+1, d.Type, Truncate(d.Title, 44), Truncate(d.Court, 30), d.Date, d.ID)
	}

	fmt.Fprintf(w, "\n%d documents\n", res.TotalFound)
}

// FormatJSON writes the full result as indented JSON to w.
func FormatJSON(res Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Truncate shortens s to at most max display characters, appending an
// ellipsis. Slices on runes so multi-byte party names are never split
// mid-character.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
