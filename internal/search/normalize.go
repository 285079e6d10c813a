// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

const courtListenerHost = "https://www.courtlistener.com"

// opinionURLRe extracts the numeric opinion ID from an API resource URL like
// "/api/rest/v3/opinions/118144/".
var opinionURLRe = regexp.MustCompile(`/opinions/(\d+)/`)

// normalizeV4Hit converts one v4 search hit into a CaseDocument. The v4
// query is restricted to published opinions, so the hit classifies as a
// decision by provenance.
func normalizeV4Hit(hit v4Hit) types.CaseDocument {
	return types.CaseDocument{
		ID:           fmt.Sprintf("cl-v4-%d", hit.ClusterID),
		Type:         types.DocTypeDecision,
		Title:        hit.CaseName,
		Court:        hit.Court,
		DocketNumber: hit.DocketNumber,
		Date:         hit.DateFiled,
		Source:       types.SourceCourtListener,
		DownloadURL:  absoluteURL(hit.AbsoluteURL),
		PlainText:    hit.Snippet,
	}
}

// normalizeCluster converts one cluster into documents, one per sub-opinion.
// A cluster with no sub-opinions and no legacy opinions array still yields
// exactly one document for the case record itself, so structurally
// incomplete upstream records are never silently dropped.
func normalizeCluster(cl clusterDetail, idPrefix string) []types.CaseDocument {
	base := types.CaseDocument{
		Title:        cl.CaseName,
		Court:        clusterCourt(cl),
		DocketNumber: cl.DocketNumber,
		Date:         cl.DateFiled,
		Source:       types.SourceCourtListener,
		DownloadURL:  absoluteURL(cl.AbsoluteURL),
	}

	var docs []types.CaseDocument
	for _, ref := range cl.SubOpinions {
		if ref.opinion != nil {
			docs = append(docs, opinionDocument(base, idPrefix, cl.ID, *ref.opinion))
			continue
		}

		// URL-only reference: extract the numeric ID, or fall back to a
		// literal placeholder rather than dropping the document.
		doc := base
		doc.ID = fmt.Sprintf("%s-%d-%s", idPrefix, cl.ID, opinionIDFromURL(ref.url))
		doc.Type = types.DocTypeUnknown
		docs = append(docs, doc)
	}

	for _, op := range cl.Opinions {
		docs = append(docs, opinionDocument(base, idPrefix, cl.ID, op))
	}

	if len(docs) == 0 {
		doc := base
		doc.ID = fmt.Sprintf("%s-%d", idPrefix, cl.ID)
		doc.Type = types.DocTypeRecord
		if cl.Syllabus != "" {
			doc.PlainText = cl.Syllabus
		} else {
			doc.PlainText = cl.Summary
		}
		docs = append(docs, doc)
	}

	return docs
}

func opinionDocument(base types.CaseDocument, idPrefix string, clusterID int, op opinionDetail) types.CaseDocument {
	doc := base
	doc.ID = fmt.Sprintf("%s-%d-%d", idPrefix, clusterID, op.ID)
	doc.Type = classifyOpinion(op.Type)
	doc.PlainText = op.PlainText
	doc.PageCount = op.PageCount
	if op.DownloadURL != "" {
		doc.DownloadURL = op.DownloadURL
	} else if op.AbsoluteURL != "" {
		doc.DownloadURL = absoluteURL(op.AbsoluteURL)
	}
	if op.AuthorStr != "" {
		doc.Authors = []string{op.AuthorStr}
	}
	return doc
}

// classifyOpinion maps CourtListener opinion type codes (e.g. "020lead",
// "040dissent") to document types. Unrecognized or absent codes classify as
// unknown rather than defaulting to decision.
func classifyOpinion(code string) types.DocumentType {
	lower := strings.ToLower(code)
	switch {
	case strings.Contains(lower, "dissent"):
		return types.DocTypeDissent
	case strings.Contains(lower, "concur"):
		return types.DocTypeConcurrence
	case strings.Contains(lower, "lead"),
		strings.Contains(lower, "combined"),
		strings.Contains(lower, "majority"),
		strings.Contains(lower, "plurality"):
		return types.DocTypeDecision
	default:
		return types.DocTypeUnknown
	}
}

// clusterCourt returns the cluster's own court field when present, otherwise
// infers the court level from the citation reporter abbreviation.
func clusterCourt(cl clusterDetail) string {
	if cl.Court != "" {
		return cl.Court
	}
	for _, cite := range cl.Citations {
		if court := inferCourt(cite.Reporter); court != "" {
			return court
		}
	}
	return "Federal Court"
}

// inferCourt is a heuristic on reporter abbreviations. It returns an empty
// string when the reporter is not recognized.
func inferCourt(reporter string) string {
	r := strings.TrimSpace(reporter)
	switch {
	case r == "U.S." || strings.HasPrefix(r, "S. Ct") || strings.HasPrefix(r, "S.Ct"):
		return "Supreme Court of the United States"
	case strings.HasPrefix(r, "F. Supp") || strings.HasPrefix(r, "F.Supp"):
		return "U.S. District Court"
	case strings.HasPrefix(r, "F."):
		return "U.S. Court of Appeals"
	default:
		return ""
	}
}

func opinionIDFromURL(u string) string {
	m := opinionURLRe.FindStringSubmatch(u)
	if m == nil {
		return "unknown"
	}
	return m[1]
}

func absoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "/") {
		return courtListenerHost + path
	}
	return path
}
