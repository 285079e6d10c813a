// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/caselaw-engine/internal/citation"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miller.yaml")

	cit := citation.Parse("Miller v. McDonald, 944 F.3d 1050 (9th Cir. 2019)")
	res := Result{
		Documents: []types.CaseDocument{
			{ID: "cl-v4-1", Type: types.DocTypeDecision, Title: "Miller v. McDonald",
				Court: "Ninth Circuit", Date: "2019-12-09", Source: types.SourceCourtListener},
		},
		TotalFound: 1,
		Errors:     []string{"note: something advisory"},
	}

	if err := WriteQueryFile(path, cit, ModeRelated, res); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}

	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}

	if qf.SessionID == "" {
		t.Error("SessionID should be populated")
	}
	if qf.Citation != cit.FullCitation {
		t.Errorf("Citation = %q, want %q", qf.Citation, cit.FullCitation)
	}
	if qf.Mode != "related" {
		t.Errorf("Mode = %q, want related", qf.Mode)
	}
	if !qf.Parsed.IsValid || qf.Parsed.CaseName != "Miller v. McDonald" {
		t.Errorf("Parsed = %+v", qf.Parsed)
	}
	if len(qf.Documents) != 1 || qf.Documents[0].ID != "cl-v4-1" {
		t.Errorf("Documents = %+v", qf.Documents)
	}
	if qf.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1", qf.Summary.Total)
	}
	if len(qf.Summary.Errors) != 1 {
		t.Errorf("Summary.Errors = %v", qf.Summary.Errors)
	}
	if qf.Summary.Timestamp.IsZero() {
		t.Error("Summary.Timestamp should be set")
	}
}

func TestQueryFileUniqueSessionIDs(t *testing.T) {
	dir := t.TempDir()
	cit := citation.Parse("Miller v. McDonald, 944 F.3d 1050")

	paths := []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}
	ids := map[string]bool{}
	for _, p := range paths {
		if err := WriteQueryFile(p, cit, ModeExact, Result{}); err != nil {
			t.Fatalf("WriteQueryFile: %v", err)
		}
		qf, err := ReadQueryFile(p)
		if err != nil {
			t.Fatalf("ReadQueryFile: %v", err)
		}
		if ids[qf.SessionID] {
			t.Errorf("duplicate session ID %q", qf.SessionID)
		}
		ids[qf.SessionID] = true
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("reading a missing query file should fail")
	}
}
