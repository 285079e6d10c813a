// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/pdiddy/caselaw-engine/internal/httputil"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// --- test helpers ---

func testSearchClient() *Client {
	cfg := types.SearchConfig{
		HTTPConfig:         types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "caselaw-engine-test"},
		MaxResults:         20,
		MinRequestInterval: 1 * time.Millisecond,
	}
	return NewClient(cfg, httputil.NewClient(cfg))
}

func jsonServer(status int, body string, gotURL *url.URL) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotURL != nil {
			*gotURL = *r.URL
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

const sampleV4JSON = `{
  "count": 1,
  "results": [
    {
      "cluster_id": 1,
      "caseName": "Miller v. McDonald",
      "court": "Court of Appeals for the Ninth Circuit",
      "docketNumber": "17-35897",
      "dateFiled": "2019-12-09",
      "snippet": "The panel affirmed the district court...",
      "absolute_url": "/opinion/4669098/miller-v-mcdonald/",
      "status": "Published"
    }
  ]
}`

// --- searchV4 ---

func TestSearchV4(t *testing.T) {
	var gotURL url.URL
	ts := jsonServer(http.StatusOK, sampleV4JSON, &gotURL)
	defer ts.Close()

	old := searchV4Base
	searchV4Base = ts.URL
	defer func() { searchV4Base = old }()

	resp, err := testSearchClient().searchV4(context.Background(), `"Miller v. McDonald"`)
	if err != nil {
		t.Fatalf("searchV4: %v", err)
	}

	params := gotURL.Query()
	if params.Get("q") != `"Miller v. McDonald"` {
		t.Errorf("q = %q", params.Get("q"))
	}
	if params.Get("type") != "o" {
		t.Errorf("type = %q, want o", params.Get("type"))
	}
	if params.Get("stat_Published") != "on" {
		t.Errorf("stat_Published = %q, want on", params.Get("stat_Published"))
	}
	if params.Get("page_size") != "20" {
		t.Errorf("page_size = %q, want 20", params.Get("page_size"))
	}

	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("count = %d, results = %d, want 1/1", resp.Count, len(resp.Results))
	}
	if resp.Results[0].ClusterID != 1 {
		t.Errorf("ClusterID = %d, want 1", resp.Results[0].ClusterID)
	}
	if resp.Results[0].CaseName != "Miller v. McDonald" {
		t.Errorf("CaseName = %q", resp.Results[0].CaseName)
	}
}

func TestSearchV4UpstreamError(t *testing.T) {
	ts := jsonServer(http.StatusBadRequest, `{"detail": "bad query"}`, nil)
	defer ts.Close()

	old := searchV4Base
	searchV4Base = ts.URL
	defer func() { searchV4Base = old }()

	_, err := testSearchClient().searchV4(context.Background(), "q")
	if err == nil {
		t.Fatal("searchV4 on HTTP 400 should fail")
	}
}

// --- lookupCitation ---

func TestLookupCitation(t *testing.T) {
	var gotBody []byte
	var gotMethod, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `[
			{"citation": "410 U.S. 113", "status": 200, "clusters": [
				{"id": 108713, "case_name": "Roe v. Wade", "date_filed": "1973-01-22"}
			]},
			{"citation": "999 X.4th 1", "status": 404, "clusters": []}
		]`)
	}))
	defer ts.Close()

	old := citationLookupBase
	citationLookupBase = ts.URL
	defer func() { citationLookupBase = old }()

	results, err := testSearchClient().lookupCitation(context.Background(), "Roe v. Wade, 410 U.S. 113 (1973)")
	if err != nil {
		t.Fatalf("lookupCitation: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}

	var payload map[string]string
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if payload["text"] != "Roe v. Wade, 410 U.S. 113 (1973)" {
		t.Errorf("text = %q", payload["text"])
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Status != 200 || len(results[0].Clusters) != 1 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[0].Clusters[0].CaseName != "Roe v. Wade" {
		t.Errorf("cluster CaseName = %q", results[0].Clusters[0].CaseName)
	}
}

// --- queryClusters ---

func TestQueryClustersParams(t *testing.T) {
	tests := []struct {
		name        string
		query       types.CitationQuery
		federalCite bool
		wantParams  map[string]string
	}{
		{
			name:       "case name only",
			query:      types.CitationQuery{CaseName: "Miller v. McDonald"},
			wantParams: map[string]string{"case_name": "Miller v. McDonald"},
		},
		{
			name:       "citation against general field",
			query:      types.CitationQuery{Citation: "944 F.3d 1050"},
			wantParams: map[string]string{"citation": "944 F.3d 1050"},
		},
		{
			name:        "citation against federal field",
			query:       types.CitationQuery{Citation: "944 F.3d 1050"},
			federalCite: true,
			wantParams:  map[string]string{"federal_cite_one": "944 F.3d 1050"},
		},
		{
			name:       "court scope",
			query:      types.CitationQuery{CaseName: "Miller", Court: "ca9"},
			wantParams: map[string]string{"case_name": "Miller", "docket__court": "ca9"},
		},
		{
			name:  "year window",
			query: types.CitationQuery{CaseName: "Miller", YearFrom: 2018, YearTo: 2020},
			wantParams: map[string]string{
				"date_filed__gte": "2018-01-01",
				"date_filed__lte": "2020-12-31",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotURL url.URL
			ts := jsonServer(http.StatusOK, `{"count": 0, "results": []}`, &gotURL)
			defer ts.Close()

			old := clustersBase
			clustersBase = ts.URL
			defer func() { clustersBase = old }()

			_, err := testSearchClient().queryClusters(context.Background(), tt.query, tt.federalCite)
			if err != nil {
				t.Fatalf("queryClusters: %v", err)
			}

			params := gotURL.Query()
			if params.Get("precedential_status") != "Published" {
				t.Errorf("precedential_status = %q, want Published", params.Get("precedential_status"))
			}
			for key, want := range tt.wantParams {
				if got := params.Get(key); got != want {
					t.Errorf("%s = %q, want %q", key, got, want)
				}
			}
		})
	}
}

// --- getCluster / getOpinion ---

func TestGetCluster(t *testing.T) {
	var gotURL url.URL
	ts := jsonServer(http.StatusOK, `{"id": 118144, "case_name": "Miranda v. Arizona"}`, &gotURL)
	defer ts.Close()

	old := clustersBase
	clustersBase = ts.URL + "/"
	defer func() { clustersBase = old }()

	cl, err := testSearchClient().getCluster(context.Background(), 118144)
	if err != nil {
		t.Fatalf("getCluster: %v", err)
	}
	if gotURL.Path != "/118144/" {
		t.Errorf("path = %q, want /118144/", gotURL.Path)
	}
	if cl.ID != 118144 || cl.CaseName != "Miranda v. Arizona" {
		t.Errorf("cluster = %+v", cl)
	}
}

func TestGetOpinion(t *testing.T) {
	var gotURL url.URL
	ts := jsonServer(http.StatusOK, `{"id": 9001, "type": "010combined", "plain_text": "opinion text"}`, &gotURL)
	defer ts.Close()

	old := opinionsBase
	opinionsBase = ts.URL + "/"
	defer func() { opinionsBase = old }()

	op, err := testSearchClient().getOpinion(context.Background(), 9001)
	if err != nil {
		t.Fatalf("getOpinion: %v", err)
	}
	if gotURL.Path != "/9001/" {
		t.Errorf("path = %q, want /9001/", gotURL.Path)
	}
	if op.PlainText != "opinion text" {
		t.Errorf("PlainText = %q", op.PlainText)
	}
}

// --- subOpinionRef ---

func TestSubOpinionRefUnmarshal(t *testing.T) {
	var cl clusterDetail
	payload := `{
		"id": 1,
		"sub_opinions": [
			"https://www.courtlistener.com/api/rest/v3/opinions/118144/",
			{"id": 2, "type": "040dissent", "plain_text": "I dissent."}
		]
	}`
	if err := json.Unmarshal([]byte(payload), &cl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(cl.SubOpinions) != 2 {
		t.Fatalf("len(SubOpinions) = %d, want 2", len(cl.SubOpinions))
	}
	if cl.SubOpinions[0].url == "" || cl.SubOpinions[0].opinion != nil {
		t.Errorf("SubOpinions[0] should be a URL reference: %+v", cl.SubOpinions[0])
	}
	if cl.SubOpinions[1].opinion == nil || cl.SubOpinions[1].opinion.ID != 2 {
		t.Errorf("SubOpinions[1] should be an embedded opinion: %+v", cl.SubOpinions[1])
	}
}

func TestSubOpinionRefRejectsNumbers(t *testing.T) {
	var ref subOpinionRef
	if err := json.Unmarshal([]byte(`42`), &ref); err == nil {
		t.Fatal("numeric sub_opinions entry should fail to unmarshal")
	}
}
