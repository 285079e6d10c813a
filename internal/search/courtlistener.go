// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/caselaw-engine/internal/httputil"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// CourtListener endpoint base URLs. Declared as vars so tests can substitute
// httptest servers.
var (
	searchV4Base       = "https://www.courtlistener.com/api/rest/v4/search/"
	citationLookupBase = "https://www.courtlistener.com/api/rest/v3/citation-lookup/"
	clustersBase       = "https://www.courtlistener.com/api/rest/v3/clusters/"
	opinionsBase       = "https://www.courtlistener.com/api/rest/v3/opinions/"
)

// Client wraps the CourtListener REST endpoints. All traffic goes through
// one shared rate-limited httputil.Client.
type Client struct {
	http       *httputil.Client
	maxResults int
}

// NewClient builds a CourtListener client on top of the shared rate-limited
// HTTP client.
func NewClient(cfg types.SearchConfig, rc *httputil.Client) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > 100 {
		maxResults = 100
	}
	return &Client{http: rc, maxResults: maxResults}
}

// searchV4 runs the modern full-text search endpoint, restricted to
// published opinions.
func (c *Client) searchV4(ctx context.Context, query string) (*v4SearchResponse, error) {
	params := url.Values{
		"q":              {query},
		"type":           {"o"},
		"stat_Published": {"on"},
		"page_size":      {fmt.Sprintf("%d", c.maxResults)},
	}

	var out v4SearchResponse
	if err := c.getJSON(ctx, searchV4Base+"?"+params.Encode(), &out); err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	return &out, nil
}

// lookupCitation posts raw citation text to the dedicated citation-lookup
// endpoint. The endpoint matches one entry per citation found in the text.
func (c *Client) lookupCitation(ctx context.Context, text string) ([]lookupResult, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encoding lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, citationLookupBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("citation lookup: %w", err)
	}
	defer resp.Body.Close()

	var out []lookupResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parsing lookup response: %w", err)
	}
	return out, nil
}

// queryClusters runs one legacy structured-field query against the clusters
// endpoint. When federalCite is true the citation filter targets the
// federal-citation field instead of the general citation field.
func (c *Client) queryClusters(ctx context.Context, q types.CitationQuery, federalCite bool) (*clusterListResponse, error) {
	params := url.Values{
		"precedential_status": {"Published"},
		"page_size":           {fmt.Sprintf("%d", c.maxResults)},
	}
	if q.CaseName != "" {
		params.Set("case_name", q.CaseName)
	}
	if q.Citation != "" {
		if federalCite {
			params.Set("federal_cite_one", q.Citation)
		} else {
			params.Set("citation", q.Citation)
		}
	}
	if q.Court != "" {
		params.Set("docket__court", q.Court)
	}
	if q.YearFrom > 0 {
		params.Set("date_filed__gte", fmt.Sprintf("%d-01-01", q.YearFrom))
	}
	if q.YearTo > 0 {
		params.Set("date_filed__lte", fmt.Sprintf("%d-12-31", q.YearTo))
	}

	var out clusterListResponse
	if err := c.getJSON(ctx, clustersBase+"?"+params.Encode(), &out); err != nil {
		return nil, fmt.Errorf("cluster query: %w", err)
	}
	return &out, nil
}

// getCluster fetches the full detail record for one cluster, used when a
// search response carries incomplete nested data.
func (c *Client) getCluster(ctx context.Context, id int) (*clusterDetail, error) {
	var out clusterDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s%d/", clustersBase, id), &out); err != nil {
		return nil, fmt.Errorf("cluster %d: %w", id, err)
	}
	return &out, nil
}

// getOpinion fetches one opinion record, primarily for its plain text.
func (c *Client) getOpinion(ctx context.Context, id int) (*opinionDetail, error) {
	var out opinionDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s%d/", opinionsBase, id), &out); err != nil {
		return nil, fmt.Errorf("opinion %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// CourtListener API JSON structures. Each upstream shape gets its own typed
// struct at the deserialization boundary; the normalizer maps them to the
// uniform CaseDocument.

type v4SearchResponse struct {
	Count   int     `json:"count"`
	Results []v4Hit `json:"results"`
}

type v4Hit struct {
	ClusterID    int    `json:"cluster_id"`
	CaseName     string `json:"caseName"`
	Court        string `json:"court"`
	DocketNumber string `json:"docketNumber"`
	DateFiled    string `json:"dateFiled"`
	Snippet      string `json:"snippet"`
	AbsoluteURL  string `json:"absolute_url"`
	Status       string `json:"status"`
}

type lookupResult struct {
	Citation string          `json:"citation"`
	Status   int             `json:"status"`
	Clusters []clusterDetail `json:"clusters"`
}

type clusterListResponse struct {
	Count   int             `json:"count"`
	Next    string          `json:"next"`
	Results []clusterDetail `json:"results"`
}

type clusterDetail struct {
	ID                 int               `json:"id"`
	CaseName           string            `json:"case_name"`
	Court              string            `json:"court"`
	DateFiled          string            `json:"date_filed"`
	DocketNumber       string            `json:"docket_number"`
	AbsoluteURL        string            `json:"absolute_url"`
	Syllabus           string            `json:"syllabus"`
	Summary            string            `json:"summary"`
	PrecedentialStatus string            `json:"precedential_status"`
	Citations          []clusterCitation `json:"citations"`
	SubOpinions        []subOpinionRef   `json:"sub_opinions"`
	Opinions           []opinionDetail   `json:"opinions"`
}

type clusterCitation struct {
	Volume   int    `json:"volume"`
	Reporter string `json:"reporter"`
	Page     string `json:"page"`
}

type opinionDetail struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	AuthorStr   string `json:"author_str"`
	PlainText   string `json:"plain_text"`
	DownloadURL string `json:"download_url"`
	PageCount   int    `json:"page_count"`
	AbsoluteURL string `json:"absolute_url"`
}

// subOpinionRef tolerates both shapes the API uses for sub_opinions entries:
// a bare URL string or an embedded opinion object.
type subOpinionRef struct {
	url     string
	opinion *opinionDetail
}

func (s *subOpinionRef) UnmarshalJSON(data []byte) error {
	var u string
	if err := json.Unmarshal(data, &u); err == nil {
		s.url = u
		return nil
	}

	var op opinionDetail
	if err := json.Unmarshal(data, &op); err != nil {
		return fmt.Errorf("sub_opinions entry is neither URL nor object: %w", err)
	}
	s.opinion = &op
	return nil
}
