// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// QueryFile is the on-disk representation of a citation search and its
// results. A researcher can save a search to a file and re-display or ingest
// it later without re-querying the API.
type QueryFile struct {
	// SessionID uniquely identifies one saved search.
	SessionID string               `yaml:"session_id"`
	Citation  string               `yaml:"citation"`
	Mode      string               `yaml:"mode"`
	Parsed    types.ParsedCitation `yaml:"parsed"`
	Documents []types.CaseDocument `yaml:"documents"`
	Summary   QuerySummary         `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Errors    []string  `yaml:"errors,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a search and its results to a YAML file.
func WriteQueryFile(path string, cit types.ParsedCitation, mode Mode, res Result) error {
	qf := QueryFile{
		SessionID: uuid.NewString(),
		Citation:  cit.FullCitation,
		Mode:      string(mode),
		Parsed:    cit,
		Documents: res.Documents,
		Summary: QuerySummary{
			Total:     res.TotalFound,
			Errors:    res.Errors,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
