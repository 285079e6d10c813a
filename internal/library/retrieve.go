// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// QueryOptions holds parameters for library queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title and plain text.
	Query string

	// Type filters by document type.
	Type types.DocumentType

	// Court filters by a substring of the court name.
	Court string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Court == ""
}

// QueryResult is a stored document plus its save timestamp.
type QueryResult struct {
	types.CaseDocument
	SavedAt string `json:"saved_at" yaml:"saved_at"`
}

// Retrieve queries the library with optional full-text search and structured
// filters. Full-text queries rank by FTS5 relevance; structured-only queries
// sort by save time, newest first.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT d.id, d.doc_type, d.title, d.court, d.docket_number, d.date,
				d.page_count, d.source, d.download_url, d.plain_text, d.authors, d.saved_at
			FROM documents_fts
			JOIN documents d ON d.rowid = documents_fts.rowid
			WHERE documents_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT d.id, d.doc_type, d.title, d.court, d.docket_number, d.date,
				d.page_count, d.source, d.download_url, d.plain_text, d.authors, d.saved_at
			FROM documents d
			WHERE 1=1`)
	}

	if opts.Type != "" {
		qb.WriteString(` AND d.doc_type = ?`)
		args = append(args, string(opts.Type))
	}

	if opts.Court != "" {
		qb.WriteString(` AND d.court LIKE ?`)
		args = append(args, "%"+opts.Court+"%")
	}

	if useFTS {
		qb.WriteString(` ORDER BY documents_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.saved_at DESC, d.id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr          QueryResult
			docType     string
			authorsJSON sql.NullString
			savedAt     sql.NullString
		)

		if err := rows.Scan(
			&qr.ID, &docType, &qr.Title, &qr.Court, &qr.DocketNumber, &qr.Date,
			&qr.PageCount, &qr.Source, &qr.DownloadURL, &qr.PlainText,
			&authorsJSON, &savedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Type = types.DocumentType(docType)
		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &qr.Authors)
		}
		if savedAt.Valid {
			qr.SavedAt = savedAt.String
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}
