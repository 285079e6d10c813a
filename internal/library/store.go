// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists selected case documents in a local SQLite
// research library with full-text retrieval.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

const dbFile = "library.db"

// Store manages the research library SQLite database.
type Store struct {
	db         *sql.DB
	libraryDir string
	maxResults int
}

// NewStore opens or creates the library database at libraryDir/library.db,
// creating the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.LibraryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.LibraryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		libraryDir: cfg.LibraryDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			doc_type TEXT NOT NULL,
			title TEXT,
			court TEXT,
			docket_number TEXT,
			date TEXT,
			page_count INTEGER,
			source TEXT,
			download_url TEXT,
			plain_text TEXT,
			authors TEXT,
			saved_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(doc_type)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_court ON documents(court)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE documents_fts USING fts5(title, plain_text, content=documents, content_rowid=rowid)`,
			`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, title, plain_text) VALUES (new.rowid, new.title, new.plain_text);
			END`,
			`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, plain_text) VALUES('delete', old.rowid, old.title, old.plain_text);
			END`,
			`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, title, plain_text) VALUES('delete', old.rowid, old.title, old.plain_text);
				INSERT INTO documents_fts(rowid, title, plain_text) VALUES (new.rowid, new.title, new.plain_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveSummary holds counts from one library save.
type SaveSummary struct {
	Added   int
	Updated int
}

// Total returns the number of documents processed.
func (s SaveSummary) Total() int {
	return s.Added + s.Updated
}

// Save upserts documents into the library, keyed by their synthesized ID.
// Re-saving an existing document replaces its stored fields.
func (s *Store) Save(ctx context.Context, docs []types.CaseDocument, w io.Writer) (SaveSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (id, doc_type, title, court, docket_number, date,
			page_count, source, download_url, plain_text, authors, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			doc_type=excluded.doc_type, title=excluded.title, court=excluded.court,
			docket_number=excluded.docket_number, date=excluded.date,
			page_count=excluded.page_count, source=excluded.source,
			download_url=excluded.download_url, plain_text=excluded.plain_text,
			authors=excluded.authors, saved_at=excluded.saved_at`)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary SaveSummary
	now := time.Now().UTC().Format(time.RFC3339)

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM documents WHERE id = ?`, doc.ID,
		).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking document %s: %w", doc.ID, err)
		}

		authorsJSON, _ := json.Marshal(doc.Authors)
		if _, err := stmt.ExecContext(ctx,
			doc.ID, string(doc.Type), doc.Title, doc.Court, doc.DocketNumber,
			doc.Date, doc.PageCount, doc.Source, doc.DownloadURL,
			doc.PlainText, string(authorsJSON), now,
		); err != nil {
			return summary, fmt.Errorf("saving document %s: %w", doc.ID, err)
		}

		if exists > 0 {
			fmt.Fprintf(w, "updated %s\n", doc.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added   %s\n", doc.ID)
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "\nadded: %d, updated: %d\n", summary.Added, summary.Updated)
	return summary, nil
}
