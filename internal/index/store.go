// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists extracted sections in SQLite with an FTS5
// full-text index over section bodies.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docextract/internal/output"
	"github.com/pdiddy/docextract/pkg/types"
)

const (
	indexDir          = "index"
	dbFile            = "sections.db"
	defaultMaxResults = 20
)

// Store manages the section index database.
type Store struct {
	db         *sql.DB
	outputDir  string
	maxResults int

	// fts is false when the driver was built without the sqlite_fts5 tag;
	// text queries then fall back to LIKE matching.
	fts bool
}

// NewStore opens or creates the index database at outputDir/index/sections.db
// and creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.OutputDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		outputDir:  cfg.OutputDir,
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
			id TEXT PRIMARY KEY,
			source_pdf TEXT,
			title TEXT,
			extracted_at TEXT,
			page_count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			first_page INTEGER,
			pages TEXT,
			chars INTEGER,
			body TEXT NOT NULL,
			UNIQUE(document_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_name ON sections(name)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			manifest TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sections_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		if _, err := s.db.Exec(
			`CREATE VIRTUAL TABLE sections_fts USING fts5(name, body, content=sections, content_rowid=rowid)`,
		); err != nil {
			if strings.Contains(err.Error(), "no such module") {
				return nil
			}
			return fmt.Errorf("creating FTS table: %w", err)
		}
		triggers := []string{
			`CREATE TRIGGER sections_ai AFTER INSERT ON sections BEGIN
				INSERT INTO sections_fts(rowid, name, body) VALUES (new.rowid, new.name, new.body);
			END`,
			`CREATE TRIGGER sections_ad AFTER DELETE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, name, body) VALUES('delete', old.rowid, old.name, old.body);
			END`,
			`CREATE TRIGGER sections_au AFTER UPDATE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, name, body) VALUES('delete', old.rowid, old.name, old.body);
				INSERT INTO sections_fts(rowid, name, body) VALUES (new.rowid, new.name, new.body);
			END`,
		}
		for _, stmt := range triggers {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS triggers: %w", err)
			}
		}
	}

	s.fts = true
	return nil
}

// IngestSummary holds counts from one indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of manifests processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads every section manifest in the output directory and loads it
// into the database. Manifests whose modification time has not changed
// since the last run are skipped; changed ones replace their document's
// sections.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading output directory %s: %w", s.outputDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !output.IsManifest(entry.Name()) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := entry.Name()
		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE manifest = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(s.outputDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var m types.Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}
		if m.DocumentID == "" {
			fmt.Fprintf(w, "failed  %s: manifest has no document_id\n", name)
			summary.Failed++
			continue
		}

		if err := s.ingestManifest(ctx, name, &m, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d sections)\n", m.DocumentID, len(m.Sections))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d sections)\n", m.DocumentID, len(m.Sections))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestManifest(ctx context.Context, manifest string, m *types.Manifest, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE document_id = ?`, m.DocumentID); err != nil {
		return fmt.Errorf("deleting old sections: %w", err)
	}

	extractedAt := ""
	if !m.ExtractedAt.IsZero() {
		extractedAt = m.ExtractedAt.UTC().Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source_pdf, title, extracted_at, page_count)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source_pdf=excluded.source_pdf, title=excluded.title,
			extracted_at=excluded.extracted_at, page_count=excluded.page_count`,
		m.DocumentID, m.SourcePDF, m.Title, extractedAt, m.PageCount,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (document_id, position, name, first_page, pages, chars, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sec := range m.Sections {
		pagesJSON, _ := json.Marshal(sec.Pages)
		if _, err := stmt.ExecContext(ctx,
			m.DocumentID, sec.Position, sec.Name, sec.FirstPage,
			string(pagesJSON), sec.Chars, sec.Body,
		); err != nil {
			return fmt.Errorf("inserting section %q: %w", sec.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (manifest, document_id, file_mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(manifest) DO UPDATE SET
			document_id=excluded.document_id, file_mod_time=excluded.file_mod_time`,
		manifest, m.DocumentID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
