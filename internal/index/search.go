// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for section searches.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Section filters by section name, case-insensitively.
	Section string

	// DocumentID filters by document.
	DocumentID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Section == "" && q.DocumentID == ""
}

// QueryResult is one indexed section with its document metadata.
type QueryResult struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Title      string `json:"title" yaml:"title"`
	SourcePDF  string `json:"source_pdf" yaml:"source_pdf"`
	Position   int    `json:"position" yaml:"position"`
	Section    string `json:"section" yaml:"section"`
	FirstPage  int    `json:"first_page" yaml:"first_page"`
	Pages      []int  `json:"pages" yaml:"pages"`
	Chars      int    `json:"chars" yaml:"chars"`
	Body       string `json:"body" yaml:"body"`
}

// Search queries the index with optional full-text search and filters.
// Full-text results are ranked by relevance; filter-only results are
// ordered by document and section position.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != "" && s.fts
	)

	switch {
	case useFTS:
		qb.WriteString(
			`SELECT s.document_id, d.title, d.source_pdf, s.position, s.name,
				s.first_page, s.pages, s.chars, s.body
			FROM sections_fts
			JOIN sections s ON s.rowid = sections_fts.rowid
			LEFT JOIN documents d ON s.document_id = d.id
			WHERE sections_fts MATCH ?`)
		args = append(args, opts.Query)
	default:
		qb.WriteString(
			`SELECT s.document_id, d.title, d.source_pdf, s.position, s.name,
				s.first_page, s.pages, s.chars, s.body
			FROM sections s
			LEFT JOIN documents d ON s.document_id = d.id
			WHERE 1=1`)
		if opts.Query != "" {
			for _, term := range strings.Fields(opts.Query) {
				qb.WriteString(` AND (s.body LIKE ? OR s.name LIKE ?)`)
				like := "%" + term + "%"
				args = append(args, like, like)
			}
		}
	}

	if opts.Section != "" {
		qb.WriteString(` AND s.name = ? COLLATE NOCASE`)
		args = append(args, opts.Section)
	}

	if opts.DocumentID != "" {
		qb.WriteString(` AND s.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY sections_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY s.document_id, s.position`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying section index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr        QueryResult
			title     sql.NullString
			sourcePDF sql.NullString
			pagesJSON sql.NullString
		)
		if err := rows.Scan(
			&qr.DocumentID, &title, &sourcePDF, &qr.Position, &qr.Section,
			&qr.FirstPage, &pagesJSON, &qr.Chars, &qr.Body,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Title = title.String
		qr.SourcePDF = sourcePDF.String
		if pagesJSON.Valid {
			json.Unmarshal([]byte(pagesJSON.String), &qr.Pages)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
