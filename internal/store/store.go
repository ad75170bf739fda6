// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists fetch runs and papers in a local SQLite archive,
// so repeated fetches can flag newly-seen papers and support offline
// keyword search over everything the radar has collected.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-radar/pkg/types"
)

const dbFile = "radar.db"

// Store manages the archive SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at dir/radar.db, creating the
// schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			mode TEXT,
			sources TEXT,
			total_found INTEGER,
			total_kept INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			abstract TEXT,
			authors TEXT,
			source TEXT,
			journal TEXT,
			published TEXT,
			doi TEXT,
			pmid TEXT,
			arxiv_id TEXT,
			url TEXT,
			high_impact INTEGER,
			best_score REAL,
			first_seen_run INTEGER REFERENCES runs(id),
			last_seen_run INTEGER REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_source ON papers(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
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

// RunSummary holds counts from archiving one fetch run.
type RunSummary struct {
	RunID     int64
	NewPapers int
	Updated   int
}

// RecordRun archives a fetch result: inserts a run row, upserts every
// paper, and reports how many papers the archive had never seen before.
func (s *Store) RecordRun(ctx context.Context, res types.FetchResult, req types.FetchRequest) (RunSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var sources []string
	for _, src := range types.AllSources {
		if req.Enabled[src] {
			sources = append(sources, string(src))
		}
	}

	runRes, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started, mode, sources, total_found, total_kept) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), req.Mode.Name, strings.Join(sources, ","),
		res.TotalBeforeFilter, len(res.Papers))
	if err != nil {
		return RunSummary{}, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := runRes.LastInsertId()
	if err != nil {
		return RunSummary{}, fmt.Errorf("reading run id: %w", err)
	}

	summary := RunSummary{RunID: runID}
	for _, p := range res.Papers {
		key := paperKey(p)

		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT rowid FROM papers WHERE key = ?`, key).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			published := ""
			if !p.Published.IsZero() {
				published = p.Published.Format("2006-01-02")
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO papers (key, title, abstract, authors, source, journal, published,
					doi, pmid, arxiv_id, url, high_impact, best_score, first_seen_run, last_seen_run)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				key, p.Title, p.Abstract, p.Authors, string(p.Source), p.Journal, published,
				p.DOI, p.PMID, p.ArxivID, p.URL, boolToInt(p.HighImpact), p.RelevanceScore, runID, runID)
			if err != nil {
				return RunSummary{}, fmt.Errorf("inserting paper: %w", err)
			}
			summary.NewPapers++
		case err != nil:
			return RunSummary{}, fmt.Errorf("looking up paper: %w", err)
		default:
			_, err = tx.ExecContext(ctx,
				`UPDATE papers SET last_seen_run = ?, best_score = max(best_score, ?) WHERE rowid = ?`,
				runID, p.RelevanceScore, existing)
			if err != nil {
				return RunSummary{}, fmt.Errorf("updating paper: %w", err)
			}
			summary.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return RunSummary{}, fmt.Errorf("committing run: %w", err)
	}
	return summary, nil
}

// Search runs an FTS5 query over archived titles and abstracts, best match
// first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.title, p.abstract, p.authors, p.source, p.journal, p.published,
			p.doi, p.pmid, p.arxiv_id, p.url, p.high_impact, p.best_score
		 FROM papers_fts f JOIN papers p ON p.rowid = f.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching archive: %w", err)
	}
	defer rows.Close()

	var out []types.Paper
	for rows.Next() {
		var p types.Paper
		var src, published string
		var highImpact int
		if err := rows.Scan(&p.Title, &p.Abstract, &p.Authors, &src, &p.Journal, &published,
			&p.DOI, &p.PMID, &p.ArxivID, &p.URL, &highImpact, &p.RelevanceScore); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		p.Source = types.Source(src)
		p.HighImpact = highImpact != 0
		if published != "" {
			if t, err := time.Parse("2006-01-02", published); err == nil {
				p.Published = t
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// paperKey mirrors the deduplicator's identity rule: external identifier
// first, normalized title + source otherwise.
func paperKey(p types.Paper) string {
	if id := p.Identifier(); id != "" {
		return id
	}
	title := strings.Join(strings.Fields(strings.ToLower(p.Title)), " ")
	return "title:" + title + "|" + string(p.Source)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
