// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite record of every converted song: its
// metadata, conversion status and classified verses.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pptx2pro/pkg/types"
)

// Entry is one song as recorded in the catalog.
type Entry struct {
	Prefix      string               `json:"prefix" yaml:"prefix"`
	ID          string               `json:"id" yaml:"id"`
	Title       string               `json:"title" yaml:"title"`
	Author      string               `json:"author,omitempty" yaml:"author,omitempty"`
	Year        string               `json:"year,omitempty" yaml:"year,omitempty"`
	Source      string               `json:"source" yaml:"source"`
	Output      string               `json:"output,omitempty" yaml:"output,omitempty"`
	Status      types.DocumentStatus `json:"status" yaml:"status"`
	Slides      int                  `json:"slides" yaml:"slides"`
	Error       string               `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt string               `json:"converted_at" yaml:"converted_at"`
	Verses      []types.Verse        `json:"verses,omitempty" yaml:"verses,omitempty"`
}

// Store manages the catalog database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS songs (
			prefix TEXT NOT NULL,
			id TEXT NOT NULL,
			title TEXT,
			author TEXT,
			year TEXT,
			source TEXT,
			output TEXT,
			status TEXT NOT NULL,
			slides INTEGER,
			error TEXT,
			converted_at TEXT,
			PRIMARY KEY (prefix, id)
		)`,
		`CREATE TABLE IF NOT EXISTS verses (
			prefix TEXT NOT NULL,
			song_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			type TEXT NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (prefix, song_id, position),
			FOREIGN KEY (prefix, song_id) REFERENCES songs(prefix, id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_songs_status ON songs(status)`,
		`CREATE INDEX IF NOT EXISTS idx_verses_type ON verses(type)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts e and replaces its verses. An empty ConvertedAt is set to
// the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Prefix == "" || e.ID == "" {
		return fmt.Errorf("recording %q: prefix and id are required", e.Source)
	}
	if e.ConvertedAt == "" {
		e.ConvertedAt = s.now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO songs (prefix, id, title, author, year, source, output, status, slides, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(prefix, id) DO UPDATE SET
			title=excluded.title, author=excluded.author, year=excluded.year,
			source=excluded.source, output=excluded.output, status=excluded.status,
			slides=excluded.slides, error=excluded.error, converted_at=excluded.converted_at`,
		e.Prefix, e.ID, e.Title, e.Author, e.Year, e.Source, e.Output,
		string(e.Status), e.Slides, e.Error, e.ConvertedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting song %s%s: %w", e.Prefix, e.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM verses WHERE prefix = ? AND song_id = ?`, e.Prefix, e.ID,
	); err != nil {
		return fmt.Errorf("deleting old verses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO verses (prefix, song_id, position, type, content) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range e.Verses {
		if _, err := stmt.ExecContext(ctx, e.Prefix, e.ID, i, string(v.Type), v.Content); err != nil {
			return fmt.Errorf("inserting verse %d of %s%s: %w", i+1, e.Prefix, e.ID, err)
		}
	}

	return tx.Commit()
}

// QueryOptions filters List and the exports.
type QueryOptions struct {
	// Prefix limits results to one hymnal.
	Prefix string
	// Status limits results to one conversion status.
	Status types.DocumentStatus
}

// List returns the matching songs ordered by prefix and id, each with its
// verses.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT prefix, id, title, author, year, source, output, status, slides, error, converted_at
		FROM songs WHERE 1=1`)
	if opts.Prefix != "" {
		qb.WriteString(` AND prefix = ?`)
		args = append(args, opts.Prefix)
	}
	if opts.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(opts.Status))
	}
	qb.WriteString(` ORDER BY prefix, id`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			status string
		)
		if err := rows.Scan(&e.Prefix, &e.ID, &e.Title, &e.Author, &e.Year,
			&e.Source, &e.Output, &status, &e.Slides, &e.Error, &e.ConvertedAt); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		e.Status = types.DocumentStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating songs: %w", err)
	}

	for i := range entries {
		verses, err := s.verses(ctx, entries[i].Prefix, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Verses = verses
	}
	return entries, nil
}

func (s *Store) verses(ctx context.Context, prefix, id string) ([]types.Verse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, content FROM verses WHERE prefix = ? AND song_id = ? ORDER BY position`,
		prefix, id)
	if err != nil {
		return nil, fmt.Errorf("querying verses of %s%s: %w", prefix, id, err)
	}
	defer rows.Close()

	var verses []types.Verse
	for rows.Next() {
		var v types.Verse
		var vt string
		if err := rows.Scan(&vt, &v.Content); err != nil {
			return nil, fmt.Errorf("scanning verse: %w", err)
		}
		v.Type = types.VerseType(vt)
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

// Counts returns the number of songs per status for a prefix, or for all
// prefixes when prefix is empty.
func (s *Store) Counts(ctx context.Context, prefix string) (map[types.DocumentStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, count(*) FROM songs WHERE ? = '' OR prefix = ? GROUP BY status`,
		prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("counting songs: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.DocumentStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[types.DocumentStatus(status)] = n
	}
	return counts, rows.Err()
}
