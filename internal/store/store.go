package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobscout/internal/domain"
)

// Store is the durable set of postings we have already alerted on, keyed by
// URL. It is append-only: rows are never updated or deleted by the pipeline.
type Store struct {
	db *sql.DB
}

// SeenJob is the persisted projection of a posting, plus when we first saw it.
type SeenJob struct {
	ID         int64
	URL        string
	Title      string
	Company    string
	Location   string
	Source     domain.Source
	Salary     string
	PostedAt   string
	SeenAt     time.Time
	MatchScore int
}

// Stats summarizes the store for the CLI; the pipeline never reads it.
type Stats struct {
	Total    int
	BySource map[domain.Source]int
}

func New(db *sql.DB) (*Store, error) {
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  url TEXT UNIQUE NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  source TEXT NOT NULL,
  salary TEXT,
  posted_at TEXT,
  seen_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  match_score INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_jobs_seen_at ON jobs(seen_at DESC);
`)
	return err
}

// Has reports whether a posting with this URL has already been persisted.
func (s *Store) Has(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM jobs WHERE url = ? LIMIT 1;`, url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query seen url: %w", err)
	}
	return true, nil
}

// Put persists a posting as seen. Inserting an already-present URL is a
// no-op, not an error: INSERT OR IGNORE makes repeat inserts idempotent at
// the database, not via a racy pre-check.
func (s *Store) Put(ctx context.Context, j domain.JobPosting) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (url, title, company, location, source, salary, posted_at, match_score)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		j.URL, j.Title, j.Company, j.Location, string(j.Source),
		nullable(j.Salary), nullable(j.PostedAt), j.MatchScore,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// All returns every persisted posting, newest first.
func (s *Store) All(ctx context.Context) ([]SeenJob, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, url, title, company, location, source, salary, posted_at, seen_at, match_score
FROM jobs
ORDER BY seen_at DESC, id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeenJob
	for rows.Next() {
		var (
			j        SeenJob
			source   string
			salary   sql.NullString
			postedAt sql.NullString
			seenAt   string
		)
		if err := rows.Scan(&j.ID, &j.URL, &j.Title, &j.Company, &j.Location,
			&source, &salary, &postedAt, &seenAt, &j.MatchScore); err != nil {
			return nil, err
		}
		j.Source = domain.Source(source)
		j.Salary = salary.String
		j.PostedAt = postedAt.String
		ts, err := time.Parse(time.RFC3339Nano, seenAt)
		if err != nil {
			return nil, fmt.Errorf("parse seen_at %q: %w", seenAt, err)
		}
		j.SeenAt = ts
		out = append(out, j)
	}
	return out, rows.Err()
}

// Count is a cheap Total without pulling every row.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n)
	return n, err
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{BySource: map[domain.Source]int{}}

	total, err := s.Count(ctx)
	if err != nil {
		return st, fmt.Errorf("count jobs: %w", err)
	}
	st.Total = total

	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM jobs GROUP BY source;`)
	if err != nil {
		return st, fmt.Errorf("count by source: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			source string
			n      int
		)
		if err := rows.Scan(&source, &n); err != nil {
			return st, err
		}
		st.BySource[domain.Source(source)] = n
	}
	return st, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
