// Package sqlstore implements the tweet archive on SQLite (modernc, no
// cgo) or PostgreSQL (lib/pq) through database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type dialect struct {
	driver string
	schema string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		driver: "sqlite",
		schema: `
CREATE TABLE IF NOT EXISTS tweets (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	text TEXT NOT NULL,
	date TEXT,
	mentions TEXT,
	hashtags TEXT,
	url TEXT
);`,
	},
	DriverPostgres: {
		driver: "postgres",
		schema: `
CREATE TABLE IF NOT EXISTS tweets (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT UNIQUE NOT NULL,
	text TEXT NOT NULL,
	date TEXT,
	mentions TEXT,
	hashtags TEXT,
	url TEXT
);`,
	},
}

// Store implements store.Store on a SQL database.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	s, err := Open(ctx, DriverSQLite, path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for better concurrency
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	return s, nil
}

// OpenPostgres opens a PostgreSQL database from a lib/pq DSN.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	return Open(ctx, DriverPostgres, dsn)
}

// Open connects with the named driver and creates the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, driver)
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: %s store needs a dsn", internalerr.ErrInvalidConfig, driver)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", internalerr.ErrStoreUnavailable, driver, err)
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db, dialect: d}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertTweets writes all tweets in one transaction.
func (s *Store) UpsertTweets(ctx context.Context, tweets []corpus.Tweet) (int, error) {
	for _, t := range tweets {
		if err := t.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO tweets (id, text, date, mentions, hashtags, url)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	text=excluded.text,
	date=excluded.date,
	mentions=excluded.mentions,
	hashtags=excluded.hashtags,
	url=excluded.url`))
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tweets {
		mentions, err := encodeList(t.Mentions)
		if err != nil {
			return 0, err
		}
		hashtags, err := encodeList(t.Hashtags)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, string(t.ID), t.Text, t.Date, mentions, hashtags, t.URL); err != nil {
			return 0, fmt.Errorf("upsert tweet %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(tweets), nil
}

// GetTweet returns a tweet by id.
func (s *Store) GetTweet(ctx context.Context, id string) (corpus.Tweet, bool, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, text, date, mentions, hashtags, url FROM tweets WHERE id = ?`), id)
	t, err := scanTweet(row)
	if err == sql.ErrNoRows {
		return corpus.Tweet{}, false, nil
	}
	if err != nil {
		return corpus.Tweet{}, false, err
	}
	return t, true, nil
}

// Tweets implements corpus.Source, in first-insertion order.
func (s *Store) Tweets(ctx context.Context) ([]corpus.Tweet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, date, mentions, hashtags, url FROM tweets ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []corpus.Tweet
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Count returns the number of stored tweets.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTweet(sc scanner) (corpus.Tweet, error) {
	var (
		t                  corpus.Tweet
		id                 string
		date, url          sql.NullString
		mentions, hashtags sql.NullString
	)
	if err := sc.Scan(&id, &t.Text, &date, &mentions, &hashtags, &url); err != nil {
		return corpus.Tweet{}, err
	}
	t.ID = corpus.ID(id)
	t.Date = date.String
	t.URL = url.String

	var err error
	if t.Mentions, err = decodeList(mentions.String); err != nil {
		return corpus.Tweet{}, fmt.Errorf("decode mentions of %s: %w", id, err)
	}
	if t.Hashtags, err = decodeList(hashtags.String); err != nil {
		return corpus.Tweet{}, fmt.Errorf("decode hashtags of %s: %w", id, err)
	}
	return t, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func encodeList(list []string) (string, error) {
	if len(list) == 0 {
		return "", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	return list, nil
}
