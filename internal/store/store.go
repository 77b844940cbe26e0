package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "modernc.org/sqlite" // registers "sqlite", pure Go
)

// pragmas are set by the driver on every connection it opens.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Store is the local SQLite database. It holds the sqlite progress backend
// and, whatever the backend, the LLM request log.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequence
}

// Open opens or creates the database at dsn, a file path or a "file:" URI,
// and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection lets shared in-memory databases live as long as
	// the Store and serialises writers.
	db.SetMaxOpenConns(1)

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	return &Store{db: db, drv: drv, seq: &sequence{db: db}}, nil
}

func withPragmas(dsn string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + q.Encode()
}

func (s *Store) Close() error { return s.drv.Close() }

// DB is the raw handle, for tests and one-off queries.
func (s *Store) DB() *sql.DB { return s.db }

// KV is the progress backend on the kv_records table.
func (s *Store) KV() *SQLiteKV { return &SQLiteKV{db: s.db, seq: s.seq} }

func (s *Store) EventRepo() EventRepo { return &eventRepo{db: s.db, seq: s.seq} }

// sequence numbers every write in the database, KV revisions and LLM
// events alike, so their relative order survives clock changes.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

func (s *sequence) next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := "UPDATE " + sequenceTable + " SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1"
	var n int64
	if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
