package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	kvTable       = "kv_records"
	llmEventTable = "llm_request_events"
	sequenceTable = "global_sequence"
)

// builder renders SQL for the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// ent's builder has no DDL, so tables are created with plain statements.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + sequenceTable + ` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		revision INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + llmEventTable + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate creates every table the store uses and seeds the sequence row.
// Statements are idempotent.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	tx, err := drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, ddl := range schema {
		if err := tx.Exec(ctx, ddl, []any{}, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("create table: %w", err)
		}
	}

	seed, args := builder.Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := tx.Exec(ctx, seed, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("seed sequence: %w", err)
	}
	return tx.Commit()
}
