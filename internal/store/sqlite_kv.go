package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SQLiteKV keeps progress records in the kv_records table.
type SQLiteKV struct {
	db  *sql.DB
	seq *sequence
}

func (k *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := builder.Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := k.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), nil
}

func (k *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	rev, err := k.seq.next(ctx)
	if err != nil {
		return err
	}

	query, args := builder.Insert(kvTable).
		Columns("key", "value", "revision", "updated_at").
		Values(key, string(value), rev, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := k.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (k *SQLiteKV) Delete(ctx context.Context, key string) error {
	query, args := builder.Delete(kvTable).
		Where(entsql.EQ("key", key)).
		Query()
	if _, err := k.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys returns every stored key, most recently written last.
func (k *SQLiteKV) Keys(ctx context.Context) ([]string, error) {
	query, args := builder.Select("key").
		From(entsql.Table(kvTable)).
		OrderBy("revision").
		Query()

	rows, err := k.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Revision returns the sequence number of the last write to key.
func (k *SQLiteKV) Revision(ctx context.Context, key string) (int64, error) {
	query, args := builder.Select("revision").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rev int64
	err := k.db.QueryRowContext(ctx, query, args...).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return rev, nil
}
