package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/store"
)

// Store keeps every collection in a single documents table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY seq`, collection)
	if err != nil {
		return nil, wrapErr("failed to list collection", err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, wrapErr("failed to scan document", err)
		}
		docs = append(docs, store.Document{ID: id, Data: []byte(body)})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to list collection", err)
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, wrapErr("failed to get document", err)
	}
	return store.Document{ID: id, Data: []byte(body)}, nil
}

func (s *Store) Insert(ctx context.Context, collection string, data []byte) (string, error) {
	id := store.NewID()
	ts := s.timestamp()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		collection, id, string(data), ts, ts)
	if err != nil {
		return "", wrapErr("failed to insert document", err)
	}
	return id, nil
}

// InsertMany writes all documents in one transaction.
func (s *Store) InsertMany(ctx context.Context, collection string, data [][]byte) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, wrapErr("failed to prepare insert", err)
	}
	defer stmt.Close()

	ts := s.timestamp()
	ids := make([]string, 0, len(data))
	for _, d := range data {
		id := store.NewID()
		if _, err := stmt.ExecContext(ctx, collection, id, string(d), ts, ts); err != nil {
			return nil, wrapErr("failed to insert document", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapErr("failed to commit documents", err)
	}
	return ids, nil
}

func (s *Store) Replace(ctx context.Context, collection, id string, data []byte) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(data), s.timestamp(), collection, id)
	if err != nil {
		return wrapErr("failed to replace document", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("failed to replace document", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
		return wrapErr("failed to delete document", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return wrapErr("ping failed", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func wrapErr(msg string, err error) error {
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "readonly") || strings.Contains(lower, "not authorized") {
		return fmt.Errorf("%s: %w: %w", msg, store.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, store.ErrUnavailable, err)
}
