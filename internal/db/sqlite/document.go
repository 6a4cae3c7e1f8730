package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vtc-portal/internal/document"
)

type sqliteDocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(db *sql.DB) document.Store {
	return &sqliteDocumentStore{
		db: db,
	}
}

func (s *sqliteDocumentStore) Read(ctx context.Context, collection document.Collection) ([]byte, error) {
	query := `
		SELECT body
		FROM documents
		WHERE name = ?
	`

	var body string
	err := GetExecutor(ctx, s.db).QueryRowContext(ctx, query, string(collection)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, document.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return []byte(body), nil
}

func (s *sqliteDocumentStore) Write(ctx context.Context, collection document.Collection, body []byte) error {
	query := `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, string(collection), string(body), time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}
