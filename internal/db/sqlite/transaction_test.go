package sqlite

import (
	"context"
	"errors"
	"testing"

	"vtc-portal/internal/document"
)

func countDocuments(t *testing.T, ctx context.Context, store *sqliteDocumentStore) int {
	t.Helper()

	var count int
	if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		t.Fatalf("QueryRow() error = %v", err)
	}
	return count
}

func TestTxManager_Do_Commit(t *testing.T) {
	db := setupTestDB(t)
	store := NewDocumentStore(db).(*sqliteDocumentStore)
	ctx := context.Background()

	err := NewTxManager(db).Do(ctx, func(ctx context.Context) error {
		if err := store.Write(ctx, document.CollectionStaff, []byte(`{"staffMembers":[]}`)); err != nil {
			return err
		}
		return store.Write(ctx, document.CollectionEvents, []byte(`{"events":[]}`))
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if got := countDocuments(t, ctx, store); got != 2 {
		t.Errorf("Do() commit failed, count = %v, want 2", got)
	}
}

func TestTxManager_Do_ReadsOwnWrites(t *testing.T) {
	db := setupTestDB(t)
	store := NewDocumentStore(db)
	ctx := context.Background()

	err := NewTxManager(db).Do(ctx, func(ctx context.Context) error {
		if err := store.Write(ctx, document.CollectionStaff, []byte(`{"staffMembers":[]}`)); err != nil {
			return err
		}
		_, err := store.Read(ctx, document.CollectionStaff)
		return err
	})
	if err != nil {
		t.Errorf("Do() error = %v", err)
	}
}

func TestTxManager_Do_Rollback(t *testing.T) {
	db := setupTestDB(t)
	store := NewDocumentStore(db).(*sqliteDocumentStore)
	ctx := context.Background()

	testErr := errors.New("test error")
	err := NewTxManager(db).Do(ctx, func(ctx context.Context) error {
		if err := store.Write(ctx, document.CollectionStaff, []byte(`{"staffMembers":[]}`)); err != nil {
			return err
		}
		return testErr
	})
	if !errors.Is(err, testErr) {
		t.Errorf("Do() error = %v, want %v", err, testErr)
	}

	if got := countDocuments(t, ctx, store); got != 0 {
		t.Errorf("Do() rollback failed, count = %v, want 0", got)
	}
}

func TestTxManager_Do_Panic(t *testing.T) {
	db := setupTestDB(t)
	store := NewDocumentStore(db).(*sqliteDocumentStore)
	ctx := context.Background()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Do() should panic")
		}
		if got := countDocuments(t, ctx, store); got != 0 {
			t.Errorf("Do() rollback failed after panic, count = %v, want 0", got)
		}
	}()

	_ = NewTxManager(db).Do(ctx, func(ctx context.Context) error {
		if err := store.Write(ctx, document.CollectionStaff, []byte(`{"staffMembers":[]}`)); err != nil {
			return err
		}
		panic("test panic")
	})
}
