package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type sample struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "data")),
		"memory": NewMemoryStore(),
	}
}

func TestStore_ReadMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Read(context.Background(), CollectionEvents)
			if !errors.Is(err, ErrNotExist) {
				t.Errorf("Read() error = %v, want %v", err, ErrNotExist)
			}
		})
	}
}

func TestLoad_MissingKeepsDefault(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			dst := &sample{Items: []string{}}
			if err := Load(context.Background(), store, CollectionApplications, dst); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if dst.Items == nil || len(dst.Items) != 0 {
				t.Errorf("Load() Items = %#v, want empty non-nil slice", dst.Items)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := &sample{Items: []string{"a", "b"}, Count: 2}

			if err := Save(ctx, store, CollectionStaff, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got := &sample{}
			if err := Load(ctx, store, CollectionStaff, got); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load() = %#v, want %#v", got, want)
			}
		})
	}
}

func TestSave_ReplacesWholeDocument(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := Save(ctx, store, CollectionEvents, &sample{Items: []string{"old", "older"}, Count: 2}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := Save(ctx, store, CollectionEvents, &sample{Items: []string{"new"}}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got := &sample{}
			if err := Load(ctx, store, CollectionEvents, got); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := &sample{Items: []string{"new"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load() = %#v, want %#v", got, want)
			}
		})
	}
}

func TestLoad_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "events.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := Load(context.Background(), NewFileStore(dir), CollectionEvents, &sample{})
	if err == nil {
		t.Fatal("Load() should return error for a corrupt document")
	}
	if errors.Is(err, ErrNotExist) {
		t.Errorf("Load() error = %v, must not be ErrNotExist", err)
	}
}

func TestFileStore_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.Write(context.Background(), CollectionApplications, []byte(`{"applications":[]}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "applications.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory entries = %v, want [applications.json]", names)
	}
}

func TestMemoryStore_CopiesBytes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	body := []byte(`{"events":[]}`)

	if err := store.Write(ctx, CollectionEvents, body); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	body[0] = 'X'

	got, err := store.Read(ctx, CollectionEvents)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != `{"events":[]}` {
		t.Errorf("Read() = %s, want the bytes as written", got)
	}
}
