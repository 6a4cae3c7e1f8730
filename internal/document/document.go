package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type Collection string

const (
	CollectionApplications Collection = "applications"
	CollectionStaff        Collection = "staff-members"
	CollectionEvents       Collection = "events"
)

// ErrNotExist is returned by Store.Read for a collection that has never been written.
var ErrNotExist = errors.New("document does not exist")

// Store persists one whole JSON document per collection.
// There is no locking or versioning: two callers doing read-modify-write on the
// same collection race, and the last Write wins.
type Store interface {
	Read(ctx context.Context, collection Collection) ([]byte, error)
	Write(ctx context.Context, collection Collection, body []byte) error
}

// Load decodes the collection into dst. When the collection does not exist yet
// dst is left as-is, so callers pass the collection's empty default shape.
func Load(ctx context.Context, store Store, collection Collection, dst any) error {
	body, err := store.Read(ctx, collection)
	if errors.Is(err, ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", collection, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return nil
}

// Save replaces the whole collection with src.
func Save(ctx context.Context, store Store, collection Collection, src any) error {
	body, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	if err := store.Write(ctx, collection, body); err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	return nil
}
