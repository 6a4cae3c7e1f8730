package sqlite

import (
	"context"
	"errors"
	"fmt"

	"vtc-portal/internal/document"
	"vtc-portal/internal/uow"
)

// SeedDocuments copies each collection that src has and dst lacks. All copies
// share one transaction, so a failed seed leaves dst untouched. It returns
// the collections that were copied.
func SeedDocuments(
	ctx context.Context,
	tx uow.UnitOfWork,
	dst document.Store,
	src document.Store,
	collections ...document.Collection,
) ([]document.Collection, error) {
	var seeded []document.Collection

	err := tx.Do(ctx, func(ctx context.Context) error {
		seeded = seeded[:0]
		for _, collection := range collections {
			_, err := dst.Read(ctx, collection)
			if err == nil {
				continue
			}
			if !errors.Is(err, document.ErrNotExist) {
				return err
			}

			body, err := src.Read(ctx, collection)
			if errors.Is(err, document.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read seed %s: %w", collection, err)
			}
			if err := dst.Write(ctx, collection, body); err != nil {
				return err
			}
			seeded = append(seeded, collection)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return seeded, nil
}
