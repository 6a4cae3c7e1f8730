package document

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore is a process-local Store. The mutex only protects the map itself;
// read-modify-write cycles of callers still race exactly like on disk.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Collection][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[Collection][]byte)}
}

func (s *MemoryStore) Read(ctx context.Context, collection Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.docs[collection]
	if !ok {
		return nil, ErrNotExist
	}
	return bytes.Clone(body), nil
}

func (s *MemoryStore) Write(ctx context.Context, collection Collection, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[collection] = bytes.Clone(body)
	return nil
}
