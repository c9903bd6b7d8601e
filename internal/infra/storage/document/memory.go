package document

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore хранит документы в памяти процесса. Версия - счетчик.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]memoryDocument
}

type memoryDocument struct {
	payload []byte
	version int64
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]memoryDocument)}
}

// Get возвращает копию документа
func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, 0, nil
	}
	return append([]byte(nil), doc.payload...), doc.version, nil
}

// Put заменяет документ при совпадении версии
func (s *MemoryStore) Put(ctx context.Context, name string, payload []byte, expectedVersion int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validateName(name); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current := s.docs[name].version; current != expectedVersion {
		return 0, fmt.Errorf("%w: Put - %s: expected version %d, got %d", ErrVersionConflict, name, expectedVersion, current)
	}

	next := expectedVersion + 1
	s.docs[name] = memoryDocument{payload: append([]byte(nil), payload...), version: next}
	return next, nil
}
