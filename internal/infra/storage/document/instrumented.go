package document

import (
	"context"
	"time"
)

// InstrumentedStore декоратор, отправляющий длительность и статус операций в Observer
type InstrumentedStore struct {
	next     Store
	backend  string
	observer Observer
}

// NewInstrumentedStore оборачивает store. backend используется как лейбл метрик.
func NewInstrumentedStore(next Store, backend string, observer Observer) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend, observer: observer}
}

// Get читает документ и записывает метрику
func (s *InstrumentedStore) Get(ctx context.Context, name string) ([]byte, int64, error) {
	started := time.Now()
	payload, version, err := s.next.Get(ctx, name)
	s.observer.ObserveStorage(s.backend, "get", err, started)
	return payload, version, err
}

// Put записывает документ и метрику
func (s *InstrumentedStore) Put(ctx context.Context, name string, payload []byte, expectedVersion int64) (int64, error) {
	started := time.Now()
	version, err := s.next.Put(ctx, name, payload, expectedVersion)
	s.observer.ObserveStorage(s.backend, "put", err, started)
	return version, err
}
