package document

import (
	"context"
	"time"
)

// Store хранилище именованных документов с версией для compare-and-swap.
// Версия 0 означает, что документа нет.
type Store interface {
	// Get возвращает содержимое документа и его версию. Отсутствующий документ - (nil, 0, nil).
	Get(ctx context.Context, name string) ([]byte, int64, error)

	// Put полностью заменяет документ, если его текущая версия равна expectedVersion.
	// Иначе возвращает ErrVersionConflict. Возвращает новую версию.
	Put(ctx context.Context, name string, payload []byte, expectedVersion int64) (int64, error)
}

// Observer получает длительность и результат каждой операции хранилища
type Observer interface {
	ObserveStorage(backend, operation string, err error, started time.Time)
}
