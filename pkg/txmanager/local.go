package txmanager

import "context"

// LocalLocker блокировка в пределах процесса, учитывающая отмену контекста
type LocalLocker struct {
	sem chan struct{}
}

// NewLocalLocker создает блокировку процесса
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{sem: make(chan struct{}, 1)}
}

// Lock ждет освобождения блокировки или отмены ctx
func (l *LocalLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
