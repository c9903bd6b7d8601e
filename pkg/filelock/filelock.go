// Package filelock реализует межпроцессную блокировку для txmanager на эксклюзивной блокировке файла ОС.
// Блокировка снимается ядром при закрытии дескриптора, в том числе при падении процесса.
package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const defaultPollInterval = 5 * time.Millisecond

// Locker блокировка на файле path
type Locker struct {
	path string
	wait time.Duration
	poll time.Duration
}

// New создает блокировку. wait - время ожидания захвата, 0 - ждать до отмены ctx.
func New(path string, wait time.Duration) *Locker {
	return &Locker{
		path: path,
		wait: wait,
		poll: defaultPollInterval,
	}
}

// Path возвращает путь к файлу блокировки
func (l *Locker) Path() string {
	return l.path
}

// Lock захватывает блокировку или возвращает txmanager.ErrLockNotAcquired по истечении wait
func (l *Locker) Lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("filelock: create dir for %s: %w", l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("filelock: open %s: %w", l.path, err)
	}

	var deadline time.Time
	if l.wait > 0 {
		deadline = time.Now().Add(l.wait)
	}

	for {
		ok, err := tryLock(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("filelock: lock %s: %w", l.path, err)
		}
		if ok {
			return func() {
				_ = unlock(f)
				_ = f.Close()
			}, nil
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("%w: file %s is held by another process", txmanager.ErrLockNotAcquired, l.path)
		}

		timer := time.NewTimer(l.poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = f.Close()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
