package txmanager

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrConflict возвращается хранилищем, если документ изменился между чтением и записью.
	// Хранилища оборачивают свои ошибки версий в ErrConflict, чтобы менеджер повторил транзакцию.
	ErrConflict = errors.New("txmanager: concurrent modification")

	// ErrLockNotAcquired возвращается Locker'ом, если блокировку не удалось получить за отведенное время
	ErrLockNotAcquired = errors.New("txmanager: lock not acquired")

	// ErrRetryExhausted возвращается, когда конфликт не разрешился за maxAttempts попыток
	ErrRetryExhausted = errors.New("txmanager: retry attempts exhausted")

	// ErrLock возвращается при ошибке самого механизма блокировки
	ErrLock = errors.New("txmanager: lock error")
)

const (
	defaultMaxAttempts = 5
	defaultBackoff     = 10 * time.Millisecond
)

// Locker граница взаимного исключения для всех изменяющих операций
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// Option настройка менеджера
type Option func(*Manager)

// WithMaxAttempts задает число попыток (минимум 1)
func WithMaxAttempts(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithBackoff задает базовую паузу между попытками (растет линейно)
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.backoff = d
		}
	}
}

// WithRetryHook задает функцию, вызываемую перед каждым повтором (для метрик)
func WithRetryHook(hook func()) Option {
	return func(m *Manager) {
		m.onRetry = hook
	}
}

// Manager сериализует транзакции read-modify-write над документом
type Manager struct {
	locker      Locker
	maxAttempts int
	backoff     time.Duration
	onRetry     func()
}

// NewTransactionManager создает менеджер транзакций поверх locker
func NewTransactionManager(locker Locker, opts ...Option) *Manager {
	m := &Manager{
		locker:      locker,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		onRetry:     func() {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DoSerializable выполняет fn под эксклюзивной блокировкой.
// Если fn вернула ErrConflict или блокировку не удалось получить, вся функция повторяется
// (с повторным чтением состояния внутри fn). После maxAttempts возвращается ErrRetryExhausted.
// Любая другая ошибка fn возвращается как есть, без повторов.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if attempt > 1 {
			m.onRetry()
			if err := sleep(ctx, m.backoff*time.Duration(attempt-1)); err != nil {
				return err
			}
		}

		err := m.runLocked(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrLockNotAcquired) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %d attempts: %v", ErrRetryExhausted, m.maxAttempts, lastErr)
}

// DoReadOnly выполняет fn без блокировки: чтения опираются на атомарную замену документа
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *Manager) runLocked(ctx context.Context, fn func(ctx context.Context) error) error {
	unlock, err := m.locker.Lock(ctx)
	if err != nil {
		if errors.Is(err, ErrLockNotAcquired) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrLock, err)
	}
	defer unlock()

	return fn(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
