package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "smc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLStore(context.Background(), db, psqlbuilder.DialectSQLite)
	require.NoError(t, err)
	return store
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return store
}

// Общий контракт для всех бэкендов
func TestStoreContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"file":   func(t *testing.T) Store { return newFileStore(t) },
		"sqlite": func(t *testing.T) Store { return newSQLiteStore(t) },
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
	}

	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("absent document", func(t *testing.T) {
				store := factory(t)
				payload, version, err := store.Get(ctx, "reservations")
				require.NoError(t, err)
				assert.Nil(t, payload)
				assert.Equal(t, int64(0), version)
			})

			t.Run("create and replace", func(t *testing.T) {
				store := factory(t)

				v1, err := store.Put(ctx, "reservations", []byte(`{"a":1}`), 0)
				require.NoError(t, err)
				assert.NotZero(t, v1)

				payload, version, err := store.Get(ctx, "reservations")
				require.NoError(t, err)
				assert.Equal(t, `{"a":1}`, string(payload))
				assert.Equal(t, v1, version)

				v2, err := store.Put(ctx, "reservations", []byte(`{"a":2}`), v1)
				require.NoError(t, err)
				assert.NotEqual(t, v1, v2)

				payload, _, err = store.Get(ctx, "reservations")
				require.NoError(t, err)
				assert.Equal(t, `{"a":2}`, string(payload))
			})

			t.Run("stale version is rejected", func(t *testing.T) {
				store := factory(t)

				v1, err := store.Put(ctx, "reservations", []byte(`{"a":1}`), 0)
				require.NoError(t, err)
				_, err = store.Put(ctx, "reservations", []byte(`{"a":2}`), v1)
				require.NoError(t, err)

				_, err = store.Put(ctx, "reservations", []byte(`{"a":3}`), v1)
				assert.ErrorIs(t, err, ErrVersionConflict)
				assert.ErrorIs(t, err, txmanager.ErrConflict)

				_, err = store.Put(ctx, "reservations", []byte(`{"a":3}`), 0)
				assert.ErrorIs(t, err, ErrVersionConflict)

				payload, _, err := store.Get(ctx, "reservations")
				require.NoError(t, err)
				assert.Equal(t, `{"a":2}`, string(payload))
			})

			t.Run("documents are independent", func(t *testing.T) {
				store := factory(t)

				_, err := store.Put(ctx, "reservations", []byte(`{}`), 0)
				require.NoError(t, err)

				_, version, err := store.Get(ctx, "users")
				require.NoError(t, err)
				assert.Equal(t, int64(0), version)
			})

			t.Run("invalid name", func(t *testing.T) {
				store := factory(t)
				_, _, err := store.Get(ctx, "../etc/passwd")
				assert.ErrorIs(t, err, ErrInvalidName)
				_, err = store.Put(ctx, "", []byte(`{}`), 0)
				assert.ErrorIs(t, err, ErrInvalidName)
			})
		})
	}
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	v, err := store.Put(ctx, "reservations", []byte(`{}`), 0)
	require.NoError(t, err)
	_, err = store.Put(ctx, "reservations", []byte(`{"x":[]}`), v)
	require.NoError(t, err)

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"reservations.json", "reservations.json.lock"}, names)
}

// Каждый экземпляр FileStore имитирует отдельный процесс над общим каталогом
func TestFileStore_IndependentInstancesLoseNoUpdates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			store, err := NewFileStore(dir)
			if !assert.NoError(t, err) {
				return
			}
			for {
				payload, version, err := store.Get(ctx, "counter")
				if !assert.NoError(t, err) {
					return
				}
				_, err = store.Put(ctx, "counter", append(payload, 'x'), version)
				if err == nil {
					return
				}
				if !assert.ErrorIs(t, err, ErrVersionConflict) {
					return
				}
			}
		}()
	}
	wg.Wait()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	payload, _, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", n), string(payload))
}

func TestFileStore_CanceledContext(t *testing.T) {
	store := newFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "reservations", []byte(`{}`), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	calls []string
	errs  int
}

func (o *recordingObserver) ObserveStorage(backend, operation string, err error, started time.Time) {
	o.calls = append(o.calls, backend+":"+operation)
	if err != nil {
		o.errs++
	}
}

func TestInstrumentedStore(t *testing.T) {
	observer := &recordingObserver{}
	store := NewInstrumentedStore(NewMemoryStore(), "memory", observer)
	ctx := context.Background()

	_, _, err := store.Get(ctx, "reservations")
	require.NoError(t, err)
	_, err = store.Put(ctx, "reservations", []byte(`{}`), 42)
	require.Error(t, err)

	assert.Equal(t, []string{"memory:get", "memory:put"}, observer.calls)
	assert.Equal(t, 1, observer.errs)
}
